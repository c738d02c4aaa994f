// Package countrydb keeps a table of countries (zone, currency, tax
// etc.) in SQL database. sqlite and mysql are supported.
package countrydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/9seconds/geolocalizer/geolib"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	DefaultTableName = "geolocalizer_countries"

	StatusPublish = "publish"
	StatusTrash   = "trash"
)

var (
	ErrUnknownDriver    = errors.New("unknown database driver")
	ErrIncorrectTable   = errors.New("incorrect table name")
	ErrIncorrectCountry = errors.New("incorrect country")

	tableNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)
)

// Store is a countries table.
type Store struct {
	db     *sql.DB
	driver string
	table  string
}

// Open connects to the database and ensures that table exists.
func Open(ctx context.Context, driver, dsn, table string) (*Store, error) {
	if table == "" {
		table = DefaultTableName
	}

	if !tableNameRegexp.MatchString(table) {
		return nil, fmt.Errorf("%w: %s", ErrIncorrectTable, table)
	}

	switch driver {
	case DriverSQLite, DriverMySQL:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()

		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}

	rv := &Store{
		db:     db,
		driver: driver,
		table:  table,
	}

	if err := rv.Migrate(ctx); err != nil {
		db.Close()

		return nil, err
	}

	return rv, nil
}

// Migrate creates a table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(sqliteSchema, s.table)

	if s.driver == DriverMySQL {
		query = fmt.Sprintf(mysqlSchema, s.table)
	}

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("cannot create table %s: %w", s.table, err)
	}

	if s.driver == DriverSQLite {
		index := fmt.Sprintf(sqliteIndex, s.table, s.table)

		if _, err := s.db.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("cannot create index on %s: %w", s.table, err)
		}
	}

	return nil
}

// Insert adds a new country and returns its id. Empty status means
// 'publish'.
func (s *Store) Insert(ctx context.Context, country geolib.Country) (int64, error) {
	if country.Name == "" {
		return 0, fmt.Errorf("%w: name is empty", ErrIncorrectCountry)
	}

	switch country.Status {
	case "":
		country.Status = StatusPublish
	case StatusPublish, StatusTrash:
	default:
		return 0, fmt.Errorf("%w: unknown status %s", ErrIncorrectCountry, country.Status)
	}

	query := fmt.Sprintf(`INSERT INTO %s
        (zone, country, isocode, currency, symbol, symbol_html, code, tax, continent, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table)

	result, err := s.db.ExecContext(ctx, query,
		country.Zone, country.Name, country.ISOCode, country.Currency,
		country.Symbol, country.SymbolHTML, country.Code, country.Tax,
		country.Continent, country.Status)
	if err != nil {
		return 0, fmt.Errorf("cannot insert country %s: %w", country.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("cannot get id of country %s: %w", country.Name, err)
	}

	return id, nil
}

// Seed fills an empty table with ISO3166 countries. It returns a number
// of inserted rows; a table with data is left untouched.
func (s *Store) Seed(ctx context.Context) (int, error) {
	var count int

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)

	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("cannot count countries: %w", err)
	}

	if count > 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("cannot start transaction: %w", err)
	}

	defer tx.Rollback() // nolint: errcheck

	insert := fmt.Sprintf(`INSERT INTO %s
        (zone, country, isocode, currency, code, continent, status)
        VALUES (?, ?, ?, ?, ?, ?, ?)`, s.table)

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("cannot prepare statement: %w", err)
	}

	defer stmt.Close()

	countries := geolib.ISOCountries()

	for _, v := range countries {
		if _, err := stmt.ExecContext(ctx,
			v.Zone, v.Name, v.ISOCode, v.Currency, v.Code, v.Continent, StatusPublish); err != nil {
			return 0, fmt.Errorf("cannot insert country %s: %w", v.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("cannot commit transaction: %w", err)
	}

	return len(countries), nil
}

// ListCountries returns published countries sorted by name.
func (s *Store) ListCountries(ctx context.Context) ([]geolib.Country, error) {
	query := fmt.Sprintf(`SELECT id, zone, country, isocode, currency, symbol,
               symbol_html, code, tax, continent, status
        FROM %s
        WHERE status = ?
        ORDER BY country, id`, s.table)

	rows, err := s.db.QueryContext(ctx, query, StatusPublish)
	if err != nil {
		return nil, fmt.Errorf("cannot query countries: %w", err)
	}

	defer rows.Close()

	rv := []geolib.Country{}

	for rows.Next() {
		country := geolib.Country{}

		if err := rows.Scan(&country.ID, &country.Zone, &country.Name,
			&country.ISOCode, &country.Currency, &country.Symbol,
			&country.SymbolHTML, &country.Code, &country.Tax,
			&country.Continent, &country.Status); err != nil {
			return nil, fmt.Errorf("cannot scan country: %w", err)
		}

		rv = append(rv, country)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot iterate countries: %w", err)
	}

	return rv, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
