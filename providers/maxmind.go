package providers

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/9seconds/geolocalizer/geolib"
	"github.com/oschwald/geoip2-golang"
	"github.com/spf13/afero"
)

const maxmindDefaultPath = "GeoLite2-City.mmdb"

// Maxmind is an offline provider backed by MaxMind City database.
type Maxmind struct {
	dbReader     *geoip2.Reader
	dbReaderLock sync.RWMutex
}

func (m *Maxmind) Name() string {
	return NameMaxmind
}

// Open reads a database from the filesystem. An old database, if any,
// is closed only if a new one is opened successfully.
func (m *Maxmind) Open(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("cannot read a database file: %w", err)
	}

	reader, err := geoip2.FromBytes(data)
	if err != nil {
		return fmt.Errorf("cannot initialize a reader of maxminddb: %w", err)
	}

	m.dbReaderLock.Lock()
	defer m.dbReaderLock.Unlock()

	if m.dbReader != nil {
		m.dbReader.Close()
	}

	m.dbReader = reader

	return nil
}

func (m *Maxmind) Shutdown() {
	m.dbReaderLock.Lock()
	defer m.dbReaderLock.Unlock()

	if m.dbReader != nil {
		m.dbReader.Close()
		m.dbReader = nil
	}
}

func (m *Maxmind) Lookup(ctx context.Context, ip net.IP) (geolib.GeoRecord, error) {
	m.dbReaderLock.RLock()
	defer m.dbReaderLock.RUnlock()

	rv := geolib.GeoRecord{}

	if m.dbReader == nil {
		return rv, ErrDatabaseIsNotReadyYet
	}

	record, err := m.dbReader.City(ip)
	if err != nil {
		return rv, fmt.Errorf("cannot lookup this ip address: %w", err)
	}

	rv.IP = ip.String()
	rv.CountryCode = record.Country.IsoCode
	rv.CountryName = record.Country.Names["en"]
	rv.City = record.City.Names["en"]
	rv.Zip = record.Postal.Code
	rv.TimeZone = record.Location.TimeZone
	rv.Latitude = record.Location.Latitude
	rv.Longitude = record.Location.Longitude

	if len(record.Subdivisions) > 0 {
		rv.RegionCode = record.Subdivisions[0].IsoCode
		rv.RegionName = record.Subdivisions[0].Names["en"]
	}

	return rv, nil
}

// NewMaxmind creates an offline provider which reads GeoIP2 or
// GeoLite2 City database from the given filesystem. Supported
// parameters: path.
//
// Database has to be readable at construction time, otherwise an
// error is returned. Later the database can be replaced with Open. A
// provider without database (zero value or after Shutdown) fails
// every lookup with ErrDatabaseIsNotReadyYet.
func NewMaxmind(fs afero.Fs, parameters map[string]string) (*Maxmind, error) {
	path := parameters["path"]
	if path == "" {
		path = maxmindDefaultPath
	}

	rv := &Maxmind{}

	if err := rv.Open(fs, path); err != nil {
		return nil, fmt.Errorf("cannot open maxmind database %s: %w", path, err)
	}

	return rv, nil
}
