package countrydb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/9seconds/geolocalizer/countrydb"
	"github.com/9seconds/geolocalizer/geolib"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite

	ctx   context.Context
	store *countrydb.Store
}

func (suite *StoreTestSuite) SetupTest() {
	suite.ctx = context.Background()

	store, err := countrydb.Open(suite.ctx, countrydb.DriverSQLite, ":memory:", "")
	if err != nil {
		panic(err)
	}

	suite.store = store
}

func (suite *StoreTestSuite) TearDownTest() {
	suite.store.Close()
}

func (suite *StoreTestSuite) TestEmpty() {
	countries, err := suite.store.ListCountries(suite.ctx)

	suite.NoError(err)
	suite.NotNil(countries)
	suite.Empty(countries)
}

func (suite *StoreTestSuite) TestMigrateTwice() {
	suite.NoError(suite.store.Migrate(suite.ctx))
}

func (suite *StoreTestSuite) TestInsertAndList() {
	id, err := suite.store.Insert(suite.ctx, geolib.Country{
		Zone:       "Southern Europe",
		Name:       "Italy",
		ISOCode:    "IT",
		Currency:   "EUR",
		Symbol:     "€",
		SymbolHTML: "&euro;",
		Code:       "ITA",
		Tax:        22,
		Continent:  "Europe",
	})

	suite.NoError(err)
	suite.Greater(id, int64(0))

	_, err = suite.store.Insert(suite.ctx, geolib.Country{
		Name:    "Andorra",
		ISOCode: "AD",
	})

	suite.NoError(err)

	_, err = suite.store.Insert(suite.ctx, geolib.Country{
		Name:    "Atlantis",
		ISOCode: "AT",
		Status:  countrydb.StatusTrash,
	})

	suite.NoError(err)

	countries, err := suite.store.ListCountries(suite.ctx)

	suite.NoError(err)
	suite.Len(countries, 2)
	suite.Equal("Andorra", countries[0].Name)
	suite.Equal("Italy", countries[1].Name)
	suite.Equal(id, countries[1].ID)
	suite.Equal("&euro;", countries[1].SymbolHTML)
	suite.EqualValues(22, countries[1].Tax)
	suite.Equal(countrydb.StatusPublish, countries[1].Status)
}

func (suite *StoreTestSuite) TestInsertIncorrect() {
	_, err := suite.store.Insert(suite.ctx, geolib.Country{})

	suite.True(errors.Is(err, countrydb.ErrIncorrectCountry))

	_, err = suite.store.Insert(suite.ctx, geolib.Country{Name: "Italy", Status: "draft"})

	suite.True(errors.Is(err, countrydb.ErrIncorrectCountry))
}

func (suite *StoreTestSuite) TestSeed() {
	inserted, err := suite.store.Seed(suite.ctx)

	suite.NoError(err)
	suite.Equal(len(geolib.ISOCountries()), inserted)

	inserted, err = suite.store.Seed(suite.ctx)

	suite.NoError(err)
	suite.Zero(inserted)

	countries, err := suite.store.ListCountries(suite.ctx)

	suite.NoError(err)
	suite.Len(countries, len(geolib.ISOCountries()))
}

func TestStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{})
}

func TestOpenIncorrect(t *testing.T) {
	ctx := context.Background()

	_, err := countrydb.Open(ctx, "postgres", "", "")
	if !errors.Is(err, countrydb.ErrUnknownDriver) {
		t.Fatalf("unexpected error %v", err)
	}

	_, err = countrydb.Open(ctx, countrydb.DriverSQLite, ":memory:", "countries; DROP TABLE x")
	if !errors.Is(err, countrydb.ErrIncorrectTable) {
		t.Fatalf("unexpected error %v", err)
	}
}
