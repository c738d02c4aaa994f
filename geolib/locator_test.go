package geolib_test

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/9seconds/geolocalizer/geolib"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LocatorTestSuite struct {
	suite.Suite

	providerMock *ProviderMock
	l            *geolib.Locator
	ctx          context.Context
}

func (suite *LocatorTestSuite) SetupTest() {
	suite.providerMock = &ProviderMock{}
	suite.providerMock.On("Name").Return("providerMock")

	suite.l = geolib.NewLocator(suite.providerMock)
	suite.ctx = context.Background()
}

func (suite *LocatorTestSuite) TearDownTest() {
	suite.providerMock.AssertExpectations(suite.T())
}

func (suite *LocatorTestSuite) TestName() {
	suite.Equal("providerMock", suite.l.Name())
	suite.Equal("providerMock", suite.l.Stats().Name)
}

func (suite *LocatorTestSuite) TestInvalidIP() {
	_, err := suite.l.Resolve(suite.ctx, "not an ip")

	suite.True(errors.Is(err, geolib.ErrUnresolvable))
	suite.True(errors.Is(err, geolib.ErrInvalidIP))
	suite.providerMock.AssertNotCalled(suite.T(), "Lookup", mock.Anything, mock.Anything)
}

func (suite *LocatorTestSuite) TestNoCallerIP() {
	_, err := suite.l.Resolve(suite.ctx, "")

	suite.True(errors.Is(err, geolib.ErrUnresolvable))
	suite.True(errors.Is(err, geolib.ErrNoCallerAddress))
}

func (suite *LocatorTestSuite) TestProviderError() {
	ip := net.ParseIP("1.1.1.1")

	suite.providerMock.On("Lookup", mock.Anything, ip).Return(geolib.GeoRecord{}, io.EOF).Once()

	_, err := suite.l.Resolve(suite.ctx, "1.1.1.1")

	var lookupErr *geolib.LookupError

	suite.True(errors.As(err, &lookupErr))
	suite.Equal("1.1.1.1", lookupErr.IP)
	suite.Equal("providerMock", lookupErr.Provider)
	suite.True(errors.Is(err, io.EOF))
	suite.True(errors.Is(err, geolib.ErrUnresolvable))

	_, failure := suite.l.Stats().Counters()

	suite.EqualValues(1, failure)
}

func (suite *LocatorTestSuite) TestCallerIP() {
	ip := net.ParseIP("87.3.222.157")
	ctx := geolib.WithCallerIP(suite.ctx, ip)

	suite.providerMock.On("Lookup", mock.Anything, ip).Return(geolib.GeoRecord{
		CountryCode: "it",
		City:        "Rome",
	}, nil).Once()

	geo, err := suite.l.Resolve(ctx, "")

	suite.NoError(err)
	suite.Equal("87.3.222.157", geo.IP)
	suite.Equal("IT", geo.CountryCode)
	suite.Equal("Italy", geo.CountryName)
	suite.Equal("Rome", geo.City)

	success, _ := suite.l.Stats().Counters()

	suite.EqualValues(1, success)
}

func (suite *LocatorTestSuite) TestExplicitIPWins() {
	ip := net.ParseIP("8.8.8.8")
	ctx := geolib.WithCallerIP(suite.ctx, net.ParseIP("87.3.222.157"))

	suite.providerMock.On("Lookup", mock.Anything, ip).Return(geolib.GeoRecord{
		CountryCode: "US",
		CountryName: "USA",
	}, nil).Once()

	geo, err := suite.l.Resolve(ctx, " 8.8.8.8 ")

	suite.NoError(err)
	suite.Equal("8.8.8.8", geo.IP)
	suite.Equal("USA", geo.CountryName)
}

func (suite *LocatorTestSuite) TestUnknownCountryCode() {
	ip := net.ParseIP("10.0.0.1")

	suite.providerMock.On("Lookup", mock.Anything, ip).Return(geolib.GeoRecord{
		CountryCode: "ZZ",
	}, nil).Once()

	geo, err := suite.l.Resolve(suite.ctx, "10.0.0.1")

	suite.NoError(err)
	suite.Empty(geo.CountryCode)
	suite.Empty(geo.CountryName)
}

func TestLocator(t *testing.T) {
	suite.Run(t, &LocatorTestSuite{})
}
