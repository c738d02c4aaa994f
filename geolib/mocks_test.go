package geolib_test

import (
	"context"
	"net"

	"github.com/9seconds/geolocalizer/geolib"
	"github.com/stretchr/testify/mock"
)

type ProviderMock struct {
	mock.Mock
}

func (m *ProviderMock) Lookup(ctx context.Context, ip net.IP) (geolib.GeoRecord, error) {
	args := m.Called(ctx, ip)

	return args.Get(0).(geolib.GeoRecord), args.Error(1)
}

func (m *ProviderMock) Name() string {
	return m.Called().String(0)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(ip net.IP, name string, err error) {
	m.Called(ip, name, err)
}

func (m *LoggerMock) ReverseGeocodeError(lat, lng float64, err error) {
	m.Called(lat, lng, err)
}

func (m *LoggerMock) CountriesError(err error) {
	m.Called(err)
}

type CountryStoreMock struct {
	mock.Mock
}

func (m *CountryStoreMock) ListCountries(ctx context.Context) ([]geolib.Country, error) {
	args := m.Called(ctx)

	return args.Get(0).([]geolib.Country), args.Error(1)
}
