package geolib

import (
	"context"
	"net"
	"net/http"
)

// Provider is a geolocation vendor adapter. It owns only a mapping of
// vendor fields onto GeoRecord and a way to build a request URL.
type Provider interface {
	Name() string
	Lookup(context.Context, net.IP) (GeoRecord, error)
}

// HTTPClient is an interface which is used by providers and reverse
// geocoder to access remote services.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// CountryStore gives a list of countries known to the installation.
type CountryStore interface {
	ListCountries(context.Context) ([]Country, error)
}

type Logger interface {
	LookupError(ip net.IP, name string, err error)
	ReverseGeocodeError(lat, lng float64, err error)
	CountriesError(err error)
}
