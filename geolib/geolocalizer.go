package geolib

import (
	"context"
	"net"
	"net/http"
)

// Options tunes a behavior of Geolocalizer.
type Options struct {
	// ShowOnLookupError renders a content of the shortcode if visitor
	// cannot be located. By default such content is hidden.
	ShowOnLookupError bool

	// TrustProxyHeaders takes a visitor address from X-Forwarded-For,
	// X-Real-IP and True-Client-IP headers instead of a remote address
	// of the connection. Enable it only behind a proxy which overwrites
	// these headers.
	TrustProxyHeaders bool
}

// Geolocalizer is a facade for all operations of the library. It also
// can act as http.Handler.
type Geolocalizer struct {
	locator   *Locator
	geocoder  *ReverseGeocoder
	countries CountryStore
	logger    Logger
	opts      Options
	handler   http.Handler
}

func (g *Geolocalizer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	g.handler.ServeHTTP(w, req)
}

// Resolve returns a GeoRecord of the given IP address or of the caller
// (see WithCallerIP) if address is empty.
func (g *Geolocalizer) Resolve(ctx context.Context, ipAddress string) (GeoRecord, error) {
	geo, err := g.locator.Resolve(ctx, ipAddress)
	if err != nil {
		ip := net.ParseIP(ipAddress)
		if ip == nil {
			ip = CallerIP(ctx)
		}

		g.logger.LookupError(ip, g.locator.Name(), err)
	}

	return geo, err
}

func (g *Geolocalizer) Matches(geo GeoRecord, filters FilterSet) MatchResult {
	return Match(geo, filters)
}

// ReverseGeocode returns address components for the coordinates. It
// never fails: errors are logged and an empty list is returned.
func (g *Geolocalizer) ReverseGeocode(ctx context.Context, lat, lng float64) AddressComponentList {
	if g.geocoder == nil {
		return AddressComponentList{}
	}

	results, err := g.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		g.logger.ReverseGeocodeError(lat, lng, err)
	}

	return results
}

// ReverseGeocodeRecord returns address components for coordinates of
// the record. A record without coordinates gives an empty list.
func (g *Geolocalizer) ReverseGeocodeRecord(ctx context.Context, geo GeoRecord) AddressComponentList {
	if g.geocoder == nil {
		return AddressComponentList{}
	}

	results, err := g.geocoder.ReverseGeocodeRecord(ctx, geo)
	if err != nil {
		g.logger.ReverseGeocodeError(geo.Latitude, geo.Longitude, err)
	}

	return results
}

func (g *Geolocalizer) ExtractComponent(results AddressComponentList, typeTag, property string) (string, error) {
	return ExtractComponent(results, typeTag, property)
}

func (g *Geolocalizer) ListCountries(ctx context.Context) ([]Country, error) {
	if g.countries == nil {
		return nil, ErrCountriesUnavailable
	}

	countries, err := g.countries.ListCountries(ctx)
	if err != nil {
		g.logger.CountriesError(err)

		return nil, err
	}

	return countries, nil
}

// UsageStats returns statistics of all remote services.
func (g *Geolocalizer) UsageStats() []*UsageStats {
	rv := []*UsageStats{g.locator.Stats()}

	if g.geocoder != nil {
		rv = append(rv, g.geocoder.Stats())
	}

	return rv
}

// NewGeolocalizer creates a new instance. geocoder and countries are
// optional and can be nil.
func NewGeolocalizer(locator *Locator,
	geocoder *ReverseGeocoder,
	countries CountryStore,
	logger Logger,
	opts Options) *Geolocalizer {
	rv := &Geolocalizer{
		locator:   locator,
		geocoder:  geocoder,
		countries: countries,
		logger:    logger,
		opts:      opts,
	}

	rv.handler = newHTTPHandler(rv)

	return rv
}
