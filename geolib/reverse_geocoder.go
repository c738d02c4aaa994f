package geolib

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
)

const (
	DefaultReverseGeocodingEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

	ComponentLongName  = "long_name"
	ComponentShortName = "short_name"

	reverseGeocoderName = "reverse_geocoder"

	maxLatitude  = 90
	maxLongitude = 180
)

type reverseGeocodingResponse struct {
	Status       string               `json:"status"`
	ErrorMessage string               `json:"error_message"`
	Results      AddressComponentList `json:"results"`
}

// ReverseGeocoder resolves coordinates into a list of address
// components with a help of a mapping provider (Google Maps Geocoding
// API compatible).
type ReverseGeocoder struct {
	client   HTTPClient
	endpoint string
	apiKey   string
	stats    *UsageStats
}

// ReverseGeocode returns geocoding results for the given coordinates.
// Any failure gives an empty list, an error is returned only to tell
// what has happened and must not be propagated to a visitor.
func (r *ReverseGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (AddressComponentList, error) {
	results, err := r.doReverseGeocode(ctx, lat, lng)

	r.stats.Used(err)

	if err != nil {
		return AddressComponentList{}, err
	}

	return results, nil
}

// ReverseGeocodeRecord uses coordinates of the GeoRecord. If record has
// no coordinates, an empty list is returned without a network call.
func (r *ReverseGeocoder) ReverseGeocodeRecord(ctx context.Context, geo GeoRecord) (AddressComponentList, error) {
	if !geo.HasCoordinates() {
		return AddressComponentList{}, nil
	}

	return r.ReverseGeocode(ctx, geo.Latitude, geo.Longitude)
}

func (r *ReverseGeocoder) Stats() *UsageStats {
	return r.stats
}

func (r *ReverseGeocoder) doReverseGeocode(ctx context.Context, lat, lng float64) (AddressComponentList, error) {
	endpoint, err := r.buildURL(lat, lng)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	jsonResponse := reverseGeocodingResponse{}
	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&jsonResponse); err != nil {
		return nil, fmt.Errorf("cannot parse a response: %w", err)
	}

	switch jsonResponse.Status {
	case "", "OK":
	case "ZERO_RESULTS":
		return AddressComponentList{}, nil
	default:
		return nil, fmt.Errorf("failed response: status=%s, message=%s",
			jsonResponse.Status, jsonResponse.ErrorMessage)
	}

	if jsonResponse.Results == nil {
		return AddressComponentList{}, nil
	}

	return jsonResponse.Results, nil
}

func (r *ReverseGeocoder) buildURL(lat, lng float64) (string, error) {
	endpoint, err := url.Parse(r.endpoint)
	if err != nil {
		return "", fmt.Errorf("incorrect endpoint: %w", err)
	}

	query := endpoint.Query()

	query.Set("latlng",
		strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))

	if r.apiKey != "" {
		query.Set("key", r.apiKey)
	}

	endpoint.RawQuery = query.Encode()

	return endpoint.String(), nil
}

// ValidateCoordinates checks that latitude is within [-90, 90] and
// longitude is within [-180, 180].
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.Abs(lat) > maxLatitude {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinates, lat)
	}

	if math.IsNaN(lng) || math.IsInf(lng, 0) || math.Abs(lng) > maxLongitude {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinates, lng)
	}

	return nil
}

// ExtractComponent scans results in order and components of each
// result in order. A requested property of the first component which
// has typeTag is returned. Property is long_name (default if empty) or
// short_name.
func ExtractComponent(results AddressComponentList, typeTag, property string) (string, error) {
	switch property {
	case "", ComponentLongName, ComponentShortName:
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownComponentProperty, property)
	}

	for _, result := range results {
		for _, component := range result.AddressComponents {
			if !component.HasType(typeTag) {
				continue
			}

			if property == ComponentShortName {
				return component.ShortName, nil
			}

			return component.LongName, nil
		}
	}

	return "", ErrNotFound
}

// Route returns a long name of the first 'route' component.
func Route(results AddressComponentList) (string, error) {
	return ExtractComponent(results, "route", ComponentLongName)
}

// StreetNumber returns a long name of the first 'street_number'
// component.
func StreetNumber(results AddressComponentList) (string, error) {
	return ExtractComponent(results, "street_number", ComponentLongName)
}

// NewReverseGeocoder creates a new reverse geocoder. Empty endpoint
// means Google Maps Geocoding API.
func NewReverseGeocoder(client HTTPClient, endpoint, apiKey string) *ReverseGeocoder {
	if endpoint == "" {
		endpoint = DefaultReverseGeocodingEndpoint
	}

	return &ReverseGeocoder{
		client:   client,
		endpoint: endpoint,
		apiKey:   apiKey,
		stats: &UsageStats{
			Name: reverseGeocoderName,
		},
	}
}
