package providers

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/9seconds/geolocalizer/geolib"
)

const freegeoipDefaultEndpoint = "https://freegeoip.app"

type freegeoipResponse struct {
	Error errorField `json:"error"`

	IP          string  `json:"ip"`
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name"`
	RegionCode  string  `json:"region_code"`
	RegionName  string  `json:"region_name"`
	City        string  `json:"city"`
	ZipCode     string  `json:"zip_code"`
	TimeZone    string  `json:"time_zone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type freegeoipProvider struct {
	client   geolib.HTTPClient
	endpoint string
	apiKey   string
}

func (f freegeoipProvider) Name() string {
	return NameFreeGeoIP
}

func (f freegeoipProvider) Lookup(ctx context.Context, ip net.IP) (geolib.GeoRecord, error) {
	result := geolib.GeoRecord{}
	jsonResponse := freegeoipResponse{}

	if err := fetchJSON(ctx, f.client, f.buildURL(ip), nil, &jsonResponse); err != nil {
		return result, err
	}

	if jsonResponse.Error.Present() {
		return result, fmt.Errorf("failed response: %s", jsonResponse.Error)
	}

	result.IP = jsonResponse.IP
	result.CountryCode = jsonResponse.CountryCode
	result.CountryName = jsonResponse.CountryName
	result.RegionCode = jsonResponse.RegionCode
	result.RegionName = jsonResponse.RegionName
	result.City = jsonResponse.City
	result.Zip = jsonResponse.ZipCode
	result.TimeZone = jsonResponse.TimeZone
	result.Latitude = jsonResponse.Latitude
	result.Longitude = jsonResponse.Longitude

	return result, nil
}

func (f freegeoipProvider) buildURL(ip net.IP) string {
	rv := f.endpoint + "/json/" + ip.String()

	if f.apiKey != "" {
		query := url.Values{}

		query.Set("apikey", f.apiKey)

		rv += "?" + query.Encode()
	}

	return rv
}

// NewFreeGeoIP creates a provider for freegeoip compatible API.
// Supported parameters: endpoint, auth_token.
func NewFreeGeoIP(client geolib.HTTPClient, parameters map[string]string) geolib.Provider {
	return freegeoipProvider{
		client:   client,
		endpoint: endpointParam(parameters, freegeoipDefaultEndpoint),
		apiKey:   parameters["auth_token"],
	}
}
