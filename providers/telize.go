package providers

import (
	"context"
	"fmt"
	"net"

	"github.com/9seconds/geolocalizer/geolib"
)

const telizeDefaultEndpoint = "http://www.telize.com/geoip"

type telizeResponse struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Error   errorField `json:"error"`

	IP          string  `json:"ip"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country"`
	RegionCode  string  `json:"region_code"`
	Region      string  `json:"region"`
	City        string  `json:"city"`
	PostalCode  string  `json:"postal_code"`
	Timezone    string  `json:"timezone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type telizeProvider struct {
	client   geolib.HTTPClient
	endpoint string
}

func (t telizeProvider) Name() string {
	return NameTelize
}

func (t telizeProvider) Lookup(ctx context.Context, ip net.IP) (geolib.GeoRecord, error) {
	result := geolib.GeoRecord{}
	jsonResponse := telizeResponse{}

	if err := fetchJSON(ctx, t.client, t.endpoint+"/"+ip.String(), nil, &jsonResponse); err != nil {
		return result, err
	}

	switch {
	case jsonResponse.Error.Present():
		return result, fmt.Errorf("failed response: %s", jsonResponse.Error)
	case jsonResponse.Code != 0 || jsonResponse.Message != "":
		return result, fmt.Errorf("failed response: code=%d, message=%s",
			jsonResponse.Code, jsonResponse.Message)
	}

	result.IP = jsonResponse.IP
	result.CountryCode = jsonResponse.CountryCode
	result.CountryName = jsonResponse.Country
	result.RegionCode = jsonResponse.RegionCode
	result.RegionName = jsonResponse.Region
	result.City = jsonResponse.City
	result.Zip = jsonResponse.PostalCode
	result.TimeZone = jsonResponse.Timezone
	result.Latitude = jsonResponse.Latitude
	result.Longitude = jsonResponse.Longitude

	return result, nil
}

// NewTelize creates a provider for telize API. Supported parameters:
// endpoint.
func NewTelize(client geolib.HTTPClient, parameters map[string]string) geolib.Provider {
	return telizeProvider{
		client:   client,
		endpoint: endpointParam(parameters, telizeDefaultEndpoint),
	}
}
