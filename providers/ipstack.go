package providers

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/9seconds/geolocalizer/geolib"
)

const ipstackDefaultHost = "api.ipstack.com"

type ipstackResponse struct {
	Error struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error"`
	Success *bool `json:"success"`

	IP          string  `json:"ip"`
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name"`
	RegionCode  string  `json:"region_code"`
	RegionName  string  `json:"region_name"`
	City        string  `json:"city"`
	Zip         string  `json:"zip"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TimeZone    struct {
		ID string `json:"id"`
	} `json:"time_zone"`
}

type ipstackProvider struct {
	client     geolib.HTTPClient
	httpScheme string
	host       string
	authToken  string
}

func (i ipstackProvider) Name() string {
	return NameIPStack
}

func (i ipstackProvider) Lookup(ctx context.Context, ip net.IP) (geolib.GeoRecord, error) {
	result := geolib.GeoRecord{}

	if i.authToken == "" {
		return result, ErrAuthTokenIsRequired
	}

	jsonResponse := ipstackResponse{}

	if err := fetchJSON(ctx, i.client, i.buildURL(ip), nil, &jsonResponse); err != nil {
		return result, err
	}

	if jsonResponse.Error.Code != 0 || (jsonResponse.Success != nil && !*jsonResponse.Success) {
		return result, fmt.Errorf(
			"failed response: code=%d, type=%s, info=%s",
			jsonResponse.Error.Code,
			jsonResponse.Error.Type,
			jsonResponse.Error.Info)
	}

	result.IP = jsonResponse.IP
	result.CountryCode = jsonResponse.CountryCode
	result.CountryName = jsonResponse.CountryName
	result.RegionCode = jsonResponse.RegionCode
	result.RegionName = jsonResponse.RegionName
	result.City = jsonResponse.City
	result.Zip = jsonResponse.Zip
	result.TimeZone = jsonResponse.TimeZone.ID
	result.Latitude = jsonResponse.Latitude
	result.Longitude = jsonResponse.Longitude

	return result, nil
}

func (i ipstackProvider) buildURL(ip net.IP) string {
	getQuery := url.Values{}

	getQuery.Set("access_key", i.authToken)
	getQuery.Set("output", "json")
	getQuery.Set("language", "en")
	getQuery.Set("hostname", "0")
	getQuery.Set("security", "0")

	u := url.URL{
		Scheme:   i.httpScheme,
		Host:     i.host,
		Path:     "/" + ip.String(),
		RawQuery: getQuery.Encode(),
	}

	return u.String()
}

// NewIPStack creates a provider for ipstack. Supported parameters:
// auth_token, secure, host.
//
// ipstack cannot work without a token. If it is absent, every lookup
// fails with ErrAuthTokenIsRequired.
func NewIPStack(client geolib.HTTPClient, parameters map[string]string) geolib.Provider {
	scheme := "http"

	if boolParam(parameters["secure"]) {
		scheme = "https"
	}

	host := parameters["host"]
	if host == "" {
		host = ipstackDefaultHost
	}

	return ipstackProvider{
		client:     client,
		authToken:  parameters["auth_token"],
		httpScheme: scheme,
		host:       host,
	}
}
