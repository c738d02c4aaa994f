package providers

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/9seconds/geolocalizer/geolib"
)

const ipinfoDefaultEndpoint = "https://ipinfo.io"

type ipinfoResponse struct {
	Error struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"error"`
	Bogon bool `json:"bogon"`

	IP       string `json:"ip"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Loc      string `json:"loc"`
	Postal   string `json:"postal"`
	Timezone string `json:"timezone"`
}

type ipinfoProvider struct {
	authToken string
	endpoint  string
	client    geolib.HTTPClient
}

func (i ipinfoProvider) Name() string {
	return NameIPInfo
}

func (i ipinfoProvider) Lookup(ctx context.Context, ip net.IP) (geolib.GeoRecord, error) {
	result := geolib.GeoRecord{}
	headers := map[string]string{}

	if i.authToken != "" {
		headers["Authorization"] = "Bearer " + i.authToken
	}

	jsonResponse := ipinfoResponse{}

	if err := fetchJSON(ctx, i.client, i.endpoint+"/"+ip.String(), headers, &jsonResponse); err != nil {
		return result, err
	}

	switch {
	case jsonResponse.Error.Title != "" || jsonResponse.Error.Message != "":
		return result, fmt.Errorf("failed response: title=%s, message=%s",
			jsonResponse.Error.Title, jsonResponse.Error.Message)
	case jsonResponse.Bogon:
		return result, fmt.Errorf("bogon ip address %s", ip)
	}

	result.IP = jsonResponse.IP
	result.CountryCode = jsonResponse.Country
	result.RegionName = jsonResponse.Region
	result.City = jsonResponse.City
	result.Zip = jsonResponse.Postal
	result.TimeZone = jsonResponse.Timezone
	result.Latitude, result.Longitude = ipinfoParseLoc(jsonResponse.Loc)

	return result, nil
}

// loc is "lat,lng". Broken values are treated as absent.
func ipinfoParseLoc(loc string) (float64, float64) {
	chunks := strings.SplitN(loc, ",", 2)
	if len(chunks) != 2 {
		return 0, 0
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(chunks[0]), 64)
	if err != nil {
		return 0, 0
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(chunks[1]), 64)
	if err != nil {
		return 0, 0
	}

	return lat, lng
}

// NewIPInfo creates a provider for ipinfo.io. Supported parameters:
// endpoint, auth_token.
func NewIPInfo(client geolib.HTTPClient, parameters map[string]string) geolib.Provider {
	return ipinfoProvider{
		authToken: parameters["auth_token"],
		endpoint:  endpointParam(parameters, ipinfoDefaultEndpoint),
		client:    client,
	}
}
