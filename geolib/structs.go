package geolib

import (
	"bytes"
	"strconv"
	"strings"
)

const (
	FieldIP          = "ip"
	FieldCountryCode = "country_code"
	FieldCountryName = "country_name"
	FieldRegionCode  = "region_code"
	FieldRegionName  = "region_name"
	FieldCity        = "city"
	FieldZip         = "zip"
	FieldTimeZone    = "time_zone"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
)

var fieldAliases = map[string]string{
	"country":     FieldCountryName,
	"region":      FieldRegionName,
	"zip_code":    FieldZip,
	"postal_code": FieldZip,
	"timezone":    FieldTimeZone,
}

var knownFields = map[string]struct{}{
	FieldIP:          {},
	FieldCountryCode: {},
	FieldCountryName: {},
	FieldRegionCode:  {},
	FieldRegionName:  {},
	FieldCity:        {},
	FieldZip:         {},
	FieldTimeZone:    {},
	FieldLatitude:    {},
	FieldLongitude:   {},
}

// CanonicalField maps a field name or one of its aliases (country,
// region, zip_code, postal_code, timezone) to a canonical field name.
// The second value is false if the name is unknown.
func CanonicalField(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	if alias, ok := fieldAliases[name]; ok {
		return alias, true
	}

	if _, ok := knownFields[name]; ok {
		return name, true
	}

	return "", false
}

// GeoRecord is a flat set of geographic attributes of the IP address.
// Providers fill what they know, the rest stays empty.
type GeoRecord struct {
	IP          string  `json:"ip"`
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name"`
	RegionCode  string  `json:"region_code"`
	RegionName  string  `json:"region_name"`
	City        string  `json:"city"`
	Zip         string  `json:"zip"`
	TimeZone    string  `json:"time_zone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// HasCoordinates tells if provider has returned a location. 0,0 is
// treated as absence.
func (g GeoRecord) HasCoordinates() bool {
	return g.Latitude != 0 || g.Longitude != 0
}

// Get returns a string value of the field. Unknown fields and absent
// values are empty strings.
func (g GeoRecord) Get(field string) string {
	name, ok := CanonicalField(field)
	if !ok {
		return ""
	}

	switch name {
	case FieldIP:
		return g.IP
	case FieldCountryCode:
		return g.CountryCode
	case FieldCountryName:
		return g.CountryName
	case FieldRegionCode:
		return g.RegionCode
	case FieldRegionName:
		return g.RegionName
	case FieldCity:
		return g.City
	case FieldZip:
		return g.Zip
	case FieldTimeZone:
		return g.TimeZone
	case FieldLatitude:
		if !g.HasCoordinates() {
			return ""
		}

		return strconv.FormatFloat(g.Latitude, 'f', -1, 64)
	case FieldLongitude:
		if !g.HasCoordinates() {
			return ""
		}

		return strconv.FormatFloat(g.Longitude, 'f', -1, 64)
	}

	return ""
}

// FilterSet maps canonical field names to a comma-separated list of
// acceptable values.
type FilterSet map[string]string

// NewFilterSet builds a FilterSet out of arbitrary attributes. Unknown
// attributes are dropped, aliases are folded into canonical names.
func NewFilterSet(attrs map[string]string) FilterSet {
	rv := FilterSet{}

	for k, v := range attrs {
		name, ok := CanonicalField(k)
		if !ok {
			continue
		}

		v = strings.TrimSpace(v)

		if prev := rv[name]; prev != "" && v != "" {
			v = prev + "," + v
		} else if v == "" {
			v = prev
		}

		rv[name] = v
	}

	return rv
}

// Empty returns true if no field has a constraint.
func (f FilterSet) Empty() bool {
	for _, v := range f {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}

// MatchResult is a decision of the matcher: no constraints were given,
// constraints were satisfied or constraints were not satisfied.
type MatchResult uint8

const (
	MatchNoFilter MatchResult = iota
	MatchOK
	MatchFailed
)

func (m MatchResult) String() string {
	switch m {
	case MatchOK:
		return "match"
	case MatchFailed:
		return "no_match"
	default:
		return "no_filter"
	}
}

// MarshalJSON is to conform json.Marshaller interface.
func (m MatchResult) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}

	buf.WriteByte('"')
	buf.WriteString(m.String())
	buf.WriteByte('"')

	return buf.Bytes(), nil
}

// AddressComponent is a piece of the geocoded address, like a route or
// a street number.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

func (a AddressComponent) HasType(typeTag string) bool {
	for _, v := range a.Types {
		if v == typeTag {
			return true
		}
	}

	return false
}

type GeocodingResult struct {
	FormattedAddress  string             `json:"formatted_address"`
	AddressComponents []AddressComponent `json:"address_components"`
}

// AddressComponentList is an ordered list of reverse geocoding results
// as mapping provider has returned them.
type AddressComponentList []GeocodingResult

// Country is a row of the countries table.
type Country struct {
	ID         int64   `json:"id"`
	Zone       string  `json:"zone"`
	Name       string  `json:"country"`
	ISOCode    string  `json:"isocode"`
	Currency   string  `json:"currency"`
	Symbol     string  `json:"symbol"`
	SymbolHTML string  `json:"symbol_html"`
	Code       string  `json:"code"`
	Tax        float64 `json:"tax"`
	Continent  string  `json:"continent"`
	Status     string  `json:"status"`
}
