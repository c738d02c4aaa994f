package geolib

import (
	"sort"
	"strings"

	"github.com/pariz/gountries"
)

var countryQuery = gountries.New()

// NormalizeAlpha2Code returns a normalized 2-letter ISO3166 code.
// Normalized code is uppercased with some additional mapping. Some
// vendors return ZZ, EU or AP for 'unknown' or 'somewhere in a region';
// this function returns "" instead. Some databases still use YU for
// Serbia, FX for metropolitan France and UK for Great Britain.
func NormalizeAlpha2Code(alpha2 string) string {
	alpha2 = strings.ToUpper(strings.TrimSpace(alpha2))

	if len(alpha2) != 2 {
		return ""
	}

	switch alpha2 {
	case "ZZ", "AP", "EU":
		return ""
	case "YU":
		return "CS"
	case "FX":
		return "FR"
	case "UK":
		return "GB"
	default:
		return alpha2
	}
}

// CountryName returns a common english name of the country by its
// 2-letter code. Unknown codes give empty string.
func CountryName(alpha2 string) string {
	country, err := countryQuery.FindCountryByAlpha(NormalizeAlpha2Code(alpha2))
	if err != nil {
		return ""
	}

	return country.Name.Common
}

// ISOCountries returns all countries known to ISO3166 table as
// Country rows, sorted by name. Tax and currency symbols are not
// part of this data set and stay empty.
func ISOCountries() []Country {
	rv := make([]Country, 0, len(countryQuery.Countries))

	for _, v := range countryQuery.Countries {
		if NormalizeAlpha2Code(v.Alpha2) == "" {
			continue
		}

		country := Country{
			Zone:      v.SubRegion,
			Name:      v.Name.Common,
			ISOCode:   v.Alpha2,
			Code:      v.Alpha3,
			Continent: v.Continent,
			Status:    "publish",
		}

		if len(v.Currencies) > 0 {
			country.Currency = v.Currencies[0]
		}

		rv = append(rv, country)
	}

	sort.Slice(rv, func(i, j int) bool {
		return rv[i].Name < rv[j].Name
	})

	return rv
}
