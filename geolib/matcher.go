package geolib

import "strings"

// Match checks if GeoRecord satisfies FilterSet.
//
// Every non-empty filter is a comma-separated list of acceptable
// values. Comparison is exact but case-insensitive. Filters are
// combined with logical OR, so it is enough to satisfy a single one.
// If no filter has a value, MatchNoFilter is returned.
func Match(geo GeoRecord, filters FilterSet) MatchResult {
	rv := MatchNoFilter

	for field, value := range filters {
		if strings.TrimSpace(value) == "" {
			continue
		}

		rv = MatchFailed

		if matchField(geo.Get(field), value) {
			return MatchOK
		}
	}

	return rv
}

func matchField(actual, acceptable string) bool {
	actual = strings.ToLower(actual)

	for _, v := range strings.Split(acceptable, ",") {
		if strings.ToLower(strings.TrimSpace(v)) == actual {
			return true
		}
	}

	return false
}
