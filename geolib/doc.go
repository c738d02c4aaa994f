// This package provides a set of structs and functions which are used
// to show or hide content depending on where a visitor comes from.
//
// geolib is core of the geolocalizer project. The rest of the
// application is an _example_ on how to use this library: how to pass
// parameters from HTTP requests and CLI, how to wire providers and
// storage.
//
// Geolocalizer is a main entity of the geolib. It glues a Locator
// (IP address to GeoRecord via pluggable Provider), a Matcher (GeoRecord
// against a FilterSet of acceptable values), a ReverseGeocoder
// (coordinates to address components) and an optional CountryStore.
//
// Matching is case-insensitive and filters are combined with logical
// OR: a visitor passes if any single field matches any of its listed
// values.
package geolib
