// Geolocalizer shows or hides content depending on where a visitor
// comes from.
//
// Idea is simple: you have a piece of content, like a banner, and you
// want to show it only to visitors from Rome or London. Visitor IP
// address is resolved by a geolocation provider and then its city,
// region or country is checked against the list you gave.
//
// Tool itself is organized into 3 logical parts:
//
// Geolib
//
// geolib is a main package of the application which contains
// Geolocalizer struct: Locator, Matcher, ReverseGeocoder and rendering
// of the shortcode content. It has its own API and can act as
// http.Handler.
//
// Providers
//
// This package has a set of geolocation provider adapters: telize,
// freegeoip, ipstack, ipinfo and offline MaxMind databases.
//
// Countrydb
//
// A table of countries in sqlite or mysql.
//
// A main package itself is an example of how to wire everything
// together. Resulting binary starts http server or resolves addresses
// from CLI.
package main
