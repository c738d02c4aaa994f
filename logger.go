package main

import (
	"net"
	"os"

	"github.com/9seconds/geolocalizer/geolib"
	"github.com/rs/zerolog"
)

type logger struct {
	lookupLog    zerolog.Logger
	reverseLog   zerolog.Logger
	countriesLog zerolog.Logger
}

func (l *logger) LookupError(ip net.IP, name string, err error) {
	l.lookupLog.Error().Str("provider", name).IPAddr("ip", ip).Err(err).Msg("")
}

func (l *logger) ReverseGeocodeError(lat, lng float64, err error) {
	l.reverseLog.Error().Float64("lat", lat).Float64("lng", lng).Err(err).Msg("")
}

func (l *logger) CountriesError(err error) {
	l.countriesLog.Error().Err(err).Msg("")
}

func newLogger() geolib.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return &logger{
		lookupLog:    zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "lookup").Logger(),
		reverseLog:   zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "reverse_geocode").Logger(),
		countriesLog: zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "countries").Logger(),
	}
}
