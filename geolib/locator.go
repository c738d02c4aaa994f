package geolib

import (
	"context"
	"net"
	"strings"
)

// Locator resolves IP addresses into GeoRecord with a help of the
// provider. It never retries and never caches.
type Locator struct {
	provider Provider
	stats    *UsageStats
}

func (l *Locator) Name() string {
	return l.provider.Name()
}

// Resolve returns a GeoRecord for the given address. If address is
// empty, an address of the caller is taken from the context (see
// WithCallerIP).
//
// All errors are *LookupError and match ErrUnresolvable.
func (l *Locator) Resolve(ctx context.Context, ipAddress string) (GeoRecord, error) {
	var ip net.IP

	ipAddress = strings.TrimSpace(ipAddress)

	if ipAddress == "" {
		ip = CallerIP(ctx)
		if ip == nil {
			return GeoRecord{}, &LookupError{
				Provider: l.provider.Name(),
				Err:      ErrNoCallerAddress,
			}
		}
	} else {
		ip = net.ParseIP(ipAddress)
		if ip == nil {
			return GeoRecord{}, &LookupError{
				IP:       ipAddress,
				Provider: l.provider.Name(),
				Err:      ErrInvalidIP,
			}
		}
	}

	record, err := l.provider.Lookup(ctx, ip)

	l.stats.Used(err)

	if err != nil {
		return GeoRecord{}, &LookupError{
			IP:       ip.String(),
			Provider: l.provider.Name(),
			Err:      err,
		}
	}

	return l.normalize(ip, record), nil
}

func (l *Locator) Stats() *UsageStats {
	return l.stats
}

func (l *Locator) normalize(ip net.IP, record GeoRecord) GeoRecord {
	if record.IP == "" {
		record.IP = ip.String()
	}

	if record.CountryCode != "" {
		record.CountryCode = NormalizeAlpha2Code(record.CountryCode)
	}

	if record.CountryName == "" && record.CountryCode != "" {
		record.CountryName = CountryName(record.CountryCode)
	}

	return record
}

func NewLocator(provider Provider) *Locator {
	return &Locator{
		provider: provider,
		stats: &UsageStats{
			Name: provider.Name(),
		},
	}
}
