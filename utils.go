package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/9seconds/geolocalizer/countrydb"
	"github.com/9seconds/geolocalizer/geolib"
	"github.com/9seconds/geolocalizer/providers"
	"github.com/spf13/afero"
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

func makeProvider(conf configProvider) (geolib.Provider, error) {
	params := conf.GetSpecificParameters()

	switch conf.GetName() {
	case providers.NameTelize:
		return providers.NewTelize(makeHTTPClient(conf.configHTTPClient), params), nil
	case providers.NameFreeGeoIP:
		return providers.NewFreeGeoIP(makeHTTPClient(conf.configHTTPClient), params), nil
	case providers.NameIPStack:
		return providers.NewIPStack(makeHTTPClient(conf.configHTTPClient), params), nil
	case providers.NameIPInfo:
		return providers.NewIPInfo(makeHTTPClient(conf.configHTTPClient), params), nil
	case providers.NameMaxmind:
		prov, err := providers.NewMaxmind(afero.NewOsFs(), params)
		if err != nil {
			return nil, fmt.Errorf("cannot create maxmind provider: %w", err)
		}

		return prov, nil
	}

	return nil, fmt.Errorf("unsupported provider name: %s", conf.GetName())
}

func makeHTTPClient(conf configHTTPClient) geolib.HTTPClient {
	httpClient := &http.Client{
		Timeout: conf.GetHTTPTimeout(),
	}

	return geolib.NewHTTPClient(httpClient,
		"geolocalizer/"+version,
		conf.GetCircuitBreakerOpenThreshold(),
		conf.GetCircuitBreakerHalfOpenTimeout(),
		conf.GetCircuitBreakerResetFailuresTimeout())
}

func makeCountryStore(ctx context.Context, conf configCountries) (*countrydb.Store, error) {
	store, err := countrydb.Open(ctx, conf.Driver, conf.DSN, conf.Table)
	if err != nil {
		return nil, fmt.Errorf("cannot open countries database: %w", err)
	}

	if conf.Seed {
		if _, err := store.Seed(ctx); err != nil {
			store.Close()

			return nil, fmt.Errorf("cannot seed countries database: %w", err)
		}
	}

	return store, nil
}

// makeGeolocalizer wires everything together. Returned function
// releases resources.
func makeGeolocalizer(ctx context.Context, conf *config) (*geolib.Geolocalizer, func(), error) {
	provider, err := makeProvider(conf.Provider)
	if err != nil {
		return nil, nil, err
	}

	closers := []func(){}

	if vv, ok := provider.(*providers.Maxmind); ok {
		closers = append(closers, vv.Shutdown)
	}

	var geocoder *geolib.ReverseGeocoder

	if conf.ReverseGeocoder.Enabled {
		geocoder = geolib.NewReverseGeocoder(makeHTTPClient(conf.ReverseGeocoder.configHTTPClient),
			conf.ReverseGeocoder.Endpoint,
			conf.ReverseGeocoder.APIKey)
	}

	var countries geolib.CountryStore

	if conf.Countries.Enabled() {
		store, err := makeCountryStore(ctx, conf.Countries)
		if err != nil {
			for _, v := range closers {
				v()
			}

			return nil, nil, err
		}

		countries = store

		closers = append(closers, func() { store.Close() })
	}

	geo := geolib.NewGeolocalizer(geolib.NewLocator(provider),
		geocoder,
		countries,
		newLogger(),
		geolib.Options{
			ShowOnLookupError: conf.ShowOnLookupError(),
			TrustProxyHeaders: conf.TrustProxyHeaders,
		})

	return geo, func() {
		for _, v := range closers {
			v()
		}
	}, nil
}
