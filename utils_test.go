package main

import (
	"path/filepath"
	"testing"

	"github.com/9seconds/geolocalizer/providers"
	"github.com/stretchr/testify/assert"
)

func TestMakeProviderOnline(t *testing.T) {
	for _, name := range []string{
		providers.NameTelize,
		providers.NameFreeGeoIP,
		providers.NameIPStack,
		providers.NameIPInfo,
	} {
		prov, err := makeProvider(configProvider{Name: name})

		assert.NoError(t, err, name)
		assert.Equal(t, name, prov.Name())
	}
}

func TestMakeProviderMaxmindMissingDatabase(t *testing.T) {
	prov, err := makeProvider(configProvider{
		Name: providers.NameMaxmind,
		SpecificParameters: map[string]string{
			"path": filepath.Join(t.TempDir(), "GeoLite2-City.mmdb"),
		},
	})

	assert.Error(t, err)
	assert.Nil(t, prov)
}

func TestMakeProviderMaxmind(t *testing.T) {
	prov, err := makeProvider(configProvider{
		Name: providers.NameMaxmind,
		SpecificParameters: map[string]string{
			"path": filepath.Join("providers", "testdata", "GeoIP2-City-Test.mmdb"),
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, providers.NameMaxmind, prov.Name())

	prov.(*providers.Maxmind).Shutdown()
}

func TestMakeProviderUnknown(t *testing.T) {
	_, err := makeProvider(configProvider{Name: "unknown"})

	assert.Error(t, err)
}
