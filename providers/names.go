package providers

const (
	// Identifier for telize.com.
	NameTelize = "telize"

	// Identifier for freegeoip.app and its self-hosted clones.
	NameFreeGeoIP = "freegeoip"

	// Identifier for ipstack.com
	NameIPStack = "ipstack"

	// Identifier for ipinfo.io.
	NameIPInfo = "ipinfo"

	// Identifier for MaxMind GeoIP2/GeoLite2 City databases.
	NameMaxmind = "maxmind"
)
