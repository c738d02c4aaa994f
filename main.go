package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/9seconds/geolocalizer/geolib"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

const (
	version = "0.1.0"

	shutdownTimeout = 10 * time.Second
)

var (
	app = kingpin.New(
		"geolocalizer",
		"Show or hide content depending on visitor geolocation")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("GEOLOCALIZER_DEBUG").
		Bool()
	configPath = app.Flag("config", "Path to the config (hjson or toml).").
			Short('c').
			Envar("GEOLOCALIZER_CONFIG").
			Required().
			ExistingFile()
	apiKey = app.Flag("api-key", "API key of geolocation provider.").
		Envar("GEOLOCALIZER_API_KEY").
		String()
	mapsAPIKey = app.Flag("maps-api-key", "API key of reverse geocoding provider.").
			Envar("GEOLOCALIZER_MAPS_API_KEY").
			String()

	serveCommand = app.Command("serve", "Run HTTP server.").Default()

	resolveCommand = app.Command("resolve", "Resolve IP address.")
	resolveIP      = resolveCommand.Arg("ip", "IP address to resolve.").Required().String()

	renderCommand = app.Command("render", "Render content of the shortcode for the visitor. Content is read from stdin.")
	renderIP      = renderCommand.Flag("ip", "IP address of the visitor.").Required().IP()
	renderAttrs   = renderCommand.Arg("attributes", "Shortcode attributes like city=rome,london.").StringMap()

	reverseCommand  = app.Command("reverse", "Reverse geocode coordinates.")
	reverseLat      = reverseCommand.Arg("lat", "Latitude.").Required().Float64()
	reverseLng      = reverseCommand.Arg("lng", "Longitude.").Required().Float64()
	reverseType     = reverseCommand.Flag("type", "Address component type, like route or street_number.").String()
	reverseProperty = reverseCommand.Flag("property", "Address component property.").
			Default(geolib.ComponentLongName).
			Enum(geolib.ComponentLongName, geolib.ComponentShortName)

	countriesCommand = app.Command("countries", "List countries.")
)

func init() {
	app.Version(version)
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func main() {
	godotenv.Load() // nolint: errcheck

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	conf, err := parseConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse config")
	}

	if *apiKey != "" {
		if conf.Provider.SpecificParameters == nil {
			conf.Provider.SpecificParameters = map[string]string{}
		}

		conf.Provider.SpecificParameters["auth_token"] = *apiKey
	}

	if *mapsAPIKey != "" {
		conf.ReverseGeocoder.APIKey = *mapsAPIKey
	}

	ctx, cancel := makeRootContext()
	defer cancel()

	geo, closer, err := makeGeolocalizer(ctx, conf)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot initialize geolocalizer")
	}

	defer closer()

	switch command {
	case serveCommand.FullCommand():
		err = runServe(ctx, conf, geo)
	case resolveCommand.FullCommand():
		err = runResolve(ctx, geo)
	case renderCommand.FullCommand():
		err = runRender(ctx, geo)
	case reverseCommand.FullCommand():
		err = runReverse(ctx, geo)
	case countriesCommand.FullCommand():
		err = runCountries(ctx, geo)
	}

	if err != nil {
		closer()
		log.Fatal().Err(err).Str("command", command).Msg("command has failed")
	}
}

func runServe(ctx context.Context, conf *config, geo *geolib.Geolocalizer) error {
	var handler http.Handler = geo

	if conf.BasicAuth.Enabled() {
		handler = middleware.BasicAuth("geolocalizer", map[string]string{
			conf.BasicAuth.User: conf.BasicAuth.Password,
		})(handler)
	}

	listener, err := net.Listen("tcp", conf.GetListen())
	if err != nil {
		return fmt.Errorf("cannot start listener: %w", err)
	}

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		srv.Shutdown(shutdownCtx) // nolint: errcheck
	}()

	log.Info().Str("listen", conf.GetListen()).Msg("start http server")

	if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server has failed: %w", err)
	}

	return nil
}

func runResolve(ctx context.Context, geo *geolib.Geolocalizer) error {
	resolved, err := geo.Resolve(ctx, *resolveIP)
	if err != nil {
		return err
	}

	return printJSON(resolved)
}

func runRender(ctx context.Context, geo *geolib.Geolocalizer) error {
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("cannot read content: %w", err)
	}

	ctx = geolib.WithCallerIP(ctx, *renderIP)

	fmt.Print(geo.Render(ctx, *renderAttrs, strings.TrimRight(string(content), "\n")))

	return nil
}

func runReverse(ctx context.Context, geo *geolib.Geolocalizer) error {
	if err := geolib.ValidateCoordinates(*reverseLat, *reverseLng); err != nil {
		return err
	}

	results := geo.ReverseGeocode(ctx, *reverseLat, *reverseLng)

	if *reverseType == "" {
		return printJSON(results)
	}

	value, err := geo.ExtractComponent(results, *reverseType, *reverseProperty)
	if err != nil {
		return err
	}

	fmt.Println(value)

	return nil
}

func runCountries(ctx context.Context, geo *geolib.Geolocalizer) error {
	countries, err := geo.ListCountries(ctx)
	if err != nil {
		return err
	}

	return printJSON(countries)
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)

	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	return encoder.Encode(data)
}
