package geolib

import (
	"context"
	"encoding/json"
	"html"
	"strings"
)

// AttributeDebug is a shortcode attribute which dumps resolved
// GeoRecord instead of evaluating filters.
const AttributeDebug = "debug"

// Evaluate decides if a visitor from the context satisfies filters
// given as shortcode attributes. If there are no filters, visitor is
// not resolved at all.
func (g *Geolocalizer) Evaluate(ctx context.Context, attrs map[string]string) (MatchResult, GeoRecord, error) {
	filters := NewFilterSet(attrs)

	if filters.Empty() {
		return MatchNoFilter, GeoRecord{}, nil
	}

	geo, err := g.Resolve(ctx, "")
	if err != nil {
		return MatchFailed, geo, err
	}

	return Match(geo, filters), geo, nil
}

// Render returns a content which should be shown to the visitor:
// content itself if there are no filters or filters are satisfied;
// an empty string otherwise.
func (g *Geolocalizer) Render(ctx context.Context, attrs map[string]string, content string) string {
	if IsTruthy(attrs[AttributeDebug]) {
		return g.renderDebug(ctx)
	}

	result, _, err := g.Evaluate(ctx, attrs)

	return g.contentFor(result, err, content)
}

func (g *Geolocalizer) contentFor(result MatchResult, err error, content string) string {
	switch {
	case err != nil && g.opts.ShowOnLookupError:
		return content
	case err != nil:
		return ""
	case result == MatchFailed:
		return ""
	}

	return content
}

func (g *Geolocalizer) renderDebug(ctx context.Context) string {
	var dump string

	geo, err := g.Resolve(ctx, "")
	if err != nil {
		dump = err.Error()
	} else {
		data, _ := json.MarshalIndent(geo, "", "  ")
		dump = string(data)
	}

	return "<pre>" + html.EscapeString(dump) + "</pre>"
}

// IsTruthy interprets shortcode flags like debug="1" or debug="yes".
func IsTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on", "enabled":
		return true
	}

	return false
}
