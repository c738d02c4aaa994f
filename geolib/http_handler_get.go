package geolib

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h httpHandler) handleGetSelf(w http.ResponseWriter, req *http.Request) {
	if CallerIP(req.Context()) == nil {
		h.sendError(w, nil, "Cannot detect your IP address", http.StatusBadRequest)

		return
	}

	h.resolve(w, req, "")
}

func (h httpHandler) handleGetIP(w http.ResponseWriter, req *http.Request) {
	h.resolve(w, req, chi.URLParam(req, "ip"))
}

func (h httpHandler) resolve(w http.ResponseWriter, req *http.Request, ipAddress string) {
	resolved, err := h.geo.Resolve(req.Context(), ipAddress)
	if err != nil {
		h.sendError(w, err, "Cannot resolve IP address", h.lookupStatusCode(err))

		return
	}

	response := struct {
		Result GeoRecord `json:"result"`
	}{
		Result: resolved,
	}

	h.encodeJSON(w, response)
}

func (h httpHandler) handleGetReverse(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()

	var results AddressComponentList

	if query.Get("lat") == "" && query.Get("lng") == "" {
		geo, err := h.geo.Resolve(req.Context(), "")
		if err != nil {
			h.sendError(w, err, "Cannot resolve IP address", h.lookupStatusCode(err))

			return
		}

		results = h.geo.ReverseGeocodeRecord(req.Context(), geo)
	} else {
		lat, err := strconv.ParseFloat(query.Get("lat"), 64)
		if err != nil {
			h.sendError(w, err, "Incorrect latitude", http.StatusBadRequest)

			return
		}

		lng, err := strconv.ParseFloat(query.Get("lng"), 64)
		if err != nil {
			h.sendError(w, err, "Incorrect longitude", http.StatusBadRequest)

			return
		}

		if err := ValidateCoordinates(lat, lng); err != nil {
			h.sendError(w, err, "Incorrect coordinates", http.StatusBadRequest)

			return
		}

		results = h.geo.ReverseGeocode(req.Context(), lat, lng)
	}

	typeTag := query.Get("type")

	if typeTag == "" {
		response := struct {
			Results AddressComponentList `json:"results"`
		}{
			Results: results,
		}

		h.encodeJSON(w, response)

		return
	}

	value, err := h.geo.ExtractComponent(results, typeTag, query.Get("property"))

	switch {
	case errors.Is(err, ErrUnknownComponentProperty):
		h.sendError(w, err, "Incorrect property", http.StatusBadRequest)

		return
	case err != nil:
		h.sendError(w, err, "Cannot find address component", http.StatusNotFound)

		return
	}

	response := struct {
		Result struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"result"`
	}{}
	response.Result.Type = typeTag
	response.Result.Value = value

	h.encodeJSON(w, response)
}

func (h httpHandler) handleGetCountries(w http.ResponseWriter, req *http.Request) {
	countries, err := h.geo.ListCountries(req.Context())

	switch {
	case errors.Is(err, ErrCountriesUnavailable):
		h.sendError(w, err, "Countries are not available", http.StatusServiceUnavailable)

		return
	case err != nil:
		h.sendError(w, err, "Cannot list countries", 0)

		return
	}

	response := struct {
		Results []Country `json:"results"`
	}{
		Results: countries,
	}

	h.encodeJSON(w, response)
}

func (h httpHandler) handleGetStats(w http.ResponseWriter, req *http.Request) {
	response := struct {
		Results []*UsageStats `json:"results"`
	}{
		Results: h.geo.UsageStats(),
	}

	h.encodeJSON(w, response)
}
