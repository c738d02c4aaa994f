package geolib

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/qri-io/jsonschema"
)

const handlePostRenderMaxBodySize = 1 << 20

var handlePostRenderJSONSchema = func() *jsonschema.Schema {
	data := `{
        "type": "object",
        "required": [
            "attributes"
        ],
        "additionalProperties": false,
        "properties": {
            "attributes": {
                "type": "object",
                "additionalProperties": {
                    "type": "string"
                }
            },
            "content": {
                "type": "string"
            }
        }
    }`

	rv := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(data), rv); err != nil {
		panic(err)
	}

	return rv
}()

type handlePostRenderRequest struct {
	Attributes map[string]string `json:"attributes"`
	Content    string            `json:"content"`
}

type handlePostRenderResponse struct {
	Result struct {
		Decision MatchResult `json:"decision"`
		Content  string      `json:"content"`
	} `json:"result"`
}

func (h httpHandler) handlePostRender(w http.ResponseWriter, req *http.Request) {
	if !strings.Contains(req.Header.Get("Content-Type"), "application/json") {
		h.sendError(w, nil, "Incorrect content type", http.StatusUnsupportedMediaType)

		return
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(req.Body, handlePostRenderMaxBodySize))

	req.Body.Close()

	if err != nil {
		h.sendError(w, err, "Cannot read request body", http.StatusBadRequest)

		return
	}

	errs, err := handlePostRenderJSONSchema.ValidateBytes(req.Context(), bodyBytes)
	if err != nil {
		h.sendError(w, err, "Cannot validate body", http.StatusBadRequest)

		return
	}

	if len(errs) > 0 {
		h.sendError(w, errs[0], "Invalid request body", http.StatusBadRequest)

		return
	}

	parsedRequest := handlePostRenderRequest{}
	if err := json.Unmarshal(bodyBytes, &parsedRequest); err != nil {
		h.sendError(w, err, "Cannot parse request JSON", http.StatusBadRequest)

		return
	}

	response := handlePostRenderResponse{}

	if IsTruthy(parsedRequest.Attributes[AttributeDebug]) {
		response.Result.Decision = MatchNoFilter
		response.Result.Content = h.geo.Render(req.Context(), parsedRequest.Attributes, parsedRequest.Content)
	} else {
		decision, _, err := h.geo.Evaluate(req.Context(), parsedRequest.Attributes)

		response.Result.Decision = decision
		response.Result.Content = h.geo.contentFor(decision, err, parsedRequest.Content)
	}

	h.encodeJSON(w, response)
}
