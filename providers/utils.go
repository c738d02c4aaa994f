package providers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/9seconds/geolocalizer/geolib"
)

func flushResponse(resp io.ReadCloser) {
	io.Copy(io.Discard, resp) // nolint: errcheck
	resp.Close()
}

// fetchJSON sends GET request and decodes JSON response into target.
// Anything but 200 is an error.
func fetchJSON(ctx context.Context, client geolib.HTTPClient, url string, headers map[string]string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(target); err != nil {
		return fmt.Errorf("cannot parse a response: %w", err)
	}

	return nil
}

func endpointParam(parameters map[string]string, defaultValue string) string {
	if value := strings.TrimRight(parameters["endpoint"], "/"); value != "" {
		return value
	}

	return defaultValue
}

func boolParam(param string) bool {
	switch strings.ToLower(param) {
	case "1", "true", "enabled", "yes":
		return true
	default:
		return false
	}
}

// errorField is a payload of "error" field which vendors put into a
// body instead of data. It can be a string, a boolean or an object.
type errorField json.RawMessage

func (e *errorField) UnmarshalJSON(data []byte) error {
	*e = append((*e)[:0], data...)

	return nil
}

func (e errorField) Present() bool {
	switch strings.TrimSpace(string(e)) {
	case "", "null", "false", `""`, "{}", "0":
		return false
	}

	return true
}

func (e errorField) String() string {
	return string(e)
}
