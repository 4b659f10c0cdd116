package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spanworks/nerd/internal"
	"github.com/spanworks/nerd/pkg/models"
)

var log = internal.GetLogger()

// encodeJSON encodes data into JSON and writes it to the response writer.
func encodeJSON(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(data)
}

// decodeJSON decodes a JSON request body into the provided data struct.
func decodeJSON(r *http.Request, data interface{}) error {
	return json.NewDecoder(r.Body).Decode(&data)
}

// renderError renders an error response. Internal errors are logged
// with detail but return a generic message to the caller.
func renderError(w http.ResponseWriter, err error, status int) {
	if status >= http.StatusInternalServerError &&
		status != http.StatusServiceUnavailable {
		log.Error(err)
		http.Error(w, "internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

// renderExtractionError maps extractor errors to the HTTP taxonomy:
// invalid input is client-correctable, a missing model means
// retry-later, anything else is unexpected.
func renderExtractionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		renderError(w, err, http.StatusUnprocessableEntity)
	case errors.Is(err, models.ErrModelNotLoaded):
		renderError(w, err, http.StatusServiceUnavailable)
	default:
		renderError(w, err, http.StatusInternalServerError)
	}
}
