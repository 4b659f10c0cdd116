package server

import (
	"net/http"

	"github.com/spanworks/nerd/config"
	"github.com/spanworks/nerd/pkg/models"
)

const (
	statusHealthy     = "healthy"
	statusUnhealthy   = "unhealthy"
	statusOperational = "operational"
	serviceName       = "Named Entity Recognition API"
)

// GetServiceInfoHandler godoc
//
//	@Summary		Returns static service metadata
//	@Tags			root
//	@Produce		json
//	@Success		200	{object}	models.ServiceInfo
//	@Router			/ [get]
func GetServiceInfoHandler(_ *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := models.ServiceInfo{
			Service: serviceName,
			Version: config.VersionString,
			Status:  statusOperational,
		}
		if err := encodeJSON(w, info); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetHealthHandler godoc
//
//	@Summary		Returns the health of the service and its model
//	@Description	reports whether the NER model is loaded; does not trigger a load
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	models.HealthResponse
//	@Failure		503	{object}	models.HealthResponse
//	@Router			/health [get]
func GetHealthHandler(appState *models.AppState) http.HandlerFunc {
	extractor := appState.Extractor
	return func(w http.ResponseWriter, r *http.Request) {
		loaded := extractor.Ready()

		health := models.HealthResponse{
			Status:      statusHealthy,
			ModelLoaded: loaded,
			ModelName:   extractor.ModelName(),
		}
		if !loaded {
			health.Status = statusUnhealthy
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := encodeJSON(w, health); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
