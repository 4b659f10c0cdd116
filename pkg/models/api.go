package models

// ExtractRequest is the request body for POST /extract.
type ExtractRequest struct {
	Text           string `json:"text"            validate:"required"`
	IncludeContext bool   `json:"include_context"`
}

// BatchExtractRequest is the request body for POST /extract/batch.
type BatchExtractRequest struct {
	Texts []string `json:"texts" validate:"required,min=1,dive,required"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelName   string `json:"model_name"`
}

// ServiceInfo is the static metadata returned from the root route.
type ServiceInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
