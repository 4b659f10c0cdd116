package server

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/spanworks/nerd/pkg/models"
)

var validate = validator.New()

// ExtractHandler godoc
//
//	@Summary		Extracts named entities from a single text
//	@Description	set include_context to also receive the echoed text and entity types
//	@Tags			ner
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.ExtractRequest	true	"Extraction request"
//	@Success		200		{object}	models.ExtractionResult
//	@Failure		422		{object}	APIError	"Invalid input"
//	@Failure		503		{object}	APIError	"Model unavailable"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/extract [post]
func ExtractHandler(appState *models.AppState) http.HandlerFunc {
	extractor := appState.Extractor
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.ExtractRequest
		if err := decodeJSON(r, &request); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}
		if err := validate.Struct(request); err != nil {
			renderError(w, err, http.StatusUnprocessableEntity)
			return
		}

		if request.IncludeContext {
			result, err := extractor.ExtractWithContext(r.Context(), request.Text)
			if err != nil {
				renderExtractionError(w, err)
				return
			}
			if err := encodeJSON(w, result); err != nil {
				renderError(w, err, http.StatusInternalServerError)
			}
			return
		}

		entities, err := extractor.Extract(r.Context(), request.Text)
		if err != nil {
			renderExtractionError(w, err)
			return
		}
		result := models.ExtractionResult{
			Entities:    entities,
			EntityCount: len(entities),
		}
		if err := encodeJSON(w, result); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// ExtractBatchHandler godoc
//
//	@Summary		Extracts named entities from multiple texts
//	@Description	results align positionally with the input texts; the whole call fails if any text fails
//	@Tags			ner
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.BatchExtractRequest	true	"Batch extraction request"
//	@Success		200		{object}	models.BatchResult
//	@Failure		422		{object}	APIError	"Invalid input"
//	@Failure		503		{object}	APIError	"Model unavailable"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/extract/batch [post]
func ExtractBatchHandler(appState *models.AppState) http.HandlerFunc {
	extractor := appState.Extractor
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.BatchExtractRequest
		if err := decodeJSON(r, &request); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}
		if err := validate.Struct(request); err != nil {
			renderError(w, err, http.StatusUnprocessableEntity)
			return
		}

		batches, err := extractor.ExtractBatch(r.Context(), request.Texts)
		if err != nil {
			renderExtractionError(w, err)
			return
		}

		results := make([]models.ExtractionResult, len(batches))
		for i, entities := range batches {
			results[i] = models.ExtractionResult{
				Entities:    entities,
				EntityCount: len(entities),
			}
		}
		result := models.BatchResult{
			Results:    results,
			TotalTexts: len(results),
		}
		if err := encodeJSON(w, result); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
