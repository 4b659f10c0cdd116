package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spanworks/nerd/config"
	"github.com/spanworks/nerd/pkg/models"
	"github.com/spanworks/nerd/pkg/testutils"
)

// stubExtractor implements models.EntityExtractor with canned results,
// standing in for a loaded model.
type stubExtractor struct {
	ready    bool
	name     string
	entities map[string][]models.Entity
	err      error
}

var _ models.EntityExtractor = &stubExtractor{}

func (s *stubExtractor) Extract(_ context.Context, text string) ([]models.Entity, error) {
	if s.err != nil {
		return nil, s.err
	}
	if strings.TrimSpace(text) == "" {
		return nil, models.NewInvalidInputError("text", "must not be empty")
	}
	entities, ok := s.entities[text]
	if !ok {
		return []models.Entity{}, nil
	}
	return entities, nil
}

func (s *stubExtractor) ExtractBatch(ctx context.Context, texts []string) ([][]models.Entity, error) {
	results := make([][]models.Entity, len(texts))
	for i, text := range texts {
		entities, err := s.Extract(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
		results[i] = entities
	}
	return results, nil
}

func (s *stubExtractor) ExtractWithContext(ctx context.Context, text string) (*models.ContextResult, error) {
	entities, err := s.Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	types := make([]string, 0)
	for _, ent := range entities {
		if _, ok := seen[ent.Label]; !ok {
			seen[ent.Label] = struct{}{}
			types = append(types, ent.Label)
		}
	}
	return &models.ContextResult{
		Text:        text,
		Entities:    entities,
		EntityCount: len(entities),
		EntityTypes: types,
	}, nil
}

func (s *stubExtractor) Load(context.Context) error { return s.err }
func (s *stubExtractor) Ready() bool                { return s.ready }
func (s *stubExtractor) ModelName() string          { return s.name }

func testAppState(ext models.EntityExtractor) *models.AppState {
	return &models.AppState{
		Extractor: ext,
		Config:    &config.Config{},
	}
}

func loadedAppState() *models.AppState {
	return testAppState(&stubExtractor{
		ready: true,
		name:  "en-core-web-sm",
		entities: map[string][]models.Entity{
			testutils.AppleText: testutils.AppleEntities(),
			testutils.MicrosoftText: {
				{Text: "Microsoft", Label: "ORG", Start: 0, End: 9},
				{Text: "Bill Gates", Label: "PERSON", Start: 25, End: 35},
			},
			testutils.AmazonText: {
				{Text: "Amazon", Label: "ORG", Start: 0, End: 6},
				{Text: "Seattle", Label: "GPE", Start: 19, End: 26},
			},
		},
	})
}

func doJSONRequest(t *testing.T, appState *models.AppState, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()

	router := setupRouter(appState)
	router.ServeHTTP(res, req)
	return res
}

func TestGetServiceInfoRoute(t *testing.T) {
	res := doJSONRequest(t, loadedAppState(), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, res.Code)

	var info models.ServiceInfo
	require.NoError(t, json.NewDecoder(res.Body).Decode(&info))
	assert.Equal(t, serviceName, info.Service)
	assert.Equal(t, statusOperational, info.Status)
	assert.NotEmpty(t, info.Version)
}

func TestGetHealthRouteModelLoaded(t *testing.T) {
	res := doJSONRequest(t, loadedAppState(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, res.Code)

	var health models.HealthResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&health))
	assert.Equal(t, statusHealthy, health.Status)
	assert.True(t, health.ModelLoaded)
	assert.Equal(t, "en-core-web-sm", health.ModelName)
}

func TestGetHealthRouteModelMissing(t *testing.T) {
	appState := testAppState(&stubExtractor{ready: false, name: "en-core-web-sm"})

	res := doJSONRequest(t, appState, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, res.Code)

	var health models.HealthResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&health))
	assert.Equal(t, statusUnhealthy, health.Status)
	assert.False(t, health.ModelLoaded)
}

func TestExtractRoute(t *testing.T) {
	res := doJSONRequest(t, loadedAppState(), http.MethodPost, "/extract",
		models.ExtractRequest{Text: testutils.AppleText})
	require.Equal(t, http.StatusOK, res.Code)

	var result models.ExtractionResult
	require.NoError(t, json.NewDecoder(res.Body).Decode(&result))
	assert.Equal(t, 4, result.EntityCount)
	assert.Equal(t, testutils.AppleEntities(), result.Entities)
}

func TestExtractRouteWithContext(t *testing.T) {
	res := doJSONRequest(t, loadedAppState(), http.MethodPost, "/extract",
		models.ExtractRequest{Text: testutils.AppleText, IncludeContext: true})
	require.Equal(t, http.StatusOK, res.Code)

	var result models.ContextResult
	require.NoError(t, json.NewDecoder(res.Body).Decode(&result))
	assert.Equal(t, testutils.AppleText, result.Text)
	assert.Equal(t, 4, result.EntityCount)
	assert.Equal(t, []string{"ORG", "PERSON", "GPE"}, result.EntityTypes)
}

func TestExtractRouteEmptyText(t *testing.T) {
	res := doJSONRequest(t, loadedAppState(), http.MethodPost, "/extract",
		models.ExtractRequest{Text: ""})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

func TestExtractRouteWhitespaceText(t *testing.T) {
	res := doJSONRequest(t, loadedAppState(), http.MethodPost, "/extract",
		models.ExtractRequest{Text: "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

func TestExtractRouteMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/extract",
		strings.NewReader("{not json"))
	res := httptest.NewRecorder()

	setupRouter(loadedAppState()).ServeHTTP(res, req)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestExtractRouteModelNotLoaded(t *testing.T) {
	appState := testAppState(&stubExtractor{err: models.ErrModelNotLoaded})

	res := doJSONRequest(t, appState, http.MethodPost, "/extract",
		models.ExtractRequest{Text: "Some text."})
	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
}

func TestExtractRouteUnexpectedError(t *testing.T) {
	appState := testAppState(&stubExtractor{err: fmt.Errorf("model exploded")})

	res := doJSONRequest(t, appState, http.MethodPost, "/extract",
		models.ExtractRequest{Text: "Some text."})
	require.Equal(t, http.StatusInternalServerError, res.Code)

	// Internal detail must not leak to the caller.
	assert.NotContains(t, res.Body.String(), "exploded")
}

func TestExtractBatchRoute(t *testing.T) {
	res := doJSONRequest(t, loadedAppState(), http.MethodPost, "/extract/batch",
		models.BatchExtractRequest{Texts: []string{
			testutils.MicrosoftText,
			testutils.AmazonText,
		}})
	require.Equal(t, http.StatusOK, res.Code)

	var result models.BatchResult
	require.NoError(t, json.NewDecoder(res.Body).Decode(&result))
	assert.Equal(t, 2, result.TotalTexts)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "Microsoft", result.Results[0].Entities[0].Text)
	assert.Equal(t, "Amazon", result.Results[1].Entities[0].Text)
}

func TestExtractBatchRouteEmptyList(t *testing.T) {
	res := doJSONRequest(t, loadedAppState(), http.MethodPost, "/extract/batch",
		models.BatchExtractRequest{Texts: []string{}})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

func TestExtractBatchRouteEmptyElement(t *testing.T) {
	res := doJSONRequest(t, loadedAppState(), http.MethodPost, "/extract/batch",
		models.BatchExtractRequest{Texts: []string{testutils.AmazonText, ""}})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

func TestSendVersion(t *testing.T) {
	res := doJSONRequest(t, loadedAppState(), http.MethodGet, "/health", nil)
	assert.Equal(t, config.VersionString, res.Header().Get(versionHeader))
}
