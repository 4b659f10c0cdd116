package extractor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	prose "github.com/jdkato/prose/v2"

	"github.com/spanworks/nerd/config"
	"github.com/spanworks/nerd/internal"
	"github.com/spanworks/nerd/pkg/models"
)

var log = internal.GetLogger()

// Force compiler to validate that Extractor implements the EntityExtractor interface.
var _ models.EntityExtractor = &Extractor{}

// Extractor wraps a prose NER model behind the EntityExtractor
// interface. The model handle is loaded once, lazily or via Load, and
// is read-only thereafter; prose documents are safe to build
// concurrently against a loaded model.
type Extractor struct {
	modelName     string
	modelPath     string
	maxTextLength int

	ready atomic.Bool

	mu      sync.Mutex
	model   *prose.Model // nil when the builtin model is in use
	loadErr error
}

func NewExtractor(cfg *config.Config) *Extractor {
	maxLen := cfg.Model.MaxTextLength
	if maxLen <= 0 {
		maxLen = config.DefaultMaxTextLength
	}
	name := cfg.Model.Name
	if cfg.Model.Path != "" {
		name = cfg.Model.Path
	}
	return &Extractor{
		modelName:     name,
		modelPath:     cfg.Model.Path,
		maxTextLength: maxLen,
	}
}

// Load loads the model handle. The first call wins: a failure is
// remembered and returned by every subsequent call until the process
// is restarted with a corrected model path.
func (e *Extractor) Load(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadLocked()
}

func (e *Extractor) loadLocked() error {
	if e.ready.Load() {
		return nil
	}
	if e.loadErr != nil {
		return e.loadErr
	}

	if e.modelPath != "" {
		log.Infof("Loading custom model from %s", e.modelPath)
		model, err := modelFromDisk(e.modelPath)
		if err != nil {
			e.loadErr = fmt.Errorf("%w: %v", models.ErrModelNotLoaded, err)
			log.Errorf("Failed to load model from %s: %v", e.modelPath, err)
			return e.loadErr
		}
		e.model = model
	} else {
		log.Infof("Loading builtin model: %s", e.modelName)
	}

	// Warm up the pipeline so load failures surface here rather than on
	// the first request.
	if err := e.warmUp(); err != nil {
		e.model = nil
		e.loadErr = fmt.Errorf("%w: %v", models.ErrModelNotLoaded, err)
		log.Errorf("Failed to initialize model pipeline: %v", err)
		return e.loadErr
	}

	e.ready.Store(true)
	log.Infof("Model loaded: %s", e.modelName)
	return nil
}

// modelFromDisk wraps prose.ModelFromDisk, which panics on an
// unreadable model directory.
func modelFromDisk(path string) (m *prose.Model, err error) {
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("reading model at %s: %v", path, r)
		}
	}()
	return prose.ModelFromDisk(path), nil
}

// warmUp runs one document through the pipeline. A corrupt model can
// panic inside prose, so the panic is converted to a load error.
func (e *Extractor) warmUp() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model pipeline: %v", r)
		}
	}()
	_, err = e.document("warming up the model")
	return err
}

func (e *Extractor) ensureLoaded() error {
	// Lock-free fast path once the model handle is in place. The mutex
	// only guards the one-time load transition.
	if e.ready.Load() {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadLocked()
}

func (e *Extractor) Ready() bool {
	return e.ready.Load()
}

func (e *Extractor) ModelName() string {
	return e.modelName
}

func (e *Extractor) document(text string) (*prose.Document, error) {
	if e.model != nil {
		return prose.NewDocument(text, prose.UsingModel(e.model))
	}
	return prose.NewDocument(text)
}

func (e *Extractor) validateText(field, text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewInvalidInputError(field, "must not be empty")
	}
	if len(text) > e.maxTextLength {
		return models.NewInvalidInputError(
			field,
			fmt.Sprintf("exceeds maximum length of %d characters", e.maxTextLength),
		)
	}
	return nil
}

// Extract returns the entities found in text, in document order.
func (e *Extractor) Extract(_ context.Context, text string) ([]models.Entity, error) {
	if err := e.validateText("text", text); err != nil {
		return nil, err
	}
	if err := e.ensureLoaded(); err != nil {
		return nil, err
	}

	doc, err := e.document(text)
	if err != nil {
		return nil, fmt.Errorf("extracting entities: %w", err)
	}

	return mapEntities(text, doc.Entities()), nil
}

// ExtractBatch processes texts in order. The result aligns positionally
// with the input; the whole call fails on the first failing text.
func (e *Extractor) ExtractBatch(ctx context.Context, texts []string) ([][]models.Entity, error) {
	if len(texts) == 0 {
		return nil, models.NewInvalidInputError("texts", "must not be empty")
	}

	results := make([][]models.Entity, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.validateText(fmt.Sprintf("texts[%d]", i), text); err != nil {
			return nil, err
		}
		entities, err := e.Extract(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
		results[i] = entities
	}
	return results, nil
}

// ExtractWithContext is Extract plus the echoed input text and the
// deduplicated entity types, in first-seen order.
func (e *Extractor) ExtractWithContext(ctx context.Context, text string) (*models.ContextResult, error) {
	entities, err := e.Extract(ctx, text)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	types := make([]string, 0)
	for _, ent := range entities {
		if _, ok := seen[ent.Label]; ok {
			continue
		}
		seen[ent.Label] = struct{}{}
		types = append(types, ent.Label)
	}

	return &models.ContextResult{
		Text:        text,
		Entities:    entities,
		EntityCount: len(entities),
		EntityTypes: types,
	}, nil
}

// mapEntities maps prose entities to the public shape. Prose entities
// carry text and label only; character offsets are recovered with a
// forward cursor scan, which is valid because entities arrive in
// document order.
func mapEntities(text string, ents []prose.Entity) []models.Entity {
	out := make([]models.Entity, 0, len(ents))
	cursor := 0
	for _, ent := range ents {
		idx := strings.Index(text[cursor:], ent.Text)
		if idx < 0 {
			// The same surface form appeared earlier; rescan from the start.
			idx = strings.Index(text, ent.Text)
			if idx < 0 {
				log.Warnf("Entity %q not found in source text; skipping", ent.Text)
				continue
			}
			cursor = 0
		}
		start := cursor + idx
		end := start + len(ent.Text)
		out = append(out, models.Entity{
			Text:             ent.Text,
			Label:            ent.Label,
			Start:            start,
			End:              end,
			LabelDescription: DescribeLabel(ent.Label),
		})
		cursor = end
	}
	return out
}
