package models

import (
	"context"
)

// EntityExtractor is the interface the HTTP layer and CLI use to run
// named-entity extraction against the loaded model.
type EntityExtractor interface {
	// Extract returns the entities found in text, in document order.
	Extract(ctx context.Context, text string) ([]Entity, error)
	// ExtractBatch processes texts in order; the result is positionally
	// aligned with the input. The whole call fails if any text fails.
	ExtractBatch(ctx context.Context, texts []string) ([][]Entity, error)
	// ExtractWithContext is Extract plus the echoed text and the
	// deduplicated entity types observed.
	ExtractWithContext(ctx context.Context, text string) (*ContextResult, error)
	// Load eagerly loads the model. Extraction calls load lazily, so
	// calling Load is only required when startup failures should be
	// surfaced before the first request.
	Load(ctx context.Context) error
	Ready() bool
	ModelName() string
}
