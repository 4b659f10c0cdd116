package models

// Entity is a labeled span within a source text. Start and End are
// character offsets such that text[Start:End] == Text.
type Entity struct {
	Text             string `json:"text"`
	Label            string `json:"label"`
	Start            int    `json:"start"`
	End              int    `json:"end"`
	LabelDescription string `json:"label_description,omitempty"`
}

// ExtractionResult holds one text's worth of entities.
type ExtractionResult struct {
	Entities    []Entity `json:"entities"`
	EntityCount int      `json:"entity_count"`
}

// ContextResult is an ExtractionResult augmented with the echoed input
// text and the deduplicated set of labels observed.
type ContextResult struct {
	Text        string   `json:"text"`
	Entities    []Entity `json:"entities"`
	EntityCount int      `json:"entity_count"`
	EntityTypes []string `json:"entity_types"`
}

// BatchResult aligns positionally with the input texts sequence.
type BatchResult struct {
	Results    []ExtractionResult `json:"results"`
	TotalTexts int                `json:"total_texts"`
}

// Span is a (start, end) character-offset pair with its label.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// TrainingExample is one supervised training signal for the trainer.
type TrainingExample struct {
	Text     string `json:"text"`
	Entities []Span `json:"entities"`
}
