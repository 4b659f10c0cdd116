package trainer

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	prose "github.com/jdkato/prose/v2"

	"github.com/spanworks/nerd/internal"
	"github.com/spanworks/nerd/pkg/models"
)

var log = internal.GetLogger()

const (
	DefaultIterations = 30
	DefaultDropout    = 0.2
)

// Trainer fine-tunes a named-entity model from labeled spans and
// persists it to disk for later loading by the extractor. It is an
// offline batch job and is not part of the serving path.
type Trainer struct {
	// BaseModel names the model the run starts from. It becomes the
	// name of the trained model.
	BaseModel string
	// OutputDir receives the trained model artifact.
	OutputDir string
	// Iterations is the number of shuffled passes over the training
	// set. Prose trains in a single call, so the passes are
	// concatenated into one training set before the call.
	Iterations int
	// Dropout is the per-pass probability of dropping an example.
	Dropout float64
}

func NewTrainer(baseModel, outputDir string) *Trainer {
	return &Trainer{
		BaseModel:  baseModel,
		OutputDir:  outputDir,
		Iterations: DefaultIterations,
		Dropout:    DefaultDropout,
	}
}

// Train validates the examples, runs the fine-tuning loop, and writes
// the resulting model to OutputDir.
func (t *Trainer) Train(ctx context.Context, examples []models.TrainingExample) error {
	if len(examples) == 0 {
		return models.NewTrainingDataError(0, "no training examples provided")
	}
	if t.Iterations <= 0 {
		t.Iterations = DefaultIterations
	}
	if t.Dropout < 0 || t.Dropout >= 1 {
		return fmt.Errorf("dropout must be in [0, 1), got %f", t.Dropout)
	}

	if err := ValidateExamples(examples); err != nil {
		return err
	}

	log.Infof("Training NER model for %d iterations over %d examples...",
		t.Iterations, len(examples))

	contexts, err := assembleTrainingSet(ctx, examples, t.Iterations, t.Dropout)
	if err != nil {
		return err
	}

	model := prose.ModelFromData(t.BaseModel, prose.UsingEntities(contexts))
	if err := model.Write(t.OutputDir); err != nil {
		return fmt.Errorf("writing model to %s: %w", t.OutputDir, err)
	}

	log.Infof("Model saved to %s", t.OutputDir)
	return nil
}

// ValidateExamples checks every example's spans against its text.
func ValidateExamples(examples []models.TrainingExample) error {
	for i, ex := range examples {
		if strings.TrimSpace(ex.Text) == "" {
			return models.NewTrainingDataError(i, "text must not be empty")
		}
		for _, span := range ex.Entities {
			if span.Label == "" {
				return models.NewTrainingDataError(
					i, fmt.Sprintf("span (%d, %d) has no label", span.Start, span.End))
			}
			if span.Start < 0 || span.End > len(ex.Text) || span.Start >= span.End {
				return models.NewTrainingDataError(
					i,
					fmt.Sprintf("span (%d, %d) out of bounds for text of length %d",
						span.Start, span.End, len(ex.Text)),
				)
			}
		}
	}
	return nil
}

// assembleTrainingSet concatenates Iterations shuffled passes over the
// examples, dropping each example per pass with probability dropout.
// Per-pass counts are logged; prose does not expose a loss figure.
func assembleTrainingSet(
	ctx context.Context,
	examples []models.TrainingExample,
	iterations int,
	dropout float64,
) ([]prose.EntityContext, error) {
	contexts := make([]prose.EntityContext, 0, iterations*len(examples))
	order := make([]int, len(examples))
	for i := range order {
		order[i] = i
	}

	for iter := 0; iter < iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rand.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		kept := 0
		for _, idx := range order {
			if dropout > 0 && rand.Float64() < dropout {
				continue
			}
			contexts = append(contexts, entityContext(examples[idx]))
			kept++
		}
		log.Infof("Iteration %d/%d - %d/%d examples", iter+1, iterations, kept, len(examples))
	}

	if len(contexts) == 0 {
		// Possible with a small dataset and aggressive dropout; train on
		// one full pass rather than nothing.
		for _, ex := range examples {
			contexts = append(contexts, entityContext(ex))
		}
	}
	return contexts, nil
}

func entityContext(ex models.TrainingExample) prose.EntityContext {
	spans := make([]prose.LabeledEntity, len(ex.Entities))
	for i, span := range ex.Entities {
		spans[i] = prose.LabeledEntity{
			Start: span.Start,
			End:   span.End,
			Label: span.Label,
		}
	}
	return prose.EntityContext{
		Text:   ex.Text,
		Spans:  spans,
		Accept: true,
	}
}
