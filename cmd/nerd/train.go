package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spanworks/nerd/pkg/models"
	"github.com/spanworks/nerd/pkg/trainer"
)

var (
	trainBaseModel  string
	trainDataPath   string
	trainOutputDir  string
	trainIterations int
	trainDropout    float64
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fine-tunes a named-entity model from labeled examples and writes it to disk",
	Example: `  nerd train --data train_data.json --output-dir ./custom_ner_model
  nerd --config config.yaml train -f train_data.json -n 20 --dropout 0.2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		examples, err := loadTrainingData(trainDataPath)
		if err != nil {
			return err
		}

		t := trainer.NewTrainer(trainBaseModel, trainOutputDir)
		t.Iterations = trainIterations
		t.Dropout = trainDropout

		if err := t.Train(cmd.Context(), examples); err != nil {
			return err
		}
		fmt.Println("Training completed successfully.")
		return nil
	},
}

// loadTrainingData reads a JSON file holding a list of training
// examples: [{"text": "...", "entities": [{"start": 0, "end": 6, "label": "ORG"}]}]
func loadTrainingData(path string) ([]models.TrainingExample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening training data: %w", err)
	}
	defer f.Close()

	var examples []models.TrainingExample
	if err := json.NewDecoder(f).Decode(&examples); err != nil {
		return nil, fmt.Errorf("decoding training data: %w", err)
	}
	return examples, nil
}
