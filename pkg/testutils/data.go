package testutils

import (
	"github.com/spanworks/nerd/pkg/models"
)

// Sample texts used across the extractor and server tests.
const (
	AppleText     = "Apple Inc. was founded by Steve Jobs in Cupertino, California."
	MicrosoftText = "Microsoft was founded by Bill Gates."
	AmazonText    = "Amazon is based in Seattle."
)

// AppleEntities is the canonical extraction for AppleText.
func AppleEntities() []models.Entity {
	return []models.Entity{
		{Text: "Apple Inc.", Label: "ORG", Start: 0, End: 10},
		{Text: "Steve Jobs", Label: "PERSON", Start: 26, End: 36},
		{Text: "Cupertino", Label: "GPE", Start: 40, End: 49},
		{Text: "California", Label: "GPE", Start: 51, End: 61},
	}
}

// SampleTrainingExamples returns a small labeled dataset for trainer
// tests and examples.
func SampleTrainingExamples() []models.TrainingExample {
	return []models.TrainingExample{
		{
			Text: "Google was founded in 1998 by Larry Page and Sergey Brin.",
			Entities: []models.Span{
				{Start: 0, End: 6, Label: "ORG"},
				{Start: 30, End: 40, Label: "PERSON"},
				{Start: 45, End: 56, Label: "PERSON"},
			},
		},
		{
			Text: "Microsoft was established in Albuquerque, New Mexico.",
			Entities: []models.Span{
				{Start: 0, End: 9, Label: "ORG"},
				{Start: 29, End: 40, Label: "GPE"},
				{Start: 42, End: 52, Label: "GPE"},
			},
		},
		{
			Text: "Elon Musk is the CEO of Tesla and SpaceX.",
			Entities: []models.Span{
				{Start: 0, End: 9, Label: "PERSON"},
				{Start: 24, End: 29, Label: "ORG"},
				{Start: 34, End: 40, Label: "ORG"},
			},
		},
		{
			Text: "Amazon has its headquarters in Seattle, Washington.",
			Entities: []models.Span{
				{Start: 0, End: 6, Label: "ORG"},
				{Start: 31, End: 38, Label: "GPE"},
				{Start: 40, End: 50, Label: "GPE"},
			},
		},
		{
			Text: "Mark Zuckerberg founded Facebook in 2004.",
			Entities: []models.Span{
				{Start: 0, End: 15, Label: "PERSON"},
				{Start: 24, End: 32, Label: "ORG"},
			},
		},
	}
}
