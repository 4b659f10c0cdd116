package models

import (
	"github.com/spanworks/nerd/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	Extractor EntityExtractor
	Config    *config.Config
}
