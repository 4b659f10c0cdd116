package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spanworks/nerd/config"
	"github.com/spanworks/nerd/internal"
	"github.com/spanworks/nerd/pkg/trainer"
)

var (
	log *logrus.Logger

	cfgFile     string
	showVersion bool
	dumpConfig  bool
)

var cmd = &cobra.Command{
	Use:   "nerd",
	Short: "nerd serves named-entity extraction from text over an HTTP API",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var dumpJSONSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for nerd's configuration file",
	Example: "nerd json-schema > nerd_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(schema))
		return nil
	},
}

func init() {
	cmd.AddCommand(trainCmd)
	cmd.AddCommand(dumpJSONSchemaCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")

	trainCmd.Flags().
		StringVarP(&trainBaseModel, "base-model", "m", config.DefaultModelName, "Base model name to start from")
	trainCmd.Flags().
		StringVarP(&trainDataPath, "data", "f", "", "Path to a JSON file of training examples")
	trainCmd.Flags().
		StringVarP(&trainOutputDir, "output-dir", "o", "./custom_ner_model", "Directory to write the trained model to")
	trainCmd.Flags().
		IntVarP(&trainIterations, "iterations", "n", trainer.DefaultIterations, "Number of training iterations")
	trainCmd.Flags().
		Float64Var(&trainDropout, "dropout", trainer.DefaultDropout, "Dropout rate for training")
	_ = trainCmd.MarkFlagRequired("data")
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
