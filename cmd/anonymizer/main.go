package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/anonymizer/lib/pipeline"
)

// config structure
type anonymizerConfig struct {
	lib.BaseConfig  `mapstructure:",squash"`
	pipeline.Config `mapstructure:",squash"`
	InputDir        string `mapstructure:"input_dir"`
	OutputDir       string `mapstructure:"output_dir"`
	Flatten         bool
}

var config anonymizerConfig

func initConfig() {
	// initialise config with defaults.
	defaults := pipeline.DefaultConfig()
	defaults["input_dir"] = "./input"
	defaults["output_dir"] = "./output"
	defaults["flatten"] = false

	if err := lib.InitializeConfig("./config/anonymizer.yml", defaults, &config); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func main() {
	initConfig()

	p, err := pipeline.FromConfig(config.Config)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	mapping, err := p.Anonymize(config.InputDir, config.OutputDir, config.Flatten)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	fmt.Println(mapping)
}
