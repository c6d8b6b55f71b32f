package main

import (
	"os"

	"github.com/elC0mpa/aws-rate-genie/config"
)

// LoadConfig reads the file named by GENIE_CONFIG, if any, with the usual
// GENIE_* environment overrides.
func LoadConfig() (*config.Config, error) {
	return config.Load(os.Getenv("GENIE_CONFIG"))
}
