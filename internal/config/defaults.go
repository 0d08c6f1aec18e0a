package config

import (
	_ "embed"
)

//go:embed defaults/collector.yaml
var defaultAppYAML []byte

// DefaultAppConfig returns the hardcoded configuration used when even the
// embedded YAML cannot be parsed.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Locale:    "en",
		LevelsDir: "",
		DBPath:    "~/.collector/runs.db",
		Engine: EngineConfig{
			MaxSteps:    1000,
			StepDelayMS: 150,
		},
		Log: LogConfig{
			Level: "info",
		},
		SSH: SSHConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
	}
}
