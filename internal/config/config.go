// Package config provides YAML-based application configuration loading.
package config

// AppConfig contains all configuration for the collector arcade.
type AppConfig struct {
	Locale    string       `yaml:"locale" validate:"required"`
	LevelsDir string       `yaml:"levels_dir"`
	DBPath    string       `yaml:"db_path" validate:"required"`
	Engine    EngineConfig `yaml:"engine"`
	Log       LogConfig    `yaml:"log"`
	SSH       SSHConfig    `yaml:"ssh"`
}

// EngineConfig bounds program execution.
type EngineConfig struct {
	MaxSteps    int `yaml:"max_steps" validate:"min=1,max=1000000"`
	StepDelayMS int `yaml:"step_delay_ms" validate:"min=0,max=5000"` // Delay between animated steps
}

// LogConfig controls logger verbosity.
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// SSHConfig configures the remote play server.
type SSHConfig struct {
	Address            string `yaml:"address" validate:"required"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes" validate:"min=1"`
}
