package config

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
}

// OutputConfig controls how response documents are printed
type OutputConfig struct {
	Indent int `yaml:"indent" validate:"gte=0,lte=8"` // spaces per level, 0 is compact
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// Default returns the configuration used when no file is found.
func Default() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Output:  OutputConfig{Indent: 4},
	}
}
