package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// FeedConfig points at the static transit feed. Either a directory of
// GTFS .txt files or a GTFS zip archive; the directory wins when both are set.
type FeedConfig struct {
	Dir string `yaml:"dir" validate:"omitempty"`
	Zip string `yaml:"zip" validate:"omitempty"`
}

// ResolverConfig contains station resolution tuning
type ResolverConfig struct {
	// FuzzyThreshold is the minimum normalized edit similarity (0-1) a
	// token must exceed to be accepted as a station name.
	FuzzyThreshold float64 `yaml:"fuzzyThreshold" validate:"gte=0,lte=1"`
}

// PlannerConfig contains route planning limits
type PlannerConfig struct {
	DirectLimit         int `yaml:"directLimit" validate:"gte=0"`
	InterchangeLimit    int `yaml:"interchangeLimit" validate:"gte=0"`
	MaxOptions          int `yaml:"maxOptions" validate:"gte=0"`
	InterchangeEstimate int `yaml:"interchangeEstimateMinutes" validate:"gte=0"`
}

// LoggingConfig contains log output configuration
type LoggingConfig struct {
	Level   string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Console bool   `yaml:"console"`
	File    string `yaml:"file"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Feed     FeedConfig     `yaml:"feed"`
	Resolver ResolverConfig `yaml:"resolver"`
	Planner  PlannerConfig  `yaml:"planner"`
	Logging  LoggingConfig  `yaml:"logging"`
}
