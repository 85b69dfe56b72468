package config

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds JustCMS API credentials and endpoint settings
type APIConfig struct {
	Token     string `mapstructure:"token"`
	ProjectID string `mapstructure:"project_id"`
	BaseURL   string `mapstructure:"base_url"`
	TimeoutS  int    `mapstructure:"timeout_seconds"`
}

// ExportConfig lists the menus and layouts included in a site export
type ExportConfig struct {
	Menus   []string `mapstructure:"menus"`
	Layouts []string `mapstructure:"layouts"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
