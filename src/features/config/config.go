package config

// Config holds the application configuration.
type Config struct {
	URL       string `yaml:"url" validate:"required,url"`
	Recursive bool   `yaml:"recursive"`
	Override  bool   `yaml:"override"`
	Silent    bool   `yaml:"silent"`
	Embed     bool   `yaml:"embed"`
	Jobs      int    `yaml:"jobs" validate:"min=1"`
	Logger    Logger `yaml:"logger"`
}

// Logger holds the configuration for the app logging.
type Logger struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
