package config

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Quiz     QuizConfig     `yaml:"quiz"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"POLSKI_DATABASE" env-default:"db.sqlite3"`
}

// QuizConfig holds answer checking settings.
type QuizConfig struct {
	// MatchThreshold is the minimum token-sort ratio (0-100) for a correct answer.
	MatchThreshold int `yaml:"match_threshold" env:"POLSKI_MATCH_THRESHOLD" env-default:"90"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
