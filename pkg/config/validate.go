package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically; call it again after overriding fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path must be non-empty")
	}
	if t := c.Quiz.MatchThreshold; t < 1 || t > 100 {
		return fmt.Errorf("quiz.match_threshold must be within 1..100 (got %d)", t)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	return nil
}
