package store

// Config holds configuration for the Store.
type Config struct {
	// TableName is the name of the Family Forest table.
	// Default: "family_forest"
	TableName string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		TableName: "family_forest",
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.TableName == "" {
		c.TableName = "family_forest"
	}
}
