package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name, e.g. ROSTER_DB_PATH.
const Prefix = "ROSTER"

// App holds runtime settings.
type App struct {
	// Storage
	DBPath      string `envconfig:"DB_PATH" default:"library.db" validate:"required"`
	SlowQueryMs int    `envconfig:"SLOW_QUERY_MS" default:"50" validate:"gte=1"`
	// Logging
	LogFile       string `envconfig:"LOG_FILE" default:"roster.log" validate:"required"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"10" validate:"gte=1"`
	LogMaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3" validate:"gte=0"`
}

var validate = validator.New()

// Load reads an optional .env file, then the environment, and validates the result.
// PRE: none
// POST: Returns a validated App, or an error naming the bad setting
func Load(envFiles ...string) (App, error) {
	// A missing .env is normal; variables may come from the real environment.
	_ = godotenv.Load(envFiles...)

	var c App
	if err := envconfig.Process(Prefix, &c); err != nil {
		return App{}, fmt.Errorf("read config: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return App{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}
