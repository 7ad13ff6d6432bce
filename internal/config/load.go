package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes all environment variables, e.g. VOCAB_DATABASE_DSN
const EnvPrefix = "VOCAB"

// Load configuration from defaults, an optional config file (TOML, YAML or
// JSON by extension), a .env file in the working directory and environment
// variables. Environment variables take precedence over the config file.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names the bot used before the VOCAB_ prefix existed keep working
	bindEnvs := []struct {
		key     string
		envVars []string
	}{
		{"telegram.token", []string{"VOCAB_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN"}},
		{"database.driver", []string{"VOCAB_DATABASE_DRIVER", "DB_TYPE"}},
		{"scheduler.start_hour", []string{"VOCAB_SCHEDULER_START_HOUR", "NOTIFICATION_START_HOUR"}},
		{"scheduler.end_hour", []string{"VOCAB_SCHEDULER_END_HOUR", "NOTIFICATION_END_HOUR"}},
	}
	for _, env := range bindEnvs {
		if err := v.BindEnv(append([]string{env.key}, env.envVars...)...); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVars[0], err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("telegram.token", d.Telegram.Token)
	v.SetDefault("telegram.debug", d.Telegram.Debug)
	v.SetDefault("scheduler.start_hour", d.Scheduler.StartHour)
	v.SetDefault("scheduler.end_hour", d.Scheduler.EndHour)
	v.SetDefault("scheduler.timezone", d.Scheduler.Timezone)
	v.SetDefault("study.learner_id", d.Study.LearnerID)
	v.SetDefault("study.words_per_day", d.Study.WordsPerDay)
	v.SetDefault("study.reviews_per_day", d.Study.ReviewsPerDay)
	v.SetDefault("study.notification_hour", d.Study.NotificationHour)
	v.SetDefault("study.preferences_path", d.Study.PreferencesPath)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}
