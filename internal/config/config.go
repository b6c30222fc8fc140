package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"rollcall/internal"
)

const (
	DefaultRosterPrefix = "expected_participants"
	DefaultOutput       = "attendance.csv"
)

type Config struct {
	Dir          string
	RosterPrefix string
	RosterPath   string
	ExportPath   string
	Format       internal.ExportFormat
	OutputPath   string
	// StatusCode is nil when the column follows the format's default.
	StatusCode *bool

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env from the working directory, then ROLLCALL_* variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("ROLLCALL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("dir", cwd)
	v.SetDefault("roster_prefix", DefaultRosterPrefix)
	v.SetDefault("roster", "")
	v.SetDefault("export", "")
	v.SetDefault("format", string(internal.FormatAuto))
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")

	cfg := Config{
		Dir:          v.GetString("dir"),
		RosterPrefix: v.GetString("roster_prefix"),
		RosterPath:   v.GetString("roster"),
		ExportPath:   v.GetString("export"),
		Format:       internal.ExportFormat(strings.ToLower(strings.TrimSpace(v.GetString("format")))),
		OutputPath:   v.GetString("output"),
		LogLevel:     strings.ToLower(v.GetString("log_level")),
		LogFormat:    strings.ToLower(v.GetString("log_format")),
	}
	if v.IsSet("status_code") {
		enabled := v.GetBool("status_code")
		cfg.StatusCode = &enabled
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Dir) == "" {
		return fmt.Errorf("working directory is empty")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("output path is empty")
	}
	if c.Format == internal.FormatAuto {
		return nil
	}
	for _, f := range internal.Formats {
		if c.Format == f {
			return nil
		}
	}
	return &internal.UnsupportedFormatError{Format: string(c.Format)}
}
