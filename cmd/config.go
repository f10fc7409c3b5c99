package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

const defaultBacklogReportSchedule = "0 */5 * * * *"

type Config struct {
	HTTPPort   int
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string
	// MigrationsDir overrides the migrations embedded into the binary.
	MigrationsDir string
	// BacklogReportSchedule is a cron spec with seconds. Empty disables the report.
	BacklogReportSchedule string
}

// LoadConfig reads configuration in order: .env (if present), environment, flags.
// Variables already set in the environment win over the .env file.
func LoadConfig(args []string) (Config, error) {
	flags := pflag.NewFlagSet("dispatch", pflag.ContinueOnError)
	envFile := flags.String("env-file", ".env", "dotenv file to load if present")
	port := flags.IntP("port", "p", 0, "HTTP port, overrides HTTP_PORT")
	migrations := flags.String("migrations", "", "directory with migration files")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	_ = godotenv.Load(*envFile)

	httpPort, err := cast.ToIntE(getOrReturnDefault("HTTP_PORT", 8080))
	if err != nil {
		return Config{}, fmt.Errorf("invalid HTTP_PORT: %w", err)
	}

	cfg := Config{
		HTTPPort:              httpPort,
		DBHost:                cast.ToString(getOrReturnDefault("DB_HOST", "localhost")),
		DBPort:                cast.ToString(getOrReturnDefault("DB_PORT", "5432")),
		DBUser:                cast.ToString(getOrReturnDefault("DB_USER", "postgres")),
		DBPassword:            cast.ToString(getOrReturnDefault("DB_PASSWORD", "")),
		DBName:                cast.ToString(getOrReturnDefault("DB_NAME", "dispatch")),
		DBSslMode:             cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable")),
		LogLevel:              cast.ToString(getOrReturnDefault("LOG_LEVEL", "info")),
		MigrationsDir:         cast.ToString(getOrReturnDefault("MIGRATIONS_DIR", "")),
		BacklogReportSchedule: defaultBacklogReportSchedule,
	}
	if schedule, ok := os.LookupEnv("BACKLOG_REPORT_SCHEDULE"); ok {
		cfg.BacklogReportSchedule = schedule
	}

	if flags.Changed("port") {
		cfg.HTTPPort = *port
	}
	if flags.Changed("migrations") {
		cfg.MigrationsDir = *migrations
	}

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return Config{}, fmt.Errorf("invalid port: %d", cfg.HTTPPort)
	}
	if _, err = cfg.SlogLevel(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getOrReturnDefault(key string, defaultValue any) any {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
