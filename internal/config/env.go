package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"
)

type Env struct {
	AppAddr  string
	GinMode  string
	Timezone *time.Location

	CatalogFile string
	StoreDriver string
	DB          DBConfig

	SnapshotPath     string
	SnapshotSchedule string

	CORSAllowedOrigins []string

	AMQPURL      string
	EventLogPath string
	ConsumeAudit bool
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// LoadEnv reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func LoadEnv() Env {
	if err := godotenv.Load(); err == nil {
		log.Println("config: loaded .env")
	}

	env := Env{
		AppAddr:     envStr("APP_ADDR", ":8080"),
		GinMode:     envStr("GIN_MODE", ""),
		Timezone:    loadTimezone(envStr("APP_TIMEZONE", "")),
		CatalogFile: envStr("CATALOG_FILE", ""),
		StoreDriver: strings.ToLower(envStr("STORE_DRIVER", StoreMemory)),
		DB: DBConfig{
			Host:     envStr("DB_HOST", "127.0.0.1"),
			Port:     envStr("DB_PORT", "3306"),
			User:     envStr("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     envStr("DB_NAME", "smart_parking"),
		},
		SnapshotPath:       envStr("SNAPSHOT_PATH", "data/ledger.json"),
		SnapshotSchedule:   envStr("SNAPSHOT_SCHEDULE", "@every 1m"),
		CORSAllowedOrigins: splitList(envStr("CORS_ALLOWED_ORIGINS", "*")),
		AMQPURL:            envStr("AMQP_URL", os.Getenv("RABBITMQ_URL")),
		EventLogPath:       envStr("EVENT_LOG_PATH", "logs/booking.log"),
		ConsumeAudit:       envBool("AUDIT_CONSUMER_ENABLED", true),
	}
	if env.StoreDriver != StoreMemory && env.StoreDriver != StoreMySQL {
		log.Printf("config: unknown STORE_DRIVER %q, using %s", env.StoreDriver, StoreMemory)
		env.StoreDriver = StoreMemory
	}
	return env
}

func loadTimezone(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("config: unknown APP_TIMEZONE %q, using local time: %v", name, err)
		return time.Local
	}
	return loc
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envStr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k))); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	if dur, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k))); err == nil {
		return dur
	}
	return d
}
