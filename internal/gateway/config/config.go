package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const DefaultSessionCapacity = 256

type Config struct {
	Port            string
	FunctionsURL    string
	FunctionsAPIKey string
	SessionCapacity int
}

// Load reads .env, then args, then the environment; environment wins.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	port := fs.String("port", ":8081", "server port")
	functionsURL := fs.String("functions-url", "", "base URL of the generation service")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if envPort := strings.TrimSpace(os.Getenv("PORT")); envPort != "" {
		*port = envPort
	}
	if !strings.Contains(*port, ":") {
		*port = ":" + *port
	}

	capacity := DefaultSessionCapacity
	if raw := strings.TrimSpace(os.Getenv("SESSION_CAPACITY")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid SESSION_CAPACITY %q", raw)
		}
		capacity = n
	}

	return &Config{
		Port:            *port,
		FunctionsURL:    firstNonEmpty(strings.TrimSpace(os.Getenv("FUNCTIONS_URL")), *functionsURL, "http://localhost:8082"),
		FunctionsAPIKey: strings.TrimSpace(os.Getenv("FUNCTIONS_API_KEY")),
		SessionCapacity: capacity,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
