package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendGemini = "gemini"
	BackendFake   = "fake"
)

type Config struct {
	Port       string
	Backend    string
	Gemini     GeminiConfig
	ImageStore ImageStoreConfig
}

type GeminiConfig struct {
	APIKey     string
	TextModel  string
	ImageModel string
}

// ImageStoreConfig selects minio when Endpoint is set, memory otherwise.
type ImageStoreConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	URLExpiry time.Duration
}

func (c ImageStoreConfig) Enabled() bool { return c.Endpoint != "" }

// Load reads .env, then args, then the environment; environment wins.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("functions", flag.ContinueOnError)
	port := fs.String("port", ":8082", "server port")
	backend := fs.String("backend", "", "generation backend: gemini or fake")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if envPort := strings.TrimSpace(os.Getenv("PORT")); envPort != "" {
		*port = envPort
	}
	if !strings.Contains(*port, ":") {
		*port = ":" + *port
	}

	geminiKey := firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_API_KEY")), strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")))
	defaultBackend := BackendFake
	if geminiKey != "" {
		defaultBackend = BackendGemini
	}
	be := strings.ToLower(firstNonEmpty(strings.TrimSpace(os.Getenv("FUNCTIONS_BACKEND")), *backend, defaultBackend))
	if be != BackendGemini && be != BackendFake {
		return nil, fmt.Errorf("unknown FUNCTIONS_BACKEND %q", be)
	}

	return &Config{
		Port:    *port,
		Backend: be,
		Gemini: GeminiConfig{
			APIKey:     geminiKey,
			TextModel:  strings.TrimSpace(os.Getenv("TEXT_MODEL")),
			ImageModel: strings.TrimSpace(os.Getenv("IMAGE_MODEL")),
		},
		ImageStore: loadImageStoreConfig(),
	}, nil
}

func loadImageStoreConfig() ImageStoreConfig {
	return ImageStoreConfig{
		Endpoint:  strings.TrimSpace(os.Getenv("IMAGE_STORE_ENDPOINT")),
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("IMAGE_STORE_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("IMAGE_STORE_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("IMAGE_STORE_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("IMAGE_STORE_BUCKET")), "contentgen-images"),
		UseSSL:    parseBool(os.Getenv("IMAGE_STORE_USE_SSL"), false),
		URLExpiry: parseDuration(os.Getenv("IMAGE_STORE_URL_EXPIRY"), time.Hour),
	}
}

func parseBool(raw string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

func parseDuration(raw string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
