package config

import (
	"errors"
	"log"
	"os"
)

// DefaultAPIURL is the public Groq chat-completions endpoint.
const DefaultAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// DefaultModel is used when neither the environment nor the caller picks one.
const DefaultModel = "openai/gpt-oss-20b"

type Config struct {
	APIURL string
	APIKey string
	Model  string

	// TrustBundlePath overrides the trust store used for the outbound TLS
	// handshake. Empty means: try the project-local combined bundle, then
	// fall back to the platform defaults.
	TrustBundlePath string

	OutputDir string
	HTTPAddr  string
	LogLevel  string
}

// Load reads configuration from the environment. The API key is required;
// without it no request is ever attempted.
func Load() (Config, error) {
	cfg := Config{
		APIURL:          getenv("GROQ_API_URL", DefaultAPIURL),
		APIKey:          os.Getenv("GROQ_API_KEY"),
		Model:           getenv("GROQ_MODEL", DefaultModel),
		TrustBundlePath: firstEnv("SSL_CERT_FILE", "REQUESTS_CA_BUNDLE"),
		OutputDir:       getenv("OUTPUT_DIR", "outputs"),
		HTTPAddr:        ":" + getenv("PORT", "8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}
	if cfg.APIKey == "" {
		return Config{}, errors.New("GROQ_API_KEY not set; put your key in .env or export it")
	}
	return cfg, nil
}

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
