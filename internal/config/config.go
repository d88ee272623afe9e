package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the LendIntake server.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	AI       AIConfig
	Ticket   TicketConfig
	Email    EmailConfig
}

type ServerConfig struct {
	Port           int
	Env            string
	GuidelinesPath string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

type AIConfig struct {
	Provider         string
	InferenceTimeout time.Duration
	OpenAI           OpenAIConfig
	Ollama           OllamaConfig
}

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	VisionModel string
}

type OllamaConfig struct {
	BaseURL string
	Model   string
}

// TicketConfig configures the Azure DevOps work-item sink. The sink is
// optional: submissions still succeed when it is not configured.
type TicketConfig struct {
	Organization  string
	Project       string
	PAT           string
	AreaPath      string
	IterationPath string
	Timeout       time.Duration
}

// Enabled reports whether the work-item sink is fully configured.
func (c TicketConfig) Enabled() bool {
	return c.Organization != "" && c.Project != "" && c.PAT != ""
}

// EmailConfig configures the SES-backed notifier. Optional, like the ticket
// sink: confirmation email is best-effort.
type EmailConfig struct {
	Region         string
	FromAddress    string
	SupportAddress string
}

// Enabled reports whether the notifier is fully configured.
func (c EmailConfig) Enabled() bool {
	return c.Region != "" && c.FromAddress != "" && c.SupportAddress != ""
}

var validProviders = map[string]bool{
	"openai": true,
	"ollama": true,
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           envInt("LENDINTAKE_PORT", 8080),
			Env:            envString("LENDINTAKE_ENV", "development"),
			GuidelinesPath: os.Getenv("GUIDELINES_PATH"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		AI: AIConfig{
			Provider:         os.Getenv("AI_PROVIDER"),
			InferenceTimeout: envDurationSecs("AI_INFERENCE_TIMEOUT_SECS", 60*time.Second),
			OpenAI: OpenAIConfig{
				APIKey:      os.Getenv("OPENAI_API_KEY"),
				BaseURL:     envString("OPENAI_BASE_URL", "https://api.openai.com/v1"),
				Model:       envString("OPENAI_MODEL", "gpt-4o"),
				VisionModel: envString("OPENAI_VISION_MODEL", "gpt-4o"),
			},
			Ollama: OllamaConfig{
				BaseURL: envString("OLLAMA_BASE_URL", "http://localhost:11434"),
				Model:   envString("OLLAMA_MODEL", "llama3"),
			},
		},
		Ticket: TicketConfig{
			Organization:  os.Getenv("ADO_ORGANIZATION"),
			Project:       os.Getenv("ADO_PROJECT"),
			PAT:           os.Getenv("ADO_PAT"),
			AreaPath:      os.Getenv("ADO_AREA_PATH"),
			IterationPath: os.Getenv("ADO_ITERATION_PATH"),
			Timeout:       envDuration("ADO_TIMEOUT", 30*time.Second),
		},
		Email: EmailConfig{
			Region:         os.Getenv("SES_REGION"),
			FromAddress:    os.Getenv("EMAIL_FROM_ADDRESS"),
			SupportAddress: os.Getenv("EMAIL_SUPPORT_ADDRESS"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.AI.Provider == "" {
		return fmt.Errorf("AI_PROVIDER is required")
	}
	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("AI_PROVIDER must be one of openai, ollama; got %q", c.AI.Provider)
	}

	if c.AI.Provider == "openai" && c.AI.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when AI_PROVIDER is openai")
	}
	if !strings.HasPrefix(c.AI.OpenAI.BaseURL, "http://") && !strings.HasPrefix(c.AI.OpenAI.BaseURL, "https://") {
		return fmt.Errorf("OPENAI_BASE_URL must start with http:// or https://, got %q", c.AI.OpenAI.BaseURL)
	}

	// The ticket sink and notifier are all-or-nothing: partial configuration
	// is more likely a typo than an intent.
	if !c.Ticket.Enabled() && (c.Ticket.Organization != "" || c.Ticket.Project != "" || c.Ticket.PAT != "") {
		return fmt.Errorf("ADO_ORGANIZATION, ADO_PROJECT, and ADO_PAT must all be set to enable the work-item sink")
	}
	if !c.Email.Enabled() && (c.Email.Region != "" || c.Email.FromAddress != "" || c.Email.SupportAddress != "") {
		return fmt.Errorf("SES_REGION, EMAIL_FROM_ADDRESS, and EMAIL_SUPPORT_ADDRESS must all be set to enable email")
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
