package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
)

// Config defines the global application configuration structure.
// It maps directly to the config.json file and holds business-level
// settings: which agents and channels exist and how they are configured.
type Config struct {
	// Agents contains a map of agent tags (e.g., "echo", "vertex") to their
	// specific configuration payloads in raw JSON format.
	Agents map[string]jsoniter.RawMessage `json:"agents"`
	// Channels contains a map of channel identifiers (e.g., "web", "telegram")
	// to their specific configuration payloads in raw JSON format.
	Channels map[string]jsoniter.RawMessage `json:"channels"`
	// DefaultAgent is the registry tag used when a request omits agent_type.
	DefaultAgent string `json:"default_agent"`
}

// Validate ensures the configuration structure contains all mandatory fields.
// It acts as a primary guard before the system proceeds to initialization.
func (c *Config) Validate() error {
	if len(c.Agents) == 0 {
		return fmt.Errorf("mandatory 'agents' configuration is missing or empty")
	}
	if len(c.Channels) == 0 {
		return fmt.Errorf("mandatory 'channels' configuration is missing or empty")
	}
	return nil
}

// SystemConfig defines engine-level technical parameters.
// These settings are stored in system.json; Google Cloud fields may be
// overridden by environment variables so credentials stay out of the file.
type SystemConfig struct {
	// GoogleCloudProject is the GCP project id used by the Vertex AI agent.
	// Env override: GOOGLE_CLOUD_PROJECT.
	GoogleCloudProject string `json:"google_cloud_project"`
	// GoogleCredentials is the path to a service account key file.
	// Env override: GOOGLE_APPLICATION_CREDENTIALS.
	GoogleCredentials string `json:"google_credentials"`
	// VertexAILocation is the model-serving region for Vertex AI calls.
	// Env override: VERTEX_AI_LOCATION.
	VertexAILocation string `json:"vertex_ai_location"`
	// OpenAIAPIKey authenticates the optional OpenAI agent.
	// Env override: OPENAI_API_KEY.
	OpenAIAPIKey string `json:"openai_api_key"`
	// OllamaDefaultURL is the fallback endpoint used when connecting
	// to a local Ollama instance if no specific URL is provided.
	OllamaDefaultURL string `json:"ollama_default_url"`
	// AgentName is the default display name given to agents that don't
	// configure their own. Env override: AGENT_NAME.
	AgentName string `json:"agent_name"`
	// AgentDescription is the default description for agents without one.
	AgentDescription string `json:"agent_description"`
	// TelegramMessageLimit is the maximum character count for a single
	// Telegram message. Longer responses will be split into multiple chunks.
	TelegramMessageLimit int `json:"telegram_message_limit"`
	// LogLevel sets the minimum severity for log output.
	// Accepted values: "debug", "info", "warn", "error". Default: "info".
	// Env override: LOG_LEVEL.
	LogLevel string `json:"log_level"`
}

// DefaultSystemConfig returns a SystemConfig pointer initialized with hardcoded
// safe default values. This is used as a fallback when the system.json file
// is missing or corrupt, ensuring the server can always start.
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		VertexAILocation:     "us-central1",
		OllamaDefaultURL:     "http://localhost:11434",
		AgentName:            "playground-agent",
		AgentDescription:     "A playground agent for experimentation",
		TelegramMessageLimit: 4000,
		LogLevel:             "info",
	}
}

// Load reads and parses the JSON configuration files from the current working
// directory. A .env file is applied to the process environment first so that
// environment overrides work the same whether set in the shell or the file.
// 'config.json' (app config) is mandatory; 'system.json' falls back to defaults.
func Load() (*Config, *SystemConfig, error) {
	// 0. Apply .env to the environment if present. Missing file is fine.
	_ = godotenv.Load()

	// 1. Load Application Config
	appPath := "config.json"
	if _, err := os.Stat(appPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("config file '%s' not found. please create one", appPath)
	}

	appFile, err := os.ReadFile(appPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(appFile, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// 1a. Validate structure integrity
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	// 2. Load System Config independently
	sysCfg := LoadSystemConfig("system.json")

	return &cfg, sysCfg, nil
}

// LoadSystemConfig attempts to load system settings, returns defaults if it
// fails. Environment overrides are applied last in both cases.
func LoadSystemConfig(path string) *SystemConfig {
	cfg := DefaultSystemConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		return cfg.applyEnv() // File not found, use defaults
	}

	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(file, cfg); err != nil {
		return DefaultSystemConfig().applyEnv() // Parse failed, use defaults
	}

	return cfg.applyEnv()
}

// applyEnv overrides individual fields from environment variables.
// Cloud credentials in particular are expected to arrive this way.
func (c *SystemConfig) applyEnv() *SystemConfig {
	overrideString(&c.GoogleCloudProject, "GOOGLE_CLOUD_PROJECT")
	overrideString(&c.GoogleCredentials, "GOOGLE_APPLICATION_CREDENTIALS")
	overrideString(&c.VertexAILocation, "VERTEX_AI_LOCATION")
	overrideString(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	overrideString(&c.OllamaDefaultURL, "OLLAMA_HOST")
	overrideString(&c.AgentName, "AGENT_NAME")
	overrideString(&c.AgentDescription, "AGENT_DESCRIPTION")
	overrideString(&c.LogLevel, "LOG_LEVEL")
	overrideInt(&c.TelegramMessageLimit, "TELEGRAM_MESSAGE_LIMIT")
	return c
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
