package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	LLM    LLMConfig
	Quiz   QuizConfig
	Redis  RedisConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LLMConfig selects and configures the generation backend.
// Provider is one of "gemini", "ollama" or "openai".
type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	ServerURL   string
	Temperature float64
	// Timeout of zero leaves the call bounded only by the client's defaults.
	Timeout time.Duration
}

type QuizConfig struct {
	MaxQuestions     int
	MaxDocumentChars int
	MarkupFallback   bool
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// ExtractionTTL controls how long extracted document text is cached.
	ExtractionTTL time.Duration
}

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.body_limit_mb", 20)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.server", "http://localhost:11434")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.timeout", 0)

	v.SetDefault("quiz.max_questions", 50)
	v.SetDefault("quiz.max_document_chars", 200000)
	v.SetDefault("quiz.markup_fallback", true)

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.extraction_ttl", 3600)
}

// LoadConfig reads config.yaml (optional) and the process environment.
// A .env file in the working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile behaves like LoadConfig but reads an explicit file when path is set.
func LoadConfigFile(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if os.Getenv("ENV") == "test" {
			v.AddConfigPath("../../config")
			v.AddConfigPath("../../")
		} else {
			v.AddConfigPath(".")
			v.AddConfigPath("./config")
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimitMB:  v.GetInt("server.body_limit_mb"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		LLM: LLMConfig{
			Provider:    v.GetString("llm.provider"),
			Model:       v.GetString("llm.model"),
			APIKey:      v.GetString("llm.api_key"),
			ServerURL:   v.GetString("llm.server"),
			Temperature: v.GetFloat64("llm.temperature"),
			Timeout:     time.Duration(v.GetInt("llm.timeout")) * time.Second,
		},
		Quiz: QuizConfig{
			MaxQuestions:     v.GetInt("quiz.max_questions"),
			MaxDocumentChars: v.GetInt("quiz.max_document_chars"),
			MarkupFallback:   v.GetBool("quiz.markup_fallback"),
		},
		Redis: RedisConfig{
			Address:       v.GetString("redis.address"),
			Password:      v.GetString("redis.password"),
			DB:            v.GetInt("redis.db"),
			ExtractionTTL: time.Duration(v.GetInt("redis.extraction_ttl")) * time.Second,
		},
	}

	// SERVER_PORT, LLM_PROVIDER etc. are picked up by AutomaticEnv; these
	// cover the names used by older deployments.
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.ServerURL = llmServer
	}
	if config.LLM.APIKey == "" {
		config.LLM.APIKey = apiKeyFromEnv(config.LLM.Provider)
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func apiKeyFromEnv(provider string) string {
	switch provider {
	case ProviderGemini:
		return os.Getenv("GOOGLE_API_KEY")
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

// Validate checks the settings that would otherwise fail at first request.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm provider %q requires an API key", c.LLM.Provider)
		}
	case ProviderOllama:
		if c.LLM.ServerURL == "" {
			return fmt.Errorf("llm provider %q requires llm.server", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	if c.Quiz.MaxQuestions <= 0 {
		return fmt.Errorf("quiz.max_questions must be positive, got %d", c.Quiz.MaxQuestions)
	}
	if c.Quiz.MaxDocumentChars < 0 {
		return fmt.Errorf("quiz.max_document_chars must not be negative, got %d", c.Quiz.MaxDocumentChars)
	}
	return nil
}

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Address != ""
}
