package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Topics   TopicsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	UploadBodyLimitMB  int
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider string // "ollama" or "huggingface"
	LLMModel    string // e.g. "llama3", "qwen2.5"

	EmbeddingProvider string // "ollama" or "jina"
	OllamaBaseURL     string
	OllamaEmbedModel  string

	RerankerProvider string // "tei" or "jina"
	TEIBaseURL       string

	ClassifierModel string // HuggingFace model id for document typing

	HuggingFaceAPIKey string
	JinaAPIKey        string

	StageTimeout time.Duration
}

type TopicsConfig struct {
	SessionIngested string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			UploadBodyLimitMB:  getEnvAsInt("UPLOAD_BODY_LIMIT_MB", 25),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			RerankerProvider:  getEnv("RERANKER_PROVIDER", "tei"),
			TEIBaseURL:        getEnv("TEI_BASE_URL", "http://localhost:8080"),
			ClassifierModel:   getEnv("CLASSIFIER_MODEL", "ProsusAI/finbert"),
			HuggingFaceAPIKey: getEnv("HUGGINGFACE_API_KEY", ""),
			JinaAPIKey:        getEnv("JINA_API_KEY", ""),
			StageTimeout:      time.Duration(getEnvAsInt("PIPELINE_STAGE_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		Topics: TopicsConfig{
			SessionIngested: getEnv("SESSION_INGESTED_TOPIC_NAME", "SESSION_INGESTED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
