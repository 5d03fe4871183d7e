package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Ingest   IngestConfig
	Quiz     QuizConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	UploadDir          string
	MaxUploadMB        int
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenAI        string
	GoogleGemini  string
	BackfillTopic string // Watermill topic for passages whose embedding failed at ingest
	EventsSubject string // NATS subject prefix for domain events
}

type AIConfig struct {
	EmbeddingProvider   string // "ollama", "gemini", "openai" or "mock"
	EmbeddingModel      string
	EmbeddingDimensions int
	OllamaBaseURL       string
	LLMProvider         string // "ollama", "openai" or "gemini"
	LLMModel            string
	Temperature         float64
	MaxTokens           int
	RequestsPerSecond   float64
	QueryCacheTTLMins   int
}

type IngestConfig struct {
	ChunkSize    int
	ChunkOverlap int
	HeaderMarker string
	FooterMarker string
	KeywordCount int
}

type QuizConfig struct {
	ContextTopK     int
	SearchTopK      int
	SearchMaxTopK   int
	RetryFactor     int
	DefaultTimeSecs int
}

type OtelConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	SampleRatio float64
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
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			UploadDir:          getEnv("UPLOAD_DIR", "./uploads/lecture_notes"),
			MaxUploadMB:        getEnvAsInt("MAX_UPLOAD_MB", 20),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI:        getEnv("OPENAI_API_KEY", ""),
			GoogleGemini:  getEnv("GOOGLE_GEMINI_API_KEY", ""),
			BackfillTopic: getEnv("EMBED_PASSAGE_TOPIC_NAME", "EMBED_PASSAGE"),
			EventsSubject: getEnv("EVENTS_SUBJECT_PREFIX", "events"),
		},
		Ai: AIConfig{
			EmbeddingProvider:   strings.ToLower(getEnv("EMBEDDING_PROVIDER", "ollama")),
			EmbeddingModel:      getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingDimensions: getEnvAsInt("EMBEDDING_DIMENSIONS", 768),
			OllamaBaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:         strings.ToLower(getEnv("LLM_PROVIDER", "ollama")),
			LLMModel:            getEnv("LLM_MODEL", "phi3"),
			Temperature:         getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:           getEnvAsInt("LLM_MAX_TOKENS", 256),
			RequestsPerSecond:   getEnvAsFloat("LLM_REQUESTS_PER_SECOND", 2),
			QueryCacheTTLMins:   getEnvAsInt("QUERY_CACHE_TTL_MINUTES", 30),
		},
		Ingest: IngestConfig{
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 150),
			HeaderMarker: getEnv("INGEST_HEADER_MARKER", "Programming Fundamentals"),
			FooterMarker: getEnv("INGEST_FOOTER_MARKER", "0332-7661819"),
			KeywordCount: getEnvAsInt("INGEST_KEYWORD_COUNT", 8),
		},
		Quiz: QuizConfig{
			ContextTopK:     getEnvAsInt("QUIZ_CONTEXT_TOP_K", 5),
			SearchTopK:      getEnvAsInt("QUIZ_SEARCH_TOP_K", 6),
			SearchMaxTopK:   getEnvAsInt("QUIZ_SEARCH_MAX_TOP_K", 20),
			RetryFactor:     getEnvAsInt("QUIZ_RETRY_FACTOR", 3),
			DefaultTimeSecs: getEnvAsInt("QUIZ_DEFAULT_TIME_SECS", 60),
		},
		Otel: OtelConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "quiz-generation-be"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
		},
	}
}

// IsProduction reports whether GO_ENV selects production logging.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
