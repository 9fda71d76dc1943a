package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Extract ExtractConfig
	LLM     LLMConfig
	Output  OutputConfig
}

// ExtractConfig holds extraction-related configuration
type ExtractConfig struct {
	Pdftoppm      string
	Tesseract     string
	TesseractLang string
	TessdataDir   string
	DPI           int
	PSM           int
	MaxPages      int
}

// LLMConfig holds inference-service configuration
type LLMConfig struct {
	BaseURL       string
	Model         string
	Temperature   float32
	ContextTokens int
	MaxInputChars int
	Timeout       time.Duration
}

// OutputConfig holds caller-facing artifact configuration
type OutputConfig struct {
	Dir         string
	KeepRawText bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "fra+eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			PSM:           getEnvAsInt("OCR_PSM", 11),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
		},
		LLM: LLMConfig{
			BaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:         getEnv("OLLAMA_MODEL", "llama3.2"),
			Temperature:   getEnvAsFloat32("OLLAMA_TEMPERATURE", 0.0),
			ContextTokens: getEnvAsInt("OLLAMA_NUM_CTX", 8192),
			MaxInputChars: getEnvAsInt("LLM_MAX_INPUT_CHARS", 25000),
			Timeout:       getEnvAsDuration("OLLAMA_TIMEOUT", 120*time.Second),
		},
		Output: OutputConfig{
			Dir:         getEnv("OUTPUT_DIR", "output"),
			KeepRawText: getEnvAsBool("KEEP_RAW_TEXT", true),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "OLLAMA_BASE_URL is required", ErrInvalidInput)
	}
	if c.LLM.Model == "" {
		return NewAppError("CONFIG_ERROR", "OLLAMA_MODEL is required", ErrInvalidInput)
	}
	if c.Extract.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	return nil
}
