package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort      string `yaml:"APP_PORT"`
	LogDir       string `yaml:"LOG_DIR"`
	LogLevel     string `yaml:"LOG_LEVEL"`
	RateLimitMax string `yaml:"RATE_LIMIT_MAX"`

	// Recipe store selection
	StoreDriver      string `yaml:"STORE_DRIVER"`
	RecipeCollection string `yaml:"RECIPE_COLLECTION"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Redis configuration
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`
	RedisDB       string `yaml:"REDIS_DB"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`

	// Spoonacular API configuration
	SpoonacularAPIKey     string `yaml:"SPOONACULAR_API_KEY"`
	SpoonacularBaseURL    string `yaml:"SPOONACULAR_BASE_URL"`
	SpoonacularMaxResults string `yaml:"SPOONACULAR_MAX_RESULTS"`
	SpoonacularRanking    string `yaml:"SPOONACULAR_RANKING"`
	SpoonacularTimeout    string `yaml:"SPOONACULAR_TIMEOUT"`

	// Share one API call between identical concurrent fetches
	CollapseInflightFetches string `yaml:"COLLAPSE_INFLIGHT_FETCHES"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppPort:               "8080",
		LogDir:                "./logs",
		LogLevel:              "info",
		RateLimitMax:          "10",
		StoreDriver:           "postgres",
		RecipeCollection:      "recipes",
		DBPort:                "5432",
		RedisDB:               "0",
		SpoonacularBaseURL:    "https://api.spoonacular.com",
		SpoonacularMaxResults: "5",
		SpoonacularRanking:    "0",
		SpoonacularTimeout:    "30s",

		CollapseInflightFetches: "false",
	}
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":                &c.AppPort,
		"LOG_DIR":                 &c.LogDir,
		"LOG_LEVEL":               &c.LogLevel,
		"RATE_LIMIT_MAX":          &c.RateLimitMax,
		"STORE_DRIVER":            &c.StoreDriver,
		"RECIPE_COLLECTION":       &c.RecipeCollection,
		"DB_USER":                 &c.DBUser,
		"DB_NAME":                 &c.DBName,
		"DB_PASSWORD":             &c.DBPassword,
		"DB_PORT":                 &c.DBPort,
		"DB_HOST":                 &c.DBHost,
		"REDIS_ADDR":              &c.RedisAddr,
		"REDIS_PASSWORD":          &c.RedisPassword,
		"REDIS_DB":                &c.RedisDB,
		"AWS_S3_BUCKET":           &c.AWSS3Bucket,
		"AWS_S3_REGION":           &c.AWSS3Region,
		"AWS_S3_ENDPOINT":         &c.AWSS3Endpoint,
		"AWS_ACCESS_KEY":          &c.AWSAccessKey,
		"AWS_SECRET_KEY":          &c.AWSSecretKey,
		"SPOONACULAR_API_KEY":     &c.SpoonacularAPIKey,
		"SPOONACULAR_BASE_URL":    &c.SpoonacularBaseURL,
		"SPOONACULAR_MAX_RESULTS": &c.SpoonacularMaxResults,
		"SPOONACULAR_RANKING":     &c.SpoonacularRanking,
		"SPOONACULAR_TIMEOUT":     &c.SpoonacularTimeout,

		"COLLAPSE_INFLIGHT_FETCHES": &c.CollapseInflightFetches,
	}
}

// LoadConfig reads config.yaml (or the file named by CONFIG_FILE) and then
// lets the environment, including a local .env file, override it.
func LoadConfig() {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if err := LoadConfigFrom(path); err != nil {
		log.Warnf("Error loading config: %v", err)
	}
}

func LoadConfigFrom(path string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Error reading .env file: %v", err)
	}

	cfg := defaultConfig()
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// environment only
	case err != nil:
		return err
	default:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return err
		}
	}

	for key, dst := range cfg.fields() {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	config = cfg
	return nil
}

func GetConfig(key string) string {
	if dst, ok := config.fields()[key]; ok {
		return *dst
	}
	return ""
}

func GetConfigInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return v
}

func GetConfigBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(GetConfig(key))
	if err != nil {
		return fallback
	}
	return v
}

func GetConfigDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(GetConfig(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
