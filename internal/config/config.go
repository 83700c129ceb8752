package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App   *App
		HTTP  *HTTP
		Cache *Cache
		Redis *Redis
		DB    *DB
		PCO   *PCO
		Token *Token
	}

	App struct {
		Name string
		Env  string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
	}

	Cache struct {
		Type       string
		DefaultTTL string
	}

	Redis struct {
		Address  string
		Password string
		DB       int
	}

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	PCO struct {
		AppID   string
		Secret  string
		BaseURL string
	}

	Token struct {
		Secret            string
		Duration          string
		AdminUser         string
		AdminPasswordHash string
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		err := godotenv.Load()
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Name: os.Getenv("APP_NAME"),
		Env:  os.Getenv("APP_ENV"),
	}

	http := &HTTP{
		Port:           os.Getenv("HTTP_PORT"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            os.Getenv("APP_ENV"),
	}

	cache := &Cache{
		Type:       getEnv("CACHE_TYPE", "memory"),
		DefaultTTL: getEnv("CACHE_DEFAULT_TTL", "5m"),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}
	redis := &Redis{
		Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	}

	db := &DB{
		Host:     os.Getenv("DB_HOST"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
	}

	pco := &PCO{
		AppID:   os.Getenv("PCO_APP_ID"),
		Secret:  os.Getenv("PCO_SECRET"),
		BaseURL: getEnv("PCO_API_URL", "https://api.planningcenteronline.com"),
	}

	token := &Token{
		Secret:            os.Getenv("TOKEN_SECRET"),
		Duration:          getEnv("TOKEN_DURATION", "24h"),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	return &Container{
		App:   app,
		HTTP:  http,
		Cache: cache,
		Redis: redis,
		DB:    db,
		PCO:   pco,
		Token: token,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
