package utils

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	TMDB     TMDBConfig
	Cache    CacheConfig
	Client   ClientConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

type TMDBConfig struct {
	APIKey         string
	BaseURL        string
	ImageBaseURL   string
	TimeoutSeconds int
}

type CacheConfig struct {
	Dir string
}

type ClientConfig struct {
	ServerURL string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/w500")
	viper.SetDefault("TMDB_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CACHE_DIR", ".reeltalk/cache")
	viper.SetDefault("SERVER_URL", "http://127.0.0.1:8080")

	// A missing .env is fine: defaults plus environment variables apply
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		TMDB: TMDBConfig{
			APIKey:         viper.GetString("TMDB_API_KEY"),
			BaseURL:        viper.GetString("TMDB_BASE_URL"),
			ImageBaseURL:   viper.GetString("TMDB_IMAGE_BASE_URL"),
			TimeoutSeconds: viper.GetInt("TMDB_TIMEOUT_SECONDS"),
		},
		Cache: CacheConfig{
			Dir: viper.GetString("CACHE_DIR"),
		},
		Client: ClientConfig{
			ServerURL: viper.GetString("SERVER_URL"),
		},
	}

	return config, nil
}
