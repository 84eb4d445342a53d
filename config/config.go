package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type RateLimitConfig struct {
	// BookingLimit is the number of booking attempts a user gets per
	// BookingWindow.
	BookingLimit  int
	BookingWindow time.Duration
}

type CacheConfig struct {
	// ScheduleTTL bounds how stale a cached weekly schedule may get.
	// Schedule edits invalidate eagerly, so this is a safety net only.
	ScheduleTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	scheduleTTL, err := time.ParseDuration(viper.GetString("SCHEDULE_CACHE_TTL"))
	if err != nil {
		scheduleTTL = time.Hour
	}

	bookingLimit := viper.GetInt("BOOKING_RATE_LIMIT")
	if bookingLimit <= 0 {
		bookingLimit = 10
	}

	bookingWindow, err := time.ParseDuration(viper.GetString("BOOKING_RATE_WINDOW"))
	if err != nil {
		bookingWindow = time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Cache: CacheConfig{
			ScheduleTTL: scheduleTTL,
		},
		RateLimit: RateLimitConfig{
			BookingLimit:  bookingLimit,
			BookingWindow: bookingWindow,
		},
	}

	return config, nil
}
