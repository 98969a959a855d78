package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	Port        string `mapstructure:"PORT"`

	// RecommenderURL is the base URL of the external recommendation
	// scorer. RecommenderTimeout bounds a single scorer call in seconds;
	// there is no retry, a slow scorer fails the calling request.
	RecommenderURL     string `mapstructure:"RECOMMENDER_URL"`
	RecommenderTimeout int    `mapstructure:"RECOMMENDER_TIMEOUT"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("PORT", "5001")
	viper.SetDefault("RECOMMENDER_URL", "http://localhost:5000")
	viper.SetDefault("RECOMMENDER_TIMEOUT", 10)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
