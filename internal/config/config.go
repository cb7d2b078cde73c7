package config

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv           string `mapstructure:"APP_ENV"`
	Port             string `mapstructure:"PORT"`
	BaseURL          string `mapstructure:"BASE_URL"`
	CodeLength       int    `mapstructure:"CODE_LENGTH"`
	CodeMaxAttempts  int    `mapstructure:"CODE_MAX_ATTEMPTS"`
	ClickStore       string `mapstructure:"CLICK_STORE"`
	ClickDatabaseURL string `mapstructure:"CLICK_DATABASE_URL"`
	MaskClickIP      bool   `mapstructure:"CLICK_MASK_IP"`
	GeoIPDBPath      string `mapstructure:"GEOIP_DB_PATH"`
}

// LoadConfig reads defaults, then the dotenv file named by ENV_FILE (".env" if
// unset), then the process environment. Later sources win.
func LoadConfig() (config Config, err error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("PORT", "8080")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("CODE_LENGTH", 6)
	v.SetDefault("CODE_MAX_ATTEMPTS", 10)
	v.SetDefault("CLICK_STORE", "memory")
	v.SetDefault("CLICK_DATABASE_URL", "sqlite://:memory:")
	v.SetDefault("CLICK_MASK_IP", false)
	v.SetDefault("GEOIP_DB_PATH", "./geoip/GeoLite2-City.mmdb")

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	fileValues, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("unable to read %s, %v", envFile, err)
		return
	}
	err = nil
	for key, value := range fileValues {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	err = v.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}
