package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secretKey"`
	AccessTokenTTL time.Duration `mapstructure:"accessTokenTTL"`
	Issuer         string        `mapstructure:"issuer"`
}

type AuthConfig struct {
	PasswordMinLength int `mapstructure:"passwordMinLength"`
	BcryptCost        int `mapstructure:"bcryptCost"`
}

type Config struct {
	Mode         string `mapstructure:"mode"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort    string        `mapstructure:"HTTPPort"`
		MetricsPort string        `mapstructure:"metricsPort"`
		Timeout     time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	JWT  JWTConfig  `mapstructure:"jwt"`
	Auth AuthConfig `mapstructure:"auth"`
}

// InitConfig loads the file-based config, falling back to the embedded copy,
// and applies environment overrides. The JWT secret is required: a process
// without one must not come up, so its absence is an error here rather than
// a runtime fallback.
func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("LINKMARK")
	v.AutomaticEnv()
	// Secrets come from the environment, never from the checked-in YAML.
	_ = v.BindEnv("jwt.secretKey", "LINKMARK_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("repositories.postgres.password", "LINKMARK_POSTGRES_PASSWORD", "POSTGRES_PASSWORD")

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}

	if config.JWT.SecretKey == "" {
		return Config{}, errors.New("jwt secret key is not configured (set LINKMARK_JWT_SECRET)")
	}
	if config.JWT.AccessTokenTTL <= 0 {
		config.JWT.AccessTokenTTL = 15 * time.Minute
	}
	if config.Auth.PasswordMinLength <= 0 {
		config.Auth.PasswordMinLength = 1
	}

	return config, nil
}
