package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultServerURL = "http://localhost:8080"
	defaultConfigDir = ".dresscode"
	defaultPageSize  = 20

	defaultRunAddress = ":8080"
)

// Client holds everything the catalog client needs: where the API lives and
// where session token and local cache are kept on disk.
type Client struct {
	Env       string `mapstructure:"app_env"`
	ServerURL string `mapstructure:"server_url"`
	ConfigDir string `mapstructure:"config_dir"`
	TokenPath string `mapstructure:"token_path"`
	CachePath string `mapstructure:"cache_path"`
	PageSize  int    `mapstructure:"page_size"`
}

// Server holds the dev catalog server settings.
type Server struct {
	Env        string `mapstructure:"app_env"`
	RunAddress string `mapstructure:"run_address"`
}

// MustLoadClient reads the client configuration from the environment,
// creating the config directory on first run. Panics on invalid settings.
func MustLoadClient() *Client {
	loadDotEnv()
	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", EnvLocal)
	viper.SetDefault("SERVER_URL", defaultServerURL)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("PAGE_SIZE", defaultPageSize)

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		fmt.Printf("failed to create config directory: %v\n", err)
	}

	cfg := &Client{
		Env:       viper.GetString("APP_ENV"),
		ServerURL: viper.GetString("SERVER_URL"),
		ConfigDir: configDir,
		TokenPath: filepath.Join(configDir, "token"),
		CachePath: filepath.Join(configDir, "catalog.db"),
		PageSize:  viper.GetInt("PAGE_SIZE"),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}
	return cfg
}

func (c *Client) validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url must not be empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	return nil
}

// MustLoadServer reads the dev server configuration from the environment.
func MustLoadServer() *Server {
	loadDotEnv()
	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", EnvLocal)
	viper.SetDefault("RUN_ADDRESS", defaultRunAddress)

	cfg := &Server{
		Env:        viper.GetString("APP_ENV"),
		RunAddress: viper.GetString("RUN_ADDRESS"),
	}
	if cfg.RunAddress == "" {
		panic("invalid configuration: run_address must not be empty")
	}
	return cfg
}

func loadDotEnv() {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("failed to load .env file: %v\n", err)
		}
	}
}
