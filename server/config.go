package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileConfig is the on-disk server configuration. Every key can also be
// supplied through STATION_-prefixed environment variables when no file
// is given.
type FileConfig struct {
	Host                  string   `mapstructure:"host"`
	Port                  int      `mapstructure:"port"`
	AllowedOrigins        []string `mapstructure:"allowed_origins"`
	EnableMetrics         bool     `mapstructure:"enable_metrics"`
	RatePerMinute         int      `mapstructure:"rate_per_minute"`
	MaxConcurrentRequests int      `mapstructure:"max_concurrent_requests"`

	// Network selects the built-in chain defaults; ChainConfig points at a
	// TOML file overriding them.
	Network     string `mapstructure:"network"`
	ChainConfig string `mapstructure:"chain_config"`

	SlippageTolerance string `mapstructure:"slippage_tolerance"`
}

// LoadFileConfig loads the server config from the given TOML path, or from
// the environment when configPath is nil.
func LoadFileConfig(configPath *string) (*FileConfig, error) {
	v := viper.New()

	if configPath == nil {
		config, err := loadEnv(v)
		if err != nil {
			return nil, fmt.Errorf("failed to load env config: %w", err)
		}
		return config, nil
	}
	config, err := loadFile(v, *configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load file config: %w", err)
	}
	return config, nil
}

func loadEnv(v *viper.Viper) (*FileConfig, error) {
	// godotenv might fail if the .env file is missing but env can be
	// applied through docker, systemd or other means, so skip the error
	_ = godotenv.Load()
	v.SetEnvPrefix("STATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	var config FileConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal env config: %w", err)
	}
	if err := verifyConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// bindEnvKeys binds each config key to its env var so Unmarshal sees env
// values when no config file is loaded (env-only mode).
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"host", "port", "allowed_origins", "enable_metrics",
		"rate_per_minute", "max_concurrent_requests",
		"network", "chain_config", "slippage_tolerance",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

func loadFile(v *viper.Viper, configPath string) (*FileConfig, error) {
	if !strings.HasSuffix(configPath, ".toml") {
		return nil, fmt.Errorf("config file must be a toml file")
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config FileConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}
	if err := verifyConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func verifyConfig(config *FileConfig) error {
	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("port %d out of range", config.Port)
	}
	if config.Network == "" {
		config.Network = "mainnet"
	}
	return nil
}

// Address is the host:port pair the server listens on.
func (c *FileConfig) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// ServerConfig converts the file config into the runtime server config.
func (c *FileConfig) ServerConfig() *ServerConfig {
	config := &ServerConfig{
		Address:        c.Address(),
		AllowedOrigins: c.AllowedOrigins,
		EnableMetrics:  c.EnableMetrics,
	}
	if c.RatePerMinute > 0 {
		rate := c.RatePerMinute
		config.RatePerMinute = &rate
	}
	if c.MaxConcurrentRequests > 0 {
		limit := c.MaxConcurrentRequests
		config.MaxConcurrentRequests = &limit
	}
	return config
}
