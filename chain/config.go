package chain

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the on-disk chain configuration. Every field is optional; the
// embedded defaults for the named network fill whatever the file leaves out.
type Config struct {
	Chain ChainSection `toml:"chain"`
	Pairs *Pairs       `toml:"pairs"`
}

// ChainSection selects and optionally overrides the target network.
type ChainSection struct {
	Name string `toml:"name"`
	ID   string `toml:"id"`
	LCD  string `toml:"lcd"`
}

// ConfigLoader loads chain configuration files and resolves them against
// the built-in network defaults.
type ConfigLoader struct{}

// NewConfigLoader creates a new chain config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// LoadFromFile reads a TOML chain config and returns the resolved context
// and pair registry.
func (l *ConfigLoader) LoadFromFile(filePath string) (Context, Pairs, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Context{}, Pairs{}, fmt.Errorf("failed to read chain config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return Context{}, Pairs{}, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	return l.Resolve(&config)
}

// Resolve fills a parsed config with network defaults. The network name
// must be known or carry a full custom context.
func (l *ConfigLoader) Resolve(config *Config) (Context, Pairs, error) {
	var ctx Context
	switch config.Chain.Name {
	case "mainnet", "":
		ctx = Mainnet()
	case "testnet":
		ctx = Testnet()
	default:
		ctx = Context{Name: config.Chain.Name}
	}
	if config.Chain.ID != "" {
		ctx.ID = config.Chain.ID
	}
	if config.Chain.LCD != "" {
		ctx.LCD = config.Chain.LCD
	}
	if ctx.ID == "" || ctx.LCD == "" {
		return Context{}, Pairs{}, fmt.Errorf("chain %q needs both id and lcd configured", config.Chain.Name)
	}

	pairs := DefaultPairs(ctx.Name)
	if config.Pairs != nil {
		if len(config.Pairs.LunaPairs) > 0 {
			pairs.LunaPairs = config.Pairs.LunaPairs
		}
		if len(config.Pairs.Tokens) > 0 {
			pairs.Tokens = config.Pairs.Tokens
		}
		if config.Pairs.RouteContract != "" {
			pairs.RouteContract = config.Pairs.RouteContract
		}
	}

	return ctx, pairs, nil
}
