package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	getter "github.com/hashicorp/go-getter"
)

// assetsRepo hosts the published token whitelist per network.
const assetsRepo = "github.com/terra-money/assets//cw20"

// DownloadRegistry fetches the published token whitelist directory into dst.
// The whitelist changes rarely; callers download it at deploy time, not per
// session.
func DownloadRegistry(dst string) error {
	deadline := time.Now().Add(120 * time.Second)
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	client := getter.Client{
		Ctx:  ctx,
		Src:  assetsRepo,
		Dst:  dst,
		Mode: getter.ClientModeDir,
		Detectors: []getter.Detector{
			&getter.GitHubDetector{},
		},
		Getters: map[string]getter.Getter{
			"git": &getter.GitGetter{},
		},
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("failed to download token registry: %w", err)
	}
	return nil
}

// LoadTokens reads a downloaded whitelist file (tokens.json: network name to
// token-address map) and returns the entries for the named network.
func LoadTokens(dir, network string) (map[string]Token, error) {
	data, err := os.ReadFile(filepath.Join(dir, "tokens.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read token whitelist: %w", err)
	}

	var byNetwork map[string]map[string]Token
	if err := json.Unmarshal(data, &byNetwork); err != nil {
		return nil, fmt.Errorf("failed to parse token whitelist: %w", err)
	}

	tokens, ok := byNetwork[network]
	if !ok {
		return nil, fmt.Errorf("no token whitelist for network %q", network)
	}
	return tokens, nil
}
