package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/terra-community/station-core/chain"
	"github.com/terra-community/station-core/fee"
	"github.com/terra-community/station-core/lcd"
	"github.com/terra-community/station-core/server"
	"github.com/terra-community/station-core/swap"
	"github.com/terra-community/station-core/tax"
)

var log zerolog.Logger

func init() {
	// Initialize zerolog with console writer
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Logger()

	// Share the logger with the server package
	server.SetLogger(log)
}

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "server config file; environment variables are used when empty")
	chainConfig := flag.String("config-chain", "", "chain config file overriding the built-in network defaults")
	flag.Parse()

	var fileConfigPath *string
	if *configPath != "" {
		fileConfigPath = configPath
	}

	fileConfig, err := server.LoadFileConfig(fileConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load server config")
	}

	log.Info().
		Str("network", fileConfig.Network).
		Str("address", fileConfig.Address()).
		Msg("Starting station core")

	// Resolve the chain context and pair registry
	chainPath := *chainConfig
	if chainPath == "" {
		chainPath = fileConfig.ChainConfig
	}

	var chainCtx chain.Context
	var pairs chain.Pairs
	if chainPath != "" {
		chainCtx, pairs, err = chain.NewConfigLoader().LoadFromFile(chainPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load chain config")
		}
	} else {
		switch fileConfig.Network {
		case "mainnet":
			chainCtx = chain.Mainnet()
		case "testnet":
			chainCtx = chain.Testnet()
		default:
			log.Fatal().Str("network", fileConfig.Network).Msg("Unknown network and no chain config given")
		}
		pairs = chain.DefaultPairs(fileConfig.Network)
	}

	log.Info().
		Str("chain_id", chainCtx.ID).
		Str("lcd", chainCtx.LCD).
		Int("luna_pairs", len(pairs.LunaPairs)).
		Msg("Chain resolved")

	// Wire the calculators
	client := lcd.NewClient(chainCtx)
	fees := fee.NewCalculator(chainCtx)
	taxes := tax.NewCalculator(client)

	var router *swap.Router
	if fileConfig.SlippageTolerance != "" {
		router, err = swap.NewRouterWithSlippage(client, pairs, fileConfig.SlippageTolerance)
		if err != nil {
			log.Fatal().Err(err).Msg("Bad slippage tolerance")
		}
	} else {
		router = swap.NewRouter(client, pairs)
	}

	srv := server.NewServer(fileConfig.ServerConfig(), &server.Handlers{
		Quoter: router,
		Taxes:  taxes,
		Fees:   fees,
	})

	// Setup signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("Server error")
			sigCh <- syscall.SIGTERM
		}
	}()

	// Wait for shutdown signal
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
}
