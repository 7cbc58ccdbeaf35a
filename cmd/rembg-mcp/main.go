package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pixelcut/rembg-mcp/internal/config"
	"github.com/pixelcut/rembg-mcp/internal/rembg"
	"github.com/pixelcut/rembg-mcp/internal/removal"
	"github.com/pixelcut/rembg-mcp/internal/server"
	"github.com/pixelcut/rembg-mcp/internal/session"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := ""

	// Handle --version, --help and --config flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("rembg-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("rembg-mcp - MCP server for image background removal")
			fmt.Println()
			fmt.Println("Usage: rembg-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --config <path>  Load configuration from a YAML file")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  REMBG_MCP_LOG_LEVEL=debug            Enable debug logging")
			fmt.Println("  REMBG_MCP_BACKEND_URL=<url>          rembg HTTP backend address")
			fmt.Println("  REMBG_MCP_CACHE_IDLE_TIMEOUT=5m      Idle model auto-unload timeout")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		case "--config":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "--config requires a path argument")
				os.Exit(2)
			}
			configPath = os.Args[2]
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout carries the MCP protocol.
	log := newLogger(cfg.LogLevel)
	defer log.Sync() //nolint:errcheck

	log.Debug("starting",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
		zap.String("backend_url", cfg.Backend.URL))

	backend := rembg.New(cfg.Backend.URL, cfg.Backend.Timeout, log)
	cache := session.NewCache(backend, cfg.Cache.IdleTimeout, log)
	defer cache.Stop()

	remover := removal.New(cache, cfg, log)

	srv := server.New(remover, cache, log)
	if err := srv.Run(); err != nil {
		log.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return zap.New(core)
}
