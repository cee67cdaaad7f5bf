package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/image-edit-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-edit-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-edit-mcp - MCP server for simple image editing with undo/redo")
			fmt.Println()
			fmt.Println("Usage: image-edit-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_EDIT_LOG_LEVEL=debug        Enable debug logging")
			fmt.Println("  IMAGE_EDIT_HISTORY_LIMIT=N        Cap undo/redo depth (0 = unlimited)")
			fmt.Println("  IMAGE_EDIT_PREVIEW_SIZE=WxH       Default preview box (960x640)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := loadConfig()
	if cfg.Debug {
		log.Printf("Image Edit MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("history limit %d, preview %dx%d", cfg.HistoryLimit, cfg.PreviewWidth, cfg.PreviewHeight)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadConfig reads the server settings from the environment. Malformed
// values are logged and replaced by defaults.
func loadConfig() server.Config {
	cfg := server.DefaultConfig()
	cfg.Debug = os.Getenv("IMAGE_EDIT_LOG_LEVEL") == "debug"

	if v := os.Getenv("IMAGE_EDIT_HISTORY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Printf("Ignoring IMAGE_EDIT_HISTORY_LIMIT=%q: want a non-negative integer", v)
		} else {
			cfg.HistoryLimit = n
		}
	}

	if v := os.Getenv("IMAGE_EDIT_PREVIEW_SIZE"); v != "" {
		w, h, err := parseSize(v)
		if err != nil {
			log.Printf("Ignoring IMAGE_EDIT_PREVIEW_SIZE=%q: %v", v, err)
		} else {
			cfg.PreviewWidth, cfg.PreviewHeight = w, h
		}
	}

	return cfg
}

// parseSize parses "WxH" with both sides positive.
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("want WIDTHxHEIGHT")
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid width %q", ws)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid height %q", hs)
	}
	return w, h, nil
}
