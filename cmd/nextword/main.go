/*
Package main implements the next-word prediction server and CLI application.

NextWord predicts the most probable words following a phrase, using
precomputed n-gram corpora (orders 2 to 6) and a term frequency table. The
engine normalizes the phrase into a bounded token context, then searches
the highest applicable n-gram order and backs off one order at a time
until a prefix match yields candidates or the bigram order is exhausted.

# Usage

Start the msgpack IPC server with default settings:

	nextword

Use a custom corpus directory and enable debug mode:

	nextword -data /path/to/corpus -d

Run in CLI mode for interactive testing:

	nextword -c

Serve the HTTP facade for front ends:

	nextword -http :8080

The data directory holds five flat gram files (bigrams.txt through
sextagrams.txt, one space-delimited gram per line) and the two frequency
table files (term_names.txt, term_counts.txt, joined by line position).
These are produced by the offline corpus pipeline and read here as-is.

# Configuration

Runtime configuration is managed through a TOML file:

	[engine]
	scorer = "single"        # or "paired"
	max_candidates = 5
	match_sample = 150
	sample_size = 800000
	backoff_timeout_ms = 0
	seed = 0                 # 0 means clock-derived

	[corpus]
	data_dir = "data/"
	ephemeral = false

	[server]
	max_text_len = 256
	http_addr = ""

The config file is automatically created with defaults if it doesn't
exist. Resident mode caches each order's full corpus across predictions
and resamples from memory; ephemeral mode re-reads from disk per load and
frees everything on release, trading latency for a smaller footprint.

# Prediction Engine

The core functionality lives in the predict package:

	engine := predict.NewEngine(cfg.EngineOptions())
	prediction, err := engine.Predict("thank you for the")

Sampling makes rankings intentionally nondeterministic across calls on
large corpora; pin the seed (flag or config) for reproducible runs.

# Command Line Flags

	-data string
	    Directory containing the corpus files (default from config)
	-config string
	    Custom config.toml path
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-http string
	    Serve the HTTP facade on this address instead of msgpack IPC
	-scorer string
	    Scoring variant: single or paired (default from config)
	-seed int
	    RNG seed for corpus and match sampling (0 = clock)
	-ephemeral
	    Re-read corpus files per load instead of caching them
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/hbarrien/nextwordpredictor/internal/cli"
	"github.com/hbarrien/nextwordpredictor/pkg/config"
	"github.com/hbarrien/nextwordpredictor/pkg/predict"
	"github.com/hbarrien/nextwordpredictor/pkg/server"
)

const (
	Version = "1.0.0"
	AppName = "nextword"
	gh      = "https://github.com/hbarrien/nextwordpredictor"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, engine, and the chosen surface together. It does not
// implement prediction logic itself and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "", "Directory containing the corpus files")
	configPath := flag.String("config", "", "Custom config.toml path")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	httpAddr := flag.String("http", "", "Serve HTTP on this address instead of msgpack IPC")
	scorer := flag.String("scorer", "", "Scoring variant: single or paired")
	seed := flag.Int64("seed", 0, "RNG seed for sampling (0 = clock)")
	ephemeral := flag.Bool("ephemeral", false, "Re-read corpus files per load instead of caching")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Active config: %s", config.GetActiveConfigPath(activePath))

	// Flag overrides on top of the config file.
	if *dataDir != "" {
		cfg.Corpus.DataDir = *dataDir
	}
	if *ephemeral {
		cfg.Corpus.Ephemeral = true
	}
	if *scorer != "" {
		cfg.Engine.Scorer = *scorer
	}
	if *seed != 0 {
		cfg.Engine.Seed = *seed
	}
	if *httpAddr != "" {
		cfg.Server.HTTPAddr = *httpAddr
	}

	if cfg.Engine.Scorer != "single" && cfg.Engine.Scorer != "paired" {
		log.Fatalf("Unknown scorer variant %q (want single or paired)", cfg.Engine.Scorer)
	}

	log.Debugf("Using corpus dir at: %s", cfg.Corpus.DataDir)
	log.Debugf("Init engine: scorer=[%s], sampleSize=[%d], ephemeral=[%v]",
		cfg.Engine.Scorer, cfg.Engine.SampleSize, cfg.Corpus.Ephemeral)

	engine := predict.NewEngine(cfg.EngineOptions())

	switch {
	case *cliMode:
		handler := cli.NewInputHandler(engine, cfg.Server.MaxTextLen)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI exited: %v", err)
		}
	case cfg.Server.HTTPAddr != "":
		h := server.NewHTTPHandler(engine, cfg)
		if err := h.ListenAndServe(cfg.Server.HTTPAddr); err != nil {
			log.Fatalf("HTTP server exited: %v", err)
		}
	default:
		srv := server.NewServer(engine, cfg)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server exited: %v", err)
		}
	}
}

// printVersion renders the version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()

	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ NextWord ] Predicts the next word from n-gram corpora!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
