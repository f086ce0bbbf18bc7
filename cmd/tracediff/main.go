package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/kvit-s/tracediff/internal/config"
	"github.com/kvit-s/tracediff/internal/diff"
	"github.com/kvit-s/tracediff/internal/locator"
	"github.com/kvit-s/tracediff/internal/logging"
	"github.com/kvit-s/tracediff/internal/server"
	"github.com/kvit-s/tracediff/internal/session"
	"github.com/kvit-s/tracediff/internal/ui"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	buildDate  = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	logFile := flag.String("log", "", "log file path (empty to disable, overrides config)")
	serve := flag.Bool("serve", false, "serve the diff tools over stdio")
	workDir := flag.String("workdir", mustGetwd(), "project working directory for session lookups")
	sessionList := flag.Bool("sessions", false, "list sessions for the working directory and exit")
	sessionShow := flag.String("show", "", "show a session's recorded operations and exit")
	noColor := flag.Bool("no-color", false, "disable colored output")
	showVersion := flag.Bool("version", false, "show version information and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("tracediff %s (commit %s, built %s)\n", version, commitHash, buildDate)
		return
	}

	if *noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logPath := cfg.Log.Path
	if *logFile != "" {
		logPath = *logFile
	}
	logger, err := logging.New(logPath, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	cache := locator.NewCache(time.Duration(cfg.Sessions.CacheTTLSecs) * time.Second)
	loc := locator.New(cfg.Sessions.Root, cache,
		locator.WithRetry(cfg.Sessions.RetryAttempts, time.Duration(cfg.Sessions.RetryBackoffMS)*time.Millisecond))

	// Session inspection commands run and exit before the server starts.
	if *sessionList {
		ids, err := loc.Sessions(*workDir)
		if err != nil {
			log.Fatalf("Failed to list sessions: %v", err)
		}
		ui.WriteSessionList(os.Stdout, ids)
		return
	}

	if *sessionShow != "" {
		logPath, err := loc.Resolve(*workDir, *sessionShow)
		if err != nil {
			log.Fatalf("Session %q not found: %v", *sessionShow, err)
		}
		records, err := session.ParseFile(logPath)
		if err != nil {
			log.Fatalf("Failed to parse session log: %v", err)
		}
		ui.WriteOperations(os.Stdout, *sessionShow, records)
		return
	}

	if !*serve {
		fmt.Fprintln(os.Stderr, "Usage: tracediff -serve [options]")
		fmt.Fprintln(os.Stderr, "       tracediff -sessions | -show <session-id> [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	engine := diff.NewEngine(cfg.EngineLimits())
	srv := server.New(version, engine, loc, logger)

	logger.Info("serving stdio")
	if err := srv.ServeStdio(); err != nil {
		logger.Error("server exited", err)
		log.Fatalf("Server error: %v", err)
	}
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
