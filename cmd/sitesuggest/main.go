// Copyright 2025 The SiteSuggest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the site search suggestion server, CLI [DBG] and
terminal search surface.

Note: This is a BETA release. APIs and functionality may rapidly change.

SiteSuggest answers "what on the site matches what I typed" for a clinic
website: tests, services and pages whose name or category contains the query,
in catalog order, with the matching part emphasized. It can operate as a
MessagePack IPC server for a front end, as a line-oriented CLI for debugging,
or as an interactive terminal search surface.

# Usage

Start the server with default settings:

	sitesuggest

Use a custom catalog and enable debug mode:

	sitesuggest -catalog /path/to/catalog.toml -d

Run in CLI mode for testing queries:

	sitesuggest -c -limit 5

Open the terminal search surface:

	sitesuggest -t

Print the active catalog as TOML, ready to edit and pass back with -catalog:

	sitesuggest -export-catalog > catalog.toml

# Configuration

Runtime configuration lives in a TOML file, created with defaults if missing:

	[search]
	min_query = 2
	max_results = 8
	debounce_ms = 300
	marker_open = "<strong>"
	marker_close = "</strong>"

	[site]
	base_url = ""
	results_page = "search-results.html"
	query_param = "q"

	[catalog]
	path = ""

	[ui]
	toast_ms = 3000
	term_limit = 5

Server mode checks the file periodically and picks up edits without restart.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Send a query:

	{"id": "req1", "q": "covid"}

Receive matching rows with microsecond timing:

	{"id": "req1", "s": [{"n": "COVID-19 PCR Test", "c": "Infectious Disease", "k": "test",
	  "u": "test-menu.html#covid", "h": "<strong>COVID</strong>-19 PCR Test", "r": 1}], "c": 1, "t": 31}

See package server for the remaining actions.

# Command Line Flags

	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-t  Run the terminal search surface
	-config string
	    Path to a custom config file
	-catalog string
	    Catalog TOML file (overrides [catalog] path)
	-limit int
	    Maximum number of suggestions (overrides [search] max_results)
	-min int
	    Minimum query length (overrides [search] min_query)
	-export-catalog
	    Write the active catalog as TOML to stdout and exit
	-log string
	    Log file for the terminal surface
	-reset-config
	    Rewrite the default config file with built-in values and exit
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/sitesuggest/internal/cli"
	"github.com/bastiangx/sitesuggest/internal/logger"
	"github.com/bastiangx/sitesuggest/internal/tui"
	"github.com/bastiangx/sitesuggest/internal/utils"
	"github.com/bastiangx/sitesuggest/pkg/catalog"
	"github.com/bastiangx/sitesuggest/pkg/config"
	"github.com/bastiangx/sitesuggest/pkg/server"
	"github.com/bastiangx/sitesuggest/pkg/session"
	"github.com/bastiangx/sitesuggest/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "sitesuggest"
	gh      = "https://github.com/bastiangx/sitesuggest"
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

// main only manages the flow between the packages.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	tuiMode := flag.Bool("t", false, "Run the terminal search surface")
	configFile := flag.String("config", "", "Path to custom config file")
	catalogFile := flag.String("catalog", "", "Catalog TOML file (overrides config)")
	limit := flag.Int("limit", 0, "Maximum number of suggestions (0 uses config)")
	minQuery := flag.Int("min", 0, "Minimum query length (0 uses config)")
	exportCatalog := flag.Bool("export-catalog", false, "Write the active catalog as TOML to stdout and exit")
	logFile := flag.String("log", "", "Log file for the terminal surface (default in config dir)")
	resetConfig := flag.Bool("reset-config", false, "Rewrite the default config file with built-in values and exit")

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

	pathResolver, err := utils.NewPathResolver(AppName)
	if err != nil {
		log.Errorf("Failed to initialize path resolver: %v", err)
		log.Print("Either env is not set or system is not supported")
		os.Exit(1)
	}

	log.Debugf("Config dir: %s", pathResolver.GetConfigDir())

	if *resetConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Print("Config rebuilt", "path", config.GetActiveConfigPath(""))
		return
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	overrides := config.Overrides{MaxResults: *limit, MinQuery: *minQuery}
	overrides.Apply(appConfig)

	cat := loadCatalog(pathResolver, *catalogFile, appConfig.Catalog.Path)
	log.Debug("Catalog ready", "entries", cat.Len())

	if *exportCatalog {
		if err := catalog.Encode(os.Stdout, cat); err != nil {
			log.Fatalf("Failed to export catalog: %v", err)
		}
		return
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		sigHandler()
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minQuery", appConfig.Search.MinQuery,
			"limit", appConfig.Search.MaxResults)

		index := suggest.NewIndex(cat, appConfig.IndexOptions()...)
		inputHandler := cli.NewInputHandler(index, appConfig.Search.MinQuery, appConfig.Search.MaxResults, os.Stdin, os.Stdout)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if *tuiMode {
		runSurface(pathResolver, appConfig, cat, *logFile)
		return
	}

	sigHandler()
	log.Debug("spawning IPC")
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	srv := server.NewServer(cat, appConfig, configPath)
	srv.SetOverrides(overrides)
	showStartupInfo(configPath, cat)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// loadCatalog resolves the catalog file from the flag or config, falling
// back to the built-in catalog.
func loadCatalog(pr *utils.PathResolver, flagPath, configPath string) *catalog.Catalog {
	userPath := flagPath
	if userPath == "" {
		userPath = configPath
	}
	if userPath == "" {
		return catalog.Default()
	}
	resolved, err := pr.FindFile(userPath)
	if err != nil {
		log.Warnf("Catalog file %s not found. Using built-in catalog...", userPath)
		return catalog.Default()
	}
	log.Debugf("Using catalog at: %s", resolved)
	return catalog.LoadOrDefault(resolved)
}

// runSurface starts the terminal search surface and prints the chosen locator.
func runSurface(pr *utils.PathResolver, cfg *config.Config, cat *catalog.Catalog, logPath string) {
	if logPath == "" {
		p, err := pr.GetConfigPath(AppName + ".log")
		if err != nil {
			log.Fatalf("Failed to determine log path: %v", err)
		}
		logPath = p
	}
	closer, err := logger.RedirectToFile(logPath)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closer.Close()

	index := suggest.NewIndex(cat, cfg.IndexOptions()...)
	sess := session.New(index, cfg.SessionOptions())
	target, err := tui.Run(sess, index, tui.Options{
		MinQueryLength: cfg.Search.MinQuery,
		TermLimit:      cfg.UI.TermLimit,
		ToastDuration:  cfg.ToastDuration(),
	})
	if err != nil {
		log.Errorf("Search surface error: %v", err)
		return
	}
	if target != "" {
		fmt.Println(target)
	}
}

func printVersion() {
	vlog := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#7AB8FF"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	vlog.SetStyles(styles)

	vlog.Print("")
	vlog.Print("[ SiteSuggest ] Search suggestions for the clinic site")
	vlog.Print("", "version", Version)
	vlog.Print("")
	vlog.Print("use -h or --help to see available options")
	vlog.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(configPath string, cat *catalog.Catalog) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("=============")
	println(" SiteSuggest ")
	println("=============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("catalog: %d entries", cat.Len())
	log.Infof("config: ( %s )", config.GetActiveConfigPath(configPath))
	log.Info("status: ready")
	println("=============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
