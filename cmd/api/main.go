// Package main is the entry point for the OldNotice API server, which decides
// whether older articles carry an "old content" notice, renders that notice,
// and manages its settings for site administrators.
//
// Besides serving HTTP, the binary has two maintenance modes. -log-level
// overrides the configured level in every mode.
//
//	-issue-token <subject>  print a signed admin token and exit
//	-uninstall              remove the settings record and every item flag
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/auth"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/config"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/server"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/utils"
)

// Version information is set during build time through linker flags.
var (
	// version represents the release version of the application.
	version = "dev"

	// commit is the git commit hash from which the application was built.
	commit = "none"

	// buildDate is the timestamp when the application was built.
	buildDate = "unknown"
)

// init loads environment variables from a .env file if present.
func init() {
	// Not finding a .env file is fine, configuration may come from elsewhere
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found or couldn't be loaded")
	}
}

func main() {
	var (
		configPath  string
		showVersion bool
		issueToken  string
		uninstall   bool
		logLevel    string
	)

	flag.StringVar(&configPath, "config", "./configs/config.yaml", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.StringVar(&issueToken, "issue-token", "", "Print an admin token for the given subject and exit")
	flag.BoolVar(&uninstall, "uninstall", false, "Remove all stored notice settings and item flags, then exit")
	flag.StringVar(&logLevel, "log-level", "", "Override the configured log level")
	flag.Parse()

	if showVersion {
		fmt.Printf("OldNotice API Server\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
		os.Exit(0)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.App.Version = version
	}

	utils.InitLogger(cfg)

	if logLevel != "" {
		if err := utils.SetLogLevel(logLevel); err != nil {
			log.Fatal().Err(err).Msg("Invalid -log-level")
		}
	}

	if issueToken != "" {
		token, jwtID, err := auth.NewJWTService(&cfg.JWT).GenerateAdminToken(issueToken)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to issue admin token")
		}
		log.Info().Str("subject", issueToken).Str("jti", jwtID).Dur("expires_in", cfg.JWT.Expiry).Msg("Admin token issued")
		fmt.Println(token)
		return
	}

	log.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Str("log_level", utils.GetLogLevel()).
		Msg("Starting OldNotice API Server")

	utils.InitValidator()

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	if uninstall {
		removed, err := srv.NoticeService.Uninstall(context.Background())
		srv.Db.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("Uninstall failed")
		}
		fmt.Printf("Removed notice settings and %d item flags\n", removed)
		return
	}

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
