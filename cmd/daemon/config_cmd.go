// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ManuGH/bodydouble/internal/config"
	"gopkg.in/yaml.v3"
)

func runConfigCLI(args []string) int {
	return configCLI(args, os.Stdout, os.Stderr)
}

func configCLI(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage(stderr)
		return 0
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:], stdout, stderr)
	case "dump":
		return runConfigDump(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printConfigUsage(stderr)
		return 2
	}
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  bodydouble config validate [--file|-f config.yaml] [--env-file .env]")
	fmt.Fprintln(w, "  bodydouble config dump [--file|-f config.yaml] [--env-file .env] [--format=yaml|json]")
}

func configFlags(name string, stderr io.Writer) (*flag.FlagSet, *string, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file, envFile string
	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")
	fs.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	return fs, &file, &envFile
}

// runConfigValidate loads the effective configuration and reports every
// problem the daemon would refuse to start with.
func runConfigValidate(args []string, stdout, stderr io.Writer) int {
	fs, file, envFile := configFlags("bodydouble config validate", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	loader := config.NewLoader(strings.TrimSpace(*file), *envFile, version)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error:\n  %v\n", err)
		return 1
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(stderr, "Configuration is invalid:")
		var ve config.ValidationError
		if !errors.As(err, &ve) {
			fmt.Fprintf(stderr, "  %v\n", err)
			return 1
		}
		for _, p := range ve {
			fmt.Fprintf(stderr, "  %v\n", p)
		}
		return 1
	}

	fmt.Fprintln(stdout, "✓ configuration is valid")
	return 0
}

// runConfigDump prints the effective configuration in file layout. The bot
// token is never part of the file layout.
func runConfigDump(args []string, stdout, stderr io.Writer) int {
	fs, file, envFile := configFlags("bodydouble config dump", stderr)
	var format string
	fs.StringVar(&format, "format", "yaml", "output format: yaml or json")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	loader := config.NewLoader(strings.TrimSpace(*file), *envFile, version)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error:\n  %v\n", err)
		return 1
	}
	fileCfg := fileConfigFromAppConfig(cfg)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(fileCfg); err != nil {
			fmt.Fprintf(stderr, "Failed to encode YAML: %v\n", err)
			return 1
		}
		_ = enc.Close()
		return 0
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fileCfg); err != nil {
			fmt.Fprintf(stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(stderr, "Unsupported format: %s (use yaml or json)\n", format)
		return 2
	}
}

func fileConfigFromAppConfig(cfg config.AppConfig) config.FileConfig {
	listen := cfg.Ops.Listen
	tracingEnabled := cfg.Tracing.Enabled
	sampleRate := cfg.Tracing.SampleRate

	return config.FileConfig{
		GuildID: cfg.GuildID,
		Channels: &config.FileChannels{
			General:       cfg.Channels.General,
			Mods:          cfg.Channels.Mods,
			Rules:         cfg.Channels.Rules,
			ServerGuide:   cfg.Channels.ServerGuide,
			Introductions: cfg.Channels.Introductions,
		},
		VCGeneralID:         cfg.VCGeneralID,
		WelcomeQuestionsURL: cfg.WelcomeQuestionsURL,
		LogLevel:            cfg.LogLevel,
		Store: &config.FileStoreConfig{
			Backend:    cfg.Store.Backend,
			FilePath:   cfg.Store.FilePath,
			SqlitePath: cfg.Store.SqlitePath,
			BadgerDir:  cfg.Store.BadgerDir,
			RedisAddr:  cfg.Store.RedisAddr,
			RedisKey:   cfg.Store.RedisKey,
		},
		Ops: &config.FileOpsConfig{Listen: &listen},
		Notify: &config.FileNotify{
			RatePerSec: cfg.Notify.RatePerSec,
			Timeout:    cfg.Notify.Timeout.String(),
		},
		Tracing: &config.FileTracing{
			Enabled:    &tracingEnabled,
			Exporter:   cfg.Tracing.Exporter,
			Endpoint:   cfg.Tracing.Endpoint,
			SampleRate: &sampleRate,
		},
	}
}
