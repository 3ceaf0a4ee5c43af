// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// AppConfig is the resolved bot configuration.
type AppConfig struct {
	Version string

	Token               string
	GuildID             int64
	Channels            Channels
	VCGeneralID         int64
	WelcomeQuestionsURL string

	LogLevel string

	Store   StoreConfig
	Ops     OpsConfig
	Notify  NotifyConfig
	Tracing TracingConfig
}

// Channels holds the text channel ids the bot posts to or links.
type Channels struct {
	General       int64
	Mods          int64
	Rules         int64
	ServerGuide   int64
	Introductions int64
}

// StoreConfig selects the session state backend.
type StoreConfig struct {
	Backend    string
	FilePath   string
	SqlitePath string
	BadgerDir  string
	RedisAddr  string
	RedisKey   string
}

// OpsConfig configures the operational HTTP server. An empty Listen disables it.
type OpsConfig struct {
	Listen string
}

// NotifyConfig paces and bounds outbound messages.
type NotifyConfig struct {
	RatePerSec float64
	Timeout    time.Duration
}

// TracingConfig configures OpenTelemetry export.
type TracingConfig struct {
	Enabled    bool
	Exporter   string
	Endpoint   string
	SampleRate float64
}

// FileConfig is the YAML file layout. Every field is optional; the bot token
// is only read from the environment.
type FileConfig struct {
	GuildID             int64            `yaml:"guildId,omitempty"`
	Channels            *FileChannels    `yaml:"channels,omitempty"`
	VCGeneralID         int64            `yaml:"vcGeneralId,omitempty"`
	WelcomeQuestionsURL string           `yaml:"welcomeQuestionsUrl,omitempty"`
	LogLevel            string           `yaml:"logLevel,omitempty"`
	Store               *FileStoreConfig `yaml:"store,omitempty"`
	Ops                 *FileOpsConfig   `yaml:"ops,omitempty"`
	Notify              *FileNotify      `yaml:"notify,omitempty"`
	Tracing             *FileTracing     `yaml:"tracing,omitempty"`
}

type FileChannels struct {
	General       int64 `yaml:"general,omitempty"`
	Mods          int64 `yaml:"mods,omitempty"`
	Rules         int64 `yaml:"rules,omitempty"`
	ServerGuide   int64 `yaml:"serverGuide,omitempty"`
	Introductions int64 `yaml:"introductions,omitempty"`
}

type FileStoreConfig struct {
	Backend    string `yaml:"backend,omitempty"`
	FilePath   string `yaml:"filePath,omitempty"`
	SqlitePath string `yaml:"sqlitePath,omitempty"`
	BadgerDir  string `yaml:"badgerDir,omitempty"`
	RedisAddr  string `yaml:"redisAddr,omitempty"`
	RedisKey   string `yaml:"redisKey,omitempty"`
}

type FileOpsConfig struct {
	Listen *string `yaml:"listen,omitempty"`
}

type FileNotify struct {
	RatePerSec float64 `yaml:"ratePerSec,omitempty"`
	Timeout    string  `yaml:"timeout,omitempty"`
}

type FileTracing struct {
	Enabled    *bool    `yaml:"enabled,omitempty"`
	Exporter   string   `yaml:"exporter,omitempty"`
	Endpoint   string   `yaml:"endpoint,omitempty"`
	SampleRate *float64 `yaml:"sampleRate,omitempty"`
}
