// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ManuGH/bodydouble/internal/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment keys.
const (
	EnvToken               = "DISCORD_BOT_TOKEN"
	EnvGuildID             = "GUILD_ID"
	EnvGeneralChannelID    = "GENERAL_CHANNEL_ID"
	EnvModsChannelID       = "MODS_CHANNEL_ID"
	EnvRulesChannelID      = "RULES_CHANNEL_ID"
	EnvServerGuideID       = "SERVER_GUIDE_CHANNEL_ID"
	EnvIntroductionsID     = "INTRODUCTIONS_CHANNEL_ID"
	EnvVCGeneralID         = "VC_GENERAL_ID"
	EnvWelcomeQuestionsURL = "WELCOME_QUESTIONS_URL"
	EnvSessionStatePath    = "SESSION_STATE_PATH"
	EnvStoreBackend        = "STORE_BACKEND"
	EnvStoreSqlitePath     = "STORE_SQLITE_PATH"
	EnvStoreBadgerDir      = "STORE_BADGER_DIR"
	EnvStoreRedisAddr      = "STORE_REDIS_ADDR"
	EnvStoreRedisKey       = "STORE_REDIS_KEY"
	EnvLogLevel            = "LOG_LEVEL"
	EnvOpsListen           = "OPS_LISTEN"
	EnvNotifyRate          = "NOTIFY_RATE_PER_SEC"
	EnvNotifyTimeout       = "NOTIFY_TIMEOUT"
	EnvTracingEnabled      = "TRACING_ENABLED"
	EnvTracingExporter     = "TRACING_EXPORTER"
	EnvTracingEndpoint     = "TRACING_ENDPOINT"
	EnvTracingSampleRate   = "TRACING_SAMPLE_RATE"
)

// Defaults.
const (
	DefaultSessionStatePath = "sessions_state.json"
	DefaultSqlitePath       = "sessions_state.sqlite"
	DefaultBadgerDir        = "sessions_state.badger"
	DefaultStoreBackend     = "file"
	DefaultLogLevel         = "info"
	DefaultOpsListen        = ":9090"
	DefaultNotifyRate       = 5.0
	DefaultNotifyTimeout    = 15 * time.Second
	DefaultTracingExporter  = "grpc"
	DefaultTracingEndpoint  = "localhost:4317"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	envFile         string
	version         string
	ConsumedEnvKeys map[string]struct{} // Mechanical tracking of consumed keys
	envErrs         []error
}

// NewLoader creates a new configuration loader. envFile names an optional
// .env file; configPath an optional YAML file.
func NewLoader(configPath, envFile, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		envFile:         envFile,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// ConfigPath returns the YAML file the loader reads, or "".
func (l *Loader) ConfigPath() string {
	return l.configPath
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envInt64(key string, defaultVal int64) int64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	if _, _, err := lookupInt64(key); err != nil {
		l.envErrs = append(l.envErrs, err)
		return defaultVal
	}
	return ParseInt64(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

func (l *Loader) envLookup(key string) (string, bool) {
	l.ConsumedEnvKeys[key] = struct{}{}
	return os.LookupEnv(key)
}

// Load loads configuration with precedence: ENV > File > Defaults.
// The .env file only seeds variables the process environment does not set.
// An id variable that is set but not an integer fails the load even when the
// file supplies that id.
func (l *Loader) Load() (AppConfig, error) {
	l.envErrs = nil
	if err := l.loadEnvFile(); err != nil {
		return AppConfig{}, err
	}

	cfg := defaults()

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		mergeFileConfig(&cfg, fileCfg)
	}

	l.mergeEnvConfig(&cfg)
	cfg.Version = l.version
	if len(l.envErrs) > 0 {
		return cfg, errors.Join(l.envErrs...)
	}
	return cfg, nil
}

func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	if err := godotenv.Load(l.envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger := log.WithComponent("config")
			logger.Debug().
				Str(log.FieldPath, l.envFile).
				Msg("no .env file, using process environment only")
			return nil
		}
		return fmt.Errorf("load env file %s: %w", l.envFile, err)
	}
	return nil
}

func defaults() AppConfig {
	return AppConfig{
		LogLevel: DefaultLogLevel,
		Store: StoreConfig{
			Backend:    DefaultStoreBackend,
			FilePath:   DefaultSessionStatePath,
			SqlitePath: DefaultSqlitePath,
			BadgerDir:  DefaultBadgerDir,
		},
		Ops: OpsConfig{Listen: DefaultOpsListen},
		Notify: NotifyConfig{
			RatePerSec: DefaultNotifyRate,
			Timeout:    DefaultNotifyTimeout,
		},
		Tracing: TracingConfig{
			Exporter:   DefaultTracingExporter,
			Endpoint:   DefaultTracingEndpoint,
			SampleRate: 1.0,
		},
	}
}

func (l *Loader) loadFile(path string) (*FileConfig, error) {
	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	// Parse YAML with strict mode (unknown fields cause errors)
	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if err == io.EOF {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: Ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

func mergeFileConfig(cfg *AppConfig, f *FileConfig) {
	setInt64(&cfg.GuildID, f.GuildID)
	setInt64(&cfg.VCGeneralID, f.VCGeneralID)
	setString(&cfg.WelcomeQuestionsURL, f.WelcomeQuestionsURL)
	setString(&cfg.LogLevel, f.LogLevel)

	if ch := f.Channels; ch != nil {
		setInt64(&cfg.Channels.General, ch.General)
		setInt64(&cfg.Channels.Mods, ch.Mods)
		setInt64(&cfg.Channels.Rules, ch.Rules)
		setInt64(&cfg.Channels.ServerGuide, ch.ServerGuide)
		setInt64(&cfg.Channels.Introductions, ch.Introductions)
	}
	if st := f.Store; st != nil {
		setString(&cfg.Store.Backend, st.Backend)
		setString(&cfg.Store.FilePath, st.FilePath)
		setString(&cfg.Store.SqlitePath, st.SqlitePath)
		setString(&cfg.Store.BadgerDir, st.BadgerDir)
		setString(&cfg.Store.RedisAddr, st.RedisAddr)
		setString(&cfg.Store.RedisKey, st.RedisKey)
	}
	if ops := f.Ops; ops != nil && ops.Listen != nil {
		cfg.Ops.Listen = *ops.Listen
	}
	if n := f.Notify; n != nil {
		if n.RatePerSec != 0 {
			cfg.Notify.RatePerSec = n.RatePerSec
		}
		if n.Timeout != "" {
			if d, err := time.ParseDuration(n.Timeout); err == nil {
				cfg.Notify.Timeout = d
			} else {
				// Zero makes Validate report the bad value.
				cfg.Notify.Timeout = 0
			}
		}
	}
	if tr := f.Tracing; tr != nil {
		if tr.Enabled != nil {
			cfg.Tracing.Enabled = *tr.Enabled
		}
		setString(&cfg.Tracing.Exporter, tr.Exporter)
		setString(&cfg.Tracing.Endpoint, tr.Endpoint)
		if tr.SampleRate != nil {
			cfg.Tracing.SampleRate = *tr.SampleRate
		}
	}
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.Token = strings.TrimSpace(l.envString(EnvToken, cfg.Token))
	cfg.GuildID = l.envInt64(EnvGuildID, cfg.GuildID)
	cfg.Channels.General = l.envInt64(EnvGeneralChannelID, cfg.Channels.General)
	cfg.Channels.Mods = l.envInt64(EnvModsChannelID, cfg.Channels.Mods)
	cfg.Channels.Rules = l.envInt64(EnvRulesChannelID, cfg.Channels.Rules)
	cfg.Channels.ServerGuide = l.envInt64(EnvServerGuideID, cfg.Channels.ServerGuide)
	cfg.Channels.Introductions = l.envInt64(EnvIntroductionsID, cfg.Channels.Introductions)
	cfg.VCGeneralID = l.envInt64(EnvVCGeneralID, cfg.VCGeneralID)
	cfg.WelcomeQuestionsURL = l.envString(EnvWelcomeQuestionsURL, cfg.WelcomeQuestionsURL)

	cfg.Store.FilePath = l.envString(EnvSessionStatePath, cfg.Store.FilePath)
	cfg.Store.Backend = strings.ToLower(l.envString(EnvStoreBackend, cfg.Store.Backend))
	cfg.Store.SqlitePath = l.envString(EnvStoreSqlitePath, cfg.Store.SqlitePath)
	cfg.Store.BadgerDir = l.envString(EnvStoreBadgerDir, cfg.Store.BadgerDir)
	cfg.Store.RedisAddr = l.envString(EnvStoreRedisAddr, cfg.Store.RedisAddr)
	cfg.Store.RedisKey = l.envString(EnvStoreRedisKey, cfg.Store.RedisKey)

	cfg.LogLevel = l.envString(EnvLogLevel, cfg.LogLevel)

	// An explicitly empty OPS_LISTEN disables the ops server.
	if v, ok := l.envLookup(EnvOpsListen); ok {
		cfg.Ops.Listen = strings.TrimSpace(v)
	}

	cfg.Notify.RatePerSec = l.envFloat(EnvNotifyRate, cfg.Notify.RatePerSec)
	cfg.Notify.Timeout = l.envDuration(EnvNotifyTimeout, cfg.Notify.Timeout)

	cfg.Tracing.Enabled = l.envBool(EnvTracingEnabled, cfg.Tracing.Enabled)
	cfg.Tracing.Exporter = l.envString(EnvTracingExporter, cfg.Tracing.Exporter)
	cfg.Tracing.Endpoint = l.envString(EnvTracingEndpoint, cfg.Tracing.Endpoint)
	cfg.Tracing.SampleRate = l.envFloat(EnvTracingSampleRate, cfg.Tracing.SampleRate)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt64(dst *int64, v int64) {
	if v != 0 {
		*dst = v
	}
}
