// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"os"
	"testing"

	"go.uber.org/goleak"
)

var allEnvKeys = []string{
	EnvToken, EnvGuildID, EnvGeneralChannelID, EnvModsChannelID, EnvRulesChannelID,
	EnvServerGuideID, EnvIntroductionsID, EnvVCGeneralID, EnvWelcomeQuestionsURL,
	EnvSessionStatePath, EnvStoreBackend, EnvStoreSqlitePath, EnvStoreBadgerDir,
	EnvStoreRedisAddr, EnvStoreRedisKey, EnvLogLevel, EnvOpsListen, EnvNotifyRate,
	EnvNotifyTimeout, EnvTracingEnabled, EnvTracingExporter, EnvTracingEndpoint,
	EnvTracingSampleRate,
}

func TestMain(m *testing.M) {
	// Start every test from a clean environment.
	for _, key := range allEnvKeys {
		if err := os.Unsetenv(key); err != nil {
			panic("failed to unset env: " + err.Error())
		}
	}
	goleak.VerifyTestMain(m)
}

// unsetForTest clears key for the duration of the test, restoring it afterwards.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvToken, "real-token")
	t.Setenv(EnvGuildID, "100")
	t.Setenv(EnvGeneralChannelID, "101")
	t.Setenv(EnvModsChannelID, "102")
	t.Setenv(EnvRulesChannelID, "103")
	t.Setenv(EnvServerGuideID, "104")
	t.Setenv(EnvIntroductionsID, "105")
	t.Setenv(EnvVCGeneralID, "106")
}
