// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stacklok/skillhub-core/env"
)

func TestUnstructuredLogsCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		envValue string
		expected bool
	}{
		{"Default Case", "", true},
		{"Explicitly True", "true", true},
		{"Explicitly False", "false", false},
		{"Invalid Value", "not-a-bool", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reader := env.MapReader{"UNSTRUCTURED_LOGS": tt.envValue}
			assert.Equal(t, tt.expected, unstructuredLogs(reader))
		})
	}
}

func TestPackageLevelHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	Infow("ingest complete", "skill", "my-skill")
	Warnf("sidecar ignored: %s", "bad schema")
	Errorw("cleanup failed", "dir", "/tmp/x")
	Debugf("staged %d bytes", 42)

	entries := logs.All()
	assert.Len(t, entries, 4)
	assert.Equal(t, "ingest complete", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestInitializeWithEnv_DoesNotPanic(t *testing.T) {
	InitializeWithEnv(env.MapReader{"UNSTRUCTURED_LOGS": "false", "SKILLHUB_DEBUG": "true"})
	InitializeWithEnv(env.MapReader{})
}
