package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "accounts", "production")

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "accounts", line["app"])
}

func TestNewLoggerDevelopmentIsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "accounts", "development")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestLogErrorDoesNotMutateFields(t *testing.T) {
	logger, hook := test.NewNullLogger()
	fields := logrus.Fields{"account_id": "1"}

	LogError(logger, "failed", errors.New("boom"), fields)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "1", hook.LastEntry().Data["account_id"])
	assert.NotNil(t, hook.LastEntry().Data[logrus.ErrorKey])
	assert.Len(t, fields, 1)
}
