package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONInProduction(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", "", true)

	log.WithField("artwork_id", "abc").Debug("comment added")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "comment added", entry["msg"])
	assert.Equal(t, "abc", entry["artwork_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNew_TextFormatAndLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "chatty", "text", true)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	log.Debug("hidden")
	log.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}
