package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryvavyipotii/ripemd160attack/internal/logging"
)

func TestJSONLoggerEmitsRequestedFields(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: "debug", Format: logging.FormatJSON, Output: &buf})

	log.Info("attack finished", "iterations", 42, "kind", "preimage_success")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "attack finished", decoded["message"])
	assert.EqualValues(t, 42, decoded["iterations"])
	assert.Equal(t, "preimage_success", decoded["kind"])
}

func TestOddFieldCountIsReportedNotPanicked(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: "info", Format: logging.FormatJSON, Output: &buf})

	assert.NotPanics(t, func() {
		log.Warn("dangling field", "only_key")
	})

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded["field_error"], "odd number of fields")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: "not-a-level", Format: logging.FormatJSON, Output: &buf})

	log.Info("still logs")

	assert.Contains(t, buf.String(), "still logs")
}
