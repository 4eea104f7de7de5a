package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(&buf, Options{Level: "debug"})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	logger.WithField("waypoints", 2).Debug("loaded")
	assert.Contains(t, buf.String(), "waypoints=2")
	assert.Contains(t, buf.String(), "msg=loaded")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(&buf, Options{Format: "json"})
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("hidden")
	logger.WithField("path", "out.fsh").Info("written")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "written", entry["msg"])
	assert.Equal(t, "out.fsh", entry["path"])
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rayexport.log")

	var buf bytes.Buffer
	logger, closer, err := New(&buf, Options{File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Info("tee")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=tee")
	assert.Contains(t, buf.String(), "msg=tee")
}

func TestNewInvalid(t *testing.T) {
	_, _, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	assert.Error(t, err)

	_, _, err = New(&bytes.Buffer{}, Options{Format: "xml"})
	assert.Error(t, err)
}
