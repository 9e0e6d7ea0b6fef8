package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfigs(t *testing.T) {
	dev := DefaultConfig()
	assert.Equal(t, "console", dev.Format)
	assert.Equal(t, "stdout", dev.Output)
	assert.NotEmpty(t, dev.TimeFormat)

	prod := ProductionConfig()
	assert.Equal(t, "json", prod.Format)
	assert.Equal(t, "info", prod.Level)
}

func TestNew(t *testing.T) {
	for _, cfg := range []*Config{
		DefaultConfig(),
		ProductionConfig(),
		{Level: "debug", Format: "console", Output: "stdout", TimeFormat: "2006-01-02T15:04:05Z07:00"},
		{Level: "warn", Format: "json", Output: "stderr", TimeFormat: "2006-01-02T15:04:05Z07:00"},
	} {
		log, err := New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, log)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for input, want := range cases {
		assert.Equal(t, want, parseLevel(input), "level %q", input)
	}
}

func TestNewSink(t *testing.T) {
	assert.NotNil(t, newSink("stdout"))
	assert.NotNil(t, newSink("STDERR"))

	tmp, err := os.CreateTemp("", "bolibana-log-*.log")
	require.NoError(t, err)
	defer os.Remove(tmp.Name())
	tmp.Close()
	assert.NotNil(t, newSink(tmp.Name()))
}

func TestNewEncoderFormats(t *testing.T) {
	base := Config{Level: "info", Output: "stdout", TimeFormat: "2006-01-02T15:04:05Z07:00"}

	console := base
	console.Format = "console"
	assert.NotNil(t, newEncoder(&console))

	jsonCfg := base
	jsonCfg.Format = "json"
	assert.NotNil(t, newEncoder(&jsonCfg))
}

func TestJSONOutputShape(t *testing.T) {
	var buf bytes.Buffer
	cfg := ProductionConfig()
	core := zapcore.NewCore(newEncoder(cfg), zapcore.AddSync(&buf), parseLevel(cfg.Level))
	log := zap.New(core)

	log.Info("sale completed", zap.String("reference", "VTE-0001"))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "sale completed", out["msg"])
	assert.Equal(t, "info", out["level"])
	assert.Equal(t, "VTE-0001", out["reference"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Level: "warn", Format: "json", Output: "stdout", TimeFormat: "2006-01-02T15:04:05Z07:00"}
	core := zapcore.NewCore(newEncoder(cfg), zapcore.AddSync(&buf), parseLevel(cfg.Level))
	log := zap.New(core)

	log.Info("below threshold")
	assert.Empty(t, buf.String())

	log.Warn("stock below alert threshold")
	assert.Contains(t, buf.String(), "stock below alert threshold")
}

func TestSync(t *testing.T) {
	log, err := New(DefaultConfig())
	require.NoError(t, err)

	// Sync on stdout may error depending on the platform, it must not panic
	_ = Sync(log)
}
