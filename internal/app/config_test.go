package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taglib/internal/export"
)

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{BundlesPath: "mods"})
	require.NoError(t, err)
	assert.Equal(t, export.FormatJSON, cfg.Format)

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing bundles path", Config{}, "BundlesPath"},
		{"bad format", Config{BundlesPath: "mods", Format: "xml"}, "unknown export format"},
		{"negative workers", Config{BundlesPath: "mods", Workers: -1}, "workers"},
		{"port out of range", Config{BundlesPath: "mods", ListenPort: 70000}, "listen port"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
