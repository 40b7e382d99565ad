package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"github.com/shouni/gemini-fusion-studio/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseWith(t *testing.T, vars map[string]string) (*Config, error) {
	t.Helper()
	return Parse(env.Options{Environment: vars})
}

func TestParse(t *testing.T) {
	t.Run("既定値", func(t *testing.T) {
		cfg, err := parseWith(t, map[string]string{"GEMINI_API_KEY": "k"})
		require.NoError(t, err)
		assert.Equal(t, "k", cfg.Key())
		assert.Equal(t, generator.DefaultModel, cfg.Gemini.Model)
		assert.Equal(t, "zh-TW", cfg.Locale)
		assert.Equal(t, ".", cfg.OutputDir)
		assert.Equal(t, 30*time.Second, cfg.Image.FetchTimeout)
		assert.False(t, cfg.Image.Compress)
		assert.Equal(t, 75, cfg.Image.CompressQuality)
	})

	t.Run("GEMINI_MODEL が空なら既定のモデル", func(t *testing.T) {
		cfg, err := parseWith(t, map[string]string{"GEMINI_API_KEY": "k", "GEMINI_MODEL": ""})
		require.NoError(t, err)
		assert.Equal(t, generator.DefaultModel, cfg.Gemini.Model)
	})

	t.Run("API キーが無ければ ConfigurationError", func(t *testing.T) {
		_, err := parseWith(t, map[string]string{"GEMINI_API_KEY": "  "})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfiguration))
	})

	t.Run("旧名の API_KEY も使える", func(t *testing.T) {
		cfg, err := parseWith(t, map[string]string{"API_KEY": "legacy"})
		require.NoError(t, err)
		assert.Equal(t, "legacy", cfg.Key())
	})

	t.Run("GEMINI_API_KEY を優先", func(t *testing.T) {
		cfg, err := parseWith(t, map[string]string{"API_KEY": "legacy", "GEMINI_API_KEY": "new"})
		require.NoError(t, err)
		assert.Equal(t, "new", cfg.Key())
	})

	t.Run("値の上書き", func(t *testing.T) {
		cfg, err := parseWith(t, map[string]string{
			"GEMINI_API_KEY":          "k",
			"GEMINI_MODEL":            "gemini-x",
			"FUSION_LOCALE":           "en",
			"FUSION_FETCH_TIMEOUT":    "5s",
			"FUSION_COMPRESS_IMAGES":  "true",
			"FUSION_COMPRESS_QUALITY": "40",
		})
		require.NoError(t, err)
		assert.Equal(t, "gemini-x", cfg.Gemini.Model)
		assert.Equal(t, "en", cfg.Locale)
		assert.Equal(t, 5*time.Second, cfg.Image.FetchTimeout)
		assert.True(t, cfg.Image.Compress)
		assert.Equal(t, 40, cfg.Image.CompressQuality)
	})

	t.Run("品質が範囲外なら ConfigurationError", func(t *testing.T) {
		_, err := parseWith(t, map[string]string{"GEMINI_API_KEY": "k", "FUSION_COMPRESS_QUALITY": "0"})
		assert.True(t, errors.Is(err, domain.ErrConfiguration))
	})

	t.Run("解析できない値はエラー", func(t *testing.T) {
		_, err := parseWith(t, map[string]string{"GEMINI_API_KEY": "k", "FUSION_FETCH_TIMEOUT": "soon"})
		assert.Error(t, err)
	})
}

func TestLoad_Dotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GEMINI_API_KEY=from-dotenv\nFUSION_LOCALE=en\n"), 0o600))

	t.Setenv("GEMINI_API_KEY", "")
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))
	t.Setenv("FUSION_LOCALE", "zh-TW")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Key())
	assert.Equal(t, "zh-TW", cfg.Locale, "既存の環境変数は上書きしない")
}
