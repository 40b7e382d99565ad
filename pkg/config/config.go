// Package config は起動時に一度だけ環境変数から設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"github.com/shouni/gemini-fusion-studio/pkg/generator"
	"github.com/shouni/gemini-fusion-studio/pkg/i18n"
)

// Config はプロセス全体で共有する設定です。main で一度だけ作り、各コンポーネントに明示的に渡します。
type Config struct {
	Gemini GeminiConfig
	Image  ImageConfig
	Locale string `env:"FUSION_LOCALE" envDefault:"zh-TW"`
	// OutputDir は生成画像の保存先ディレクトリです。
	OutputDir string `env:"FUSION_OUTPUT_DIR" envDefault:"."`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	// LegacyAPIKey は旧来の変数名です。GEMINI_API_KEY が無いときだけ使います。
	LegacyAPIKey string `env:"API_KEY"`
	// Model が空なら generator.DefaultModel を使います。
	Model string `env:"GEMINI_MODEL"`
}

type ImageConfig struct {
	FetchTimeout    time.Duration `env:"FUSION_FETCH_TIMEOUT" envDefault:"30s"`
	Compress        bool          `env:"FUSION_COMPRESS_IMAGES" envDefault:"false"`
	CompressQuality int           `env:"FUSION_COMPRESS_QUALITY" envDefault:"75"`
}

// Key は有効な API キーを返します。
func (c *Config) Key() string {
	if k := strings.TrimSpace(c.Gemini.APIKey); k != "" {
		return k
	}
	return strings.TrimSpace(c.Gemini.LegacyAPIKey)
}

// Load は dotenv ファイル（存在すれば）と環境変数から設定を読み込みます。
// 既に設定されている環境変数は dotenv で上書きしません。
// API キーが無い場合は ConfigurationError です。
func Load(dotenvFiles ...string) (*Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dotenv ファイル %s の読み込みに失敗しました: %w", f, err)
		}
	}
	return Parse(env.Options{})
}

// Parse は環境変数（または opts.Environment）から設定を組み立てて検証します。
func Parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("環境変数の解析に失敗しました: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は起動に必要な値が揃っているかを確認します。
func (c *Config) Validate() error {
	if c.Key() == "" {
		return domain.NewConfigurationError(domain.MsgMissingCredential)
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = generator.DefaultModel
	}
	if c.Locale == "" {
		c.Locale = i18n.DefaultLocale
	}
	if c.Image.CompressQuality < 1 || c.Image.CompressQuality > 100 {
		return domain.NewConfigurationError(fmt.Sprintf("FUSION_COMPRESS_QUALITY must be between 1 and 100, got %d", c.Image.CompressQuality))
	}
	return nil
}
