package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/shouni/gemini-fusion-studio/pkg/config"
	"github.com/shouni/gemini-fusion-studio/pkg/controller"
	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"github.com/shouni/gemini-fusion-studio/pkg/encoder"
	"github.com/shouni/gemini-fusion-studio/pkg/generator"
	"github.com/shouni/gemini-fusion-studio/pkg/i18n"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

type generateOptions struct {
	mode   string
	prompt string
	images []string
	out    string
	format string
}

var genOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an image once with the selected mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		locale, _ := cmd.Flags().GetString("locale")

		cfg, err := config.Load(envFile)
		if err != nil {
			return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
		}
		if locale == "" {
			locale = cfg.Locale
		}
		loc := i18n.New(locale)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Key(),
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
		}

		loader, closeLoader, err := newLoader(ctx, cfg, genOpts.images)
		if err != nil {
			return err
		}
		defer closeLoader()

		return runGenerate(ctx, cmd.OutOrStdout(), cfg, loc, client.Models, loader, genOpts)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&genOpts.mode, "mode", "m", string(domain.ModeTextToImage), "Generation mode (text-to-image, image-to-image, multi-image, figurine)")
	generateCmd.Flags().StringVarP(&genOpts.prompt, "prompt", "p", "", "Creative prompt (ignored in figurine mode)")
	generateCmd.Flags().StringArrayVarP(&genOpts.images, "image", "i", nil, "Reference image path, http(s) URL, gs:// URI or data URI (repeatable)")
	generateCmd.Flags().StringVarP(&genOpts.out, "out", "o", "", "Output file path (default: <output dir>/fusion-<request id>.<ext>)")
	generateCmd.Flags().StringVarP(&genOpts.format, "format", "f", formatText, "Report format (text, json, yaml)")
}

// newIOFactory は gs:// の読み込みに使うファクトリを作ります。テストで差し替えます。
var newIOFactory = gcsfactory.New

// newLoader は設定に従って Loader を作ります。
// gs:// の画像が指定されたときだけ GCS クライアントを初期化し、その後始末を返します。
func newLoader(ctx context.Context, cfg *config.Config, images []string) (*encoder.Loader, func(), error) {
	opts := []encoder.LoaderOption{
		encoder.WithHTTPFetcher(httpkit.New(cfg.Image.FetchTimeout)),
		encoder.WithLogger(slog.Default()),
	}
	if cfg.Image.Compress {
		opts = append(opts, encoder.WithCompression(cfg.Image.CompressQuality))
	}

	closeFn := func() {}
	if slices.ContainsFunc(images, remoteio.IsGCSURI) {
		factory, err := newIOFactory(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("GCSクライアントの初期化に失敗しました: %w", err)
		}
		reader, err := factory.InputReader()
		if err != nil {
			_ = factory.Close()
			return nil, nil, fmt.Errorf("InputReaderの生成に失敗しました: %w", err)
		}
		opts = append(opts, encoder.WithObjectReader(reader))
		closeFn = func() {
			if err := factory.Close(); err != nil {
				slog.Warn("GCSクライアントのクローズに失敗しました", "error", err)
			}
		}
	}
	return encoder.NewLoader(opts...), closeFn, nil
}

// runGenerate は 1 回分の生成を行い、画像を保存してレポートを w に書きます。
func runGenerate(ctx context.Context, w io.Writer, cfg *config.Config, loc *i18n.Localizer, backend generator.ContentGenerator, loader *encoder.Loader, opts generateOptions) error {
	if !isValidFormat(opts.format) {
		return domain.NewValidationError(fmt.Sprintf("unknown format: %q", opts.format))
	}
	mode, err := domain.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	gen, err := generator.NewClient(backend, cfg.Gemini.Model, generator.WithClientLogger(slog.Default()))
	if err != nil {
		return err
	}
	ctrl, err := controller.New(gen,
		controller.WithLocalizer(loc),
		controller.WithLogger(slog.Default()),
		controller.WithMode(mode),
	)
	if err != nil {
		return err
	}

	if mode.MaxImages() == 0 && len(opts.images) > 0 {
		slog.WarnContext(ctx, loc.Text(i18n.KeyUploadOff), "ignored", len(opts.images))
	}
	cands := make([]encoder.Candidate, 0, len(opts.images))
	for _, uri := range opts.images {
		cands = append(cands, encoder.NewCandidate(uri))
	}
	images, err := loader.LoadAll(ctx, cands, mode, 0)
	if err != nil {
		return errors.New(loc.Failure(err))
	}
	ctrl.AddImages(images...)
	if err := ctrl.SetPrompt(opts.prompt); err != nil {
		return err
	}

	result, err := ctrl.Submit(ctx)
	snap := ctrl.Snapshot()
	if err != nil {
		if snap.Validation != "" {
			return errors.New(snap.Validation)
		}
		return errors.New(snap.Error)
	}

	path, err := writeImage(cfg.OutputDir, opts.out, snap.RequestID, result)
	if err != nil {
		return err
	}
	return render(w, opts.format, newReport(loc, snap, path))
}
