package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/shouni/gemini-fusion-studio/pkg/controller"
	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"github.com/shouni/gemini-fusion-studio/pkg/i18n"
	"github.com/shouni/gemini-fusion-studio/pkg/imgutil"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func isValidFormat(f string) bool {
	switch f {
	case formatText, formatJSON, formatYAML:
		return true
	}
	return false
}

// report は生成 1 回分の結果の要約です。
type report struct {
	RequestID string `json:"request_id" yaml:"request_id"`
	Mode      string `json:"mode" yaml:"mode"`
	ModeLabel string `json:"mode_label" yaml:"mode_label"`
	Images    int    `json:"input_images" yaml:"input_images"`
	Output    string `json:"output" yaml:"output"`
	MediaType string `json:"media_type" yaml:"media_type"`
	Bytes     int    `json:"bytes" yaml:"bytes"`
	Text      string `json:"text,omitempty" yaml:"text,omitempty"`
}

func newReport(loc *i18n.Localizer, snap controller.Snapshot, path string) report {
	r := report{
		RequestID: snap.RequestID,
		Mode:      snap.Mode.String(),
		ModeLabel: loc.ModeLabel(snap.Mode),
		Images:    len(snap.Images),
		Output:    path,
	}
	if snap.Result != nil {
		r.MediaType = snap.Result.MediaType
		r.Bytes = len(snap.Result.ImageData)
		r.Text = snap.Result.Text
	}
	return r
}

// writeImage は生成画像を保存し、書き込んだパスを返します。
// out が空なら dir/fusion-<requestID>.<拡張子> に保存します。
func writeImage(dir, out, requestID string, res *domain.GenerationResult) (string, error) {
	if res == nil || len(res.ImageData) == 0 {
		return "", domain.NewContentError(nil)
	}
	path := out
	if path == "" {
		path = filepath.Join(dir, fmt.Sprintf("fusion-%s%s", requestID, imgutil.ExtensionFor(res.MediaType)))
	}
	if d := filepath.Dir(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return "", fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
		}
	}
	if err := os.WriteFile(path, res.ImageData, 0o644); err != nil {
		return "", fmt.Errorf("画像の保存に失敗しました: %w", err)
	}
	return path, nil
}

func render(w io.Writer, format string, r report) error {
	switch format {
	case formatJSON:
		b, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("JSON の生成に失敗しました: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("YAML の生成に失敗しました: %w", err)
		}
		return enc.Close()
	default:
		fmt.Fprintf(w, "%s (%s)\n", r.ModeLabel, r.Mode)
		fmt.Fprintf(w, "request: %s\n", r.RequestID)
		fmt.Fprintf(w, "saved:   %s (%s, %d bytes)\n", r.Output, r.MediaType, r.Bytes)
		if r.Text != "" {
			fmt.Fprintf(w, "\n%s\n", r.Text)
		}
		return nil
	}
}
