package encoder

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"github.com/shouni/gemini-fusion-studio/pkg/imgutil"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"golang.org/x/sync/errgroup"
)

// HTTPFetcher は URL から画像のバイト列を取得します。
type HTTPFetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// ObjectReader は gs:// や s3:// のリモートストレージから読み込みます。
type ObjectReader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

var (
	_ HTTPFetcher  = httpkit.ClientInterface(nil)
	_ ObjectReader = remoteio.InputReader(nil)
)

// errNotImage は中身を見た結果、画像ではなかったことを示します。LoadAll はこれを黙って捨てます。
var errNotImage = errors.New("not an image")

// Loader は Candidate を読み込んで EncodedImage にします。
type Loader struct {
	http     HTTPFetcher
	objects  ObjectReader
	compress bool
	quality  int
	logger   *slog.Logger
}

// LoaderOption は Loader の設定を変更します。
type LoaderOption func(*Loader)

// WithHTTPFetcher は http(s) の URL を読むためのクライアントを設定します。
func WithHTTPFetcher(f HTTPFetcher) LoaderOption {
	return func(l *Loader) { l.http = f }
}

// WithObjectReader は gs:// を読むためのリーダーを設定します。
func WithObjectReader(r ObjectReader) LoaderOption {
	return func(l *Loader) { l.objects = r }
}

// WithCompression は読み込んだ画像を JPEG に再圧縮します（小さくなる場合のみ）。
// 既定では無効で、ペイロードはファイルの中身そのままです。
func WithCompression(quality int) LoaderOption {
	return func(l *Loader) {
		l.compress = true
		l.quality = quality
	}
}

// WithLogger はログ出力先を設定します。
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader は Loader を作ります。ローカルファイルは常に読めます。
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		quality: imgutil.DefaultJPEGQuality,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load は 1 つの候補を読み込みます。画像でなかった場合も ReadError を返します。
func (l *Loader) Load(ctx context.Context, c Candidate) (domain.EncodedImage, error) {
	img, err := l.load(ctx, c)
	if errors.Is(err, errNotImage) {
		return domain.EncodedImage{}, domain.NewReadError(domain.MsgReadFailed, fmt.Errorf("%s: %w", c.Name, err))
	}
	return img, err
}

func (l *Loader) load(ctx context.Context, c Candidate) (domain.EncodedImage, error) {
	data, err := l.fetch(ctx, c.URI)
	if err != nil {
		return domain.EncodedImage{}, domain.NewReadError(domain.MsgReadFailed, fmt.Errorf("%s: %w", c.URI, err))
	}
	if len(data) == 0 {
		return domain.EncodedImage{}, domain.NewReadError(domain.MsgEmptyImage, fmt.Errorf("%s", c.URI))
	}

	mediaType := imgutil.DetectMediaType(c.MediaType, c.Name, data)
	if !imgutil.IsImageMediaType(mediaType) {
		l.logger.WarnContext(ctx, "画像ではないファイルを除外しました", "name", c.Name, "media_type", mediaType)
		return domain.EncodedImage{}, errNotImage
	}

	if l.compress {
		if out, mt, ok := imgutil.CompressIfSmaller(data, l.quality); ok {
			l.logger.DebugContext(ctx, "画像を再圧縮しました", "name", c.Name, "before", len(data), "after", len(out))
			data, mediaType = out, mt
		}
	}

	return EncodeBytes(c.Name, mediaType, data)
}

func (l *Loader) fetch(ctx context.Context, uri string) ([]byte, error) {
	switch {
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		if l.http == nil {
			return nil, fmt.Errorf("HTTPクライアントが設定されていません")
		}
		safe, err := IsSafeURL(uri)
		if err != nil {
			return nil, fmt.Errorf("URLの検証に失敗しました: %w", err)
		}
		if !safe {
			return nil, fmt.Errorf("安全ではないURLが指定されました: %s", uri)
		}
		return l.http.FetchBytes(ctx, uri)

	case strings.HasPrefix(uri, "data:"):
		_, payload, err := imgutil.ParseDataURI(uri)
		if err != nil {
			return nil, err
		}
		return base64.StdEncoding.DecodeString(payload)

	case remoteio.IsRemoteURI(uri):
		if l.objects == nil {
			return nil, fmt.Errorf("リモートストレージのリーダーが設定されていません: %s", uri)
		}
		rc, err := l.objects.Open(ctx, uri)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)

	default:
		f, err := os.Open(uri)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
}

// LoadAll は候補を並行して読み込み、モードの残り枠ぶんの画像を入力順で返します。
//
// まず残り枠と同じ数だけ先頭から読み込み、中身が画像でなかったものは黙って除外して、
// 空いた枠は後続の候補で埋めます。読み込むのは枠を埋めるのに必要な候補だけです。
// どれか 1 つでも読み込みに失敗した場合は最初のエラーを返します。
func (l *Loader) LoadAll(ctx context.Context, cands []Candidate, mode domain.GenerationMode, held int) ([]domain.EncodedImage, error) {
	room := Room(mode, held)
	pending := Filter(cands)

	var images []domain.EncodedImage
	for len(images) < room && len(pending) > 0 {
		n := min(room-len(images), len(pending))
		loaded, err := l.loadBatch(ctx, pending[:n])
		if err != nil {
			return nil, err
		}
		images = append(images, loaded...)
		pending = pending[n:]
	}

	if len(images) > 0 {
		l.logger.InfoContext(ctx, "入力画像を読み込みました", "mode", mode, "requested", len(cands), "loaded", len(images))
	}
	return images, nil
}

// loadBatch は batch を並行に読み込み、画像だったものだけを入力順で返します。
func (l *Loader) loadBatch(ctx context.Context, batch []Candidate) ([]domain.EncodedImage, error) {
	results := make([]*domain.EncodedImage, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(batch))
	for i, c := range batch {
		g.Go(func() error {
			img, err := l.load(gctx, c)
			if errors.Is(err, errNotImage) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = &img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	images := make([]domain.EncodedImage, 0, len(results))
	for _, r := range results {
		if r != nil {
			images = append(images, *r)
		}
	}
	return images, nil
}
