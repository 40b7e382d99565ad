// Package controller は生成画面の状態（モード、プロンプト、入力画像、結果）を保持し、
// 送信の可否判定からリクエスト組み立て、生成呼び出し、結果反映までを受け持ちます。
//
// 同時に走る生成は 1 つだけです。これはロックを握り続けるのではなく、
// Loading 中の送信を拒否することで保証します。リモート呼び出しはロックの外で行います。
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"github.com/shouni/gemini-fusion-studio/pkg/generator"
	"github.com/shouni/gemini-fusion-studio/pkg/i18n"
	"github.com/shouni/gemini-fusion-studio/pkg/imgutil"
	"google.golang.org/genai"
)

// State は画面の状態です。
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	// ErrBusy は生成中に送信やモード変更をしようとしたときに返ります。
	ErrBusy = domain.NewValidationError(domain.MsgBusy)
	// ErrStale は完了した生成が最新の送信ではなかったため捨てられたことを示します。
	ErrStale = errors.New("stale generation result discarded")
)

// BuildFunc はパーツ列の組み立て関数です。既定は generator.BuildParts です。
type BuildFunc func(mode domain.GenerationMode, prompt string, images []domain.EncodedImage) ([]*genai.Part, error)

// Snapshot は Controller の状態のコピーです。
type Snapshot struct {
	Mode       domain.GenerationMode
	Prompt     string
	Images     []domain.EncodedImage
	State      State
	Result     *domain.GenerationResult
	Error      string // 生成失敗のバナー文言
	Validation string // 送信前チェックで弾いたときのインライン文言
	RequestID  string
	Sequence   uint64
}

// Controller は生成画面の状態機械です。複数のゴルーチンから安全に呼べます。
type Controller struct {
	gen    generator.ImageGenerator
	build  BuildFunc
	loc    *i18n.Localizer
	logger *slog.Logger
	newID  func() string

	mu         sync.Mutex
	mode       domain.GenerationMode
	prompt     string
	images     []domain.EncodedImage
	state      State
	result     *domain.GenerationResult
	errMsg     string
	validation string
	requestID  string
	seq        uint64
}

// Option は Controller の設定を変更します。
type Option func(*Controller)

func WithLocalizer(loc *i18n.Localizer) Option {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithBuilder(build BuildFunc) Option {
	return func(c *Controller) {
		if build != nil {
			c.build = build
		}
	}
}

// WithMode は初期モードを設定します。既定はテキストから画像です。
func WithMode(m domain.GenerationMode) Option {
	return func(c *Controller) {
		if m.Valid() {
			c.mode = m
		}
	}
}

// New は Controller を初期化します。
func New(gen generator.ImageGenerator, opts ...Option) (*Controller, error) {
	if gen == nil {
		return nil, fmt.Errorf("gen (ImageGenerator) is required")
	}
	c := &Controller{
		gen:    gen,
		build:  generator.BuildParts,
		loc:    i18n.New(i18n.DefaultLocale),
		logger: slog.Default(),
		newID:  uuid.NewString,
		mode:   domain.ModeTextToImage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Snapshot は現在の状態のコピーを返します。
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Mode:       c.mode,
		Prompt:     c.prompt,
		Images:     append([]domain.EncodedImage(nil), c.images...),
		State:      c.state,
		Result:     c.result,
		Error:      c.errMsg,
		Validation: c.validation,
		RequestID:  c.requestID,
		Sequence:   c.seq,
	}
}

// SetMode はモードを切り替えます。入力画像は破棄し、プロンプトは残します。
// 生成中は ErrBusy です。
func (c *Controller) SetMode(m domain.GenerationMode) error {
	if !m.Valid() {
		return domain.NewValidationError(fmt.Sprintf("unknown generation mode: %q", m))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLoading {
		return ErrBusy
	}
	if m != c.mode {
		c.mode = m
		c.images = nil
	}
	c.validation = ""
	return nil
}

// SetPrompt は自由記述のプロンプトを設定します。生成中は入力欄と同じく変更できません。
func (c *Controller) SetPrompt(p string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLoading {
		return ErrBusy
	}
	c.prompt = p
	c.validation = ""
	return nil
}

// AddImages は画像を追加します。画像以外の media type は黙って捨て、
// モードの上限を超えた分も黙って捨てます。追加できた枚数を返します。
func (c *Controller) AddImages(imgs ...domain.EncodedImage) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	added := 0
	for _, img := range imgs {
		if len(c.images) >= c.mode.MaxImages() {
			break
		}
		if !imgutil.IsImageMediaType(img.MediaType) {
			continue
		}
		c.images = append(c.images, img)
		added++
	}
	if added > 0 {
		c.validation = ""
	}
	return added
}

// RemoveImage は i 番目の画像を取り除きます。
func (c *Controller) RemoveImage(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.images) {
		return domain.NewValidationError(fmt.Sprintf("image index %d out of range", i))
	}
	c.images = append(c.images[:i:i], c.images[i+1:]...)
	return nil
}

// CanSubmit は生成ボタンが押せる状態かどうかを返します。
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkLocked() == nil
}

func (c *Controller) checkLocked() error {
	if c.state == StateLoading {
		return ErrBusy
	}
	if c.mode.RequiresImages() && len(c.images) == 0 {
		return domain.NewValidationError(domain.MsgImageRequired)
	}
	if c.mode.RequiresPrompt() && strings.TrimSpace(c.prompt) == "" {
		return domain.NewValidationError(domain.MsgPromptRequired)
	}
	return nil
}

// Discard は進行中の生成を無効にして Idle に戻します（画面から離れた場合など）。
// モード、プロンプト、入力画像は保持します。進行中の生成の結果は届いても捨てられます。
func (c *Controller) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.state = StateIdle
	c.result = nil
	c.errMsg = ""
	c.validation = ""
	c.requestID = ""
}

// Submit は現在の入力で生成を 1 回実行し、完了まで待ちます。
//
// 送信前チェックに落ちた場合は状態を変えずにインライン文言だけを設定し、ValidationError を返します。
// 通過すると Loading に入り、前回の結果とエラーを消してから組み立てと生成を行います。
// 完了時にこの送信が最新でなければ結果は捨てられ、ErrStale が返ります。
func (c *Controller) Submit(ctx context.Context) (*domain.GenerationResult, error) {
	c.mu.Lock()
	if err := c.checkLocked(); err != nil {
		c.validation = c.loc.ErrorMessage(err)
		c.mu.Unlock()
		return nil, err
	}
	c.seq++
	seq := c.seq
	c.state = StateLoading
	c.result = nil
	c.errMsg = ""
	c.validation = ""
	c.requestID = c.newID()
	mode, prompt, reqID := c.mode, c.prompt, c.requestID
	images := append([]domain.EncodedImage(nil), c.images...)
	c.mu.Unlock()

	logger := c.logger.With("request_id", reqID, "seq", seq, "mode", mode)
	logger.InfoContext(ctx, "生成リクエストを開始します", "images", len(images))

	result, err := c.run(ctx, mode, prompt, images)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		logger.DebugContext(ctx, "古い生成結果を破棄しました", "latest_seq", c.seq)
		return nil, ErrStale
	}
	if err != nil {
		c.state = StateFailed
		c.errMsg = c.loc.Failure(err)
		logger.ErrorContext(ctx, "生成に失敗しました", "error", err)
		return nil, err
	}
	c.state = StateSucceeded
	c.result = result
	logger.InfoContext(ctx, "生成が完了しました", "has_text", result.HasText())
	return result, nil
}

func (c *Controller) run(ctx context.Context, mode domain.GenerationMode, prompt string, images []domain.EncodedImage) (*domain.GenerationResult, error) {
	parts, err := c.build(mode, prompt, images)
	if err != nil {
		return nil, fmt.Errorf("リクエストの組み立てに失敗しました: %w", err)
	}
	return c.gen.Generate(ctx, parts)
}
