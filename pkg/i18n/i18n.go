// Package i18n はモードの表示ラベルとユーザー向けメッセージのローカライズを提供します。
// モードの識別子は domain パッケージが持ち、ここは表示文字列だけを扱います。
package i18n

import (
	"errors"

	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLocale は繁体字中国語です。
const DefaultLocale = "zh-TW"

// UI 文言のキーです。
const (
	KeyFailure       = "generation failed: %s"
	KeyUnknownError  = "an unknown error occurred"
	KeyGenerating    = "generating..."
	KeyGenerate      = "generate image"
	KeyUploadHint    = "up to %d images"
	KeyUploadOff     = "image upload is disabled in this mode"
	KeyFigurineLabel = "figurine generation (automatic prompt)"
	KeyPromptLabel   = "your creative prompt"
)

var supported = []language.Tag{language.TraditionalChinese, language.English}

var matcher = language.NewMatcher(supported)

var modeKeys = map[domain.GenerationMode]string{
	domain.ModeTextToImage:  "mode.text-to-image",
	domain.ModeImageToImage: "mode.image-to-image",
	domain.ModeMultiImage:   "mode.multi-image",
	domain.ModeFigurine:     "mode.figurine",
}

type entry struct {
	key string
	zh  string
	en  string
}

var entries = []entry{
	{"mode.text-to-image", "文字生成圖片", "Text to Image"},
	{"mode.image-to-image", "圖片生成圖片", "Image to Image"},
	{"mode.multi-image", "多圖參考", "Multi-Image Reference"},
	{"mode.figurine", "公仔生成", "Figurine"},

	{domain.MsgMissingCredential, "API_KEY 環境變數未設定。", domain.MsgMissingCredential},
	{domain.MsgImageRequired, "此模式請上傳至少一張圖片。", "Please upload at least one image for this mode."},
	{domain.MsgPromptRequired, "請輸入創意指令。", "Please enter a prompt."},
	{domain.MsgTooManyImages, "圖片數量超過此模式的上限。", "Too many images for this mode."},
	{domain.MsgBusy, "正在生成中，請稍候。", "A generation is already in progress."},
	{domain.MsgNoImageReturned, "API 未返回圖片。可能因安全設定而被阻擋。", "The API returned no image. It may have been blocked by safety settings."},
	{domain.MsgRequestFailed, "API 請求失敗", "The API request failed"},
	{domain.MsgReadFailed, "無法讀取圖片", "Failed to read the image"},
	{domain.MsgEmptyImage, "圖片檔案是空的", "The image file is empty"},

	{KeyFailure, "生成失敗: %s", "Generation failed: %s"},
	{KeyUnknownError, "發生未知錯誤。", "An unknown error occurred."},
	{KeyGenerating, "生成中...", "Generating..."},
	{KeyGenerate, "生成圖片", "Generate Image"},
	{KeyUploadHint, "最多 %d 張圖片", "Up to %d images"},
	{KeyUploadOff, "此模式禁用圖片上傳。", "Image upload is disabled in this mode."},
	{KeyFigurineLabel, "公仔生成 (自動指令)", "Figurine generation (automatic prompt)"},
	{KeyPromptLabel, "您的創意指令", "Your creative prompt"},
}

var (
	cat   = catalog.NewBuilder(catalog.Fallback(language.English))
	known = make(map[string]struct{}, len(entries))
)

func init() {
	for _, e := range entries {
		// SetString は文字列メッセージに対してエラーを返さない
		_ = cat.SetString(language.TraditionalChinese, e.key, e.zh)
		_ = cat.SetString(language.English, e.key, e.en)
		known[e.key] = struct{}{}
	}
}

// Localizer は 1 つのロケールに束縛された翻訳器です。
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New はロケール文字列（"zh-TW", "en-US" など）から Localizer を作ります。
// 対応外や解析できない値は最も近い対応ロケールに丸められます。
func New(locale string) *Localizer {
	if locale == "" {
		locale = DefaultLocale
	}
	tag := supported[0]
	if t, err := language.Parse(locale); err == nil {
		_, idx, _ := matcher.Match(t)
		tag = supported[idx]
	}
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Tag は解決済みの言語タグです。
func (l *Localizer) Tag() language.Tag { return l.tag }

// ModeLabel はモードの表示ラベルを返します。
func (l *Localizer) ModeLabel(m domain.GenerationMode) string {
	key, ok := modeKeys[m]
	if !ok {
		return m.String()
	}
	return l.printer.Sprintf(key)
}

// Text はカタログにある文言を引数付きで整形します。未登録のキーはそのまま返します。
func (l *Localizer) Text(key string, args ...any) string {
	if _, ok := known[key]; !ok {
		return key
	}
	return l.printer.Sprintf(key, args...)
}

// ErrorMessage はエラーを利用者向けの文言にします。
func (l *Localizer) ErrorMessage(err error) string {
	if err == nil {
		return l.Text(KeyUnknownError)
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		return err.Error()
	}
	msg := l.Text(de.Message)
	if de.Message == "" {
		msg = de.Kind.String()
	}
	if de.Err != nil {
		msg += ": " + de.Err.Error()
	}
	return msg
}

// Failure は生成失敗時のバナー文言です（例: "生成失敗: API 未返回圖片。..."）。
func (l *Localizer) Failure(err error) string {
	return l.Text(KeyFailure, l.ErrorMessage(err))
}
