package domain

import "fmt"

// ErrorKind はエラーの種類です。呼び出し側はこれを見て回復方法を決めます。
type ErrorKind int

const (
	// KindConfiguration は起動時の設定不備（認証情報なし等）です。致命的です。
	KindConfiguration ErrorKind = iota + 1
	// KindValidation は送信前の前提条件違反です。リクエストは送られません。
	KindValidation
	// KindRead は入力画像の読み込み失敗です。
	KindRead
	// KindTransport はリモート呼び出し自体の失敗です（通信、認証、クォータ、安全ブロック）。
	KindTransport
	// KindContent は応答は得られたが画像が含まれていなかった場合です。
	KindContent
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration error"
	case KindValidation:
		return "validation error"
	case KindRead:
		return "read error"
	case KindTransport:
		return "transport error"
	case KindContent:
		return "content error"
	default:
		return "unknown error"
	}
}

// Error はこのモジュールが返すエラーの共通型です。
// Message はローカライズのキーを兼ねる英語の定型文です。
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is は Kind のみを持つ番兵値（ErrValidation など）との比較を可能にします。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message != "" || t.Err != nil {
		return e == t
	}
	return e.Kind == t.Kind
}

// errors.Is で種類を判定するための番兵値です。
var (
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrValidation    = &Error{Kind: KindValidation}
	ErrRead          = &Error{Kind: KindRead}
	ErrTransport     = &Error{Kind: KindTransport}
	ErrContent       = &Error{Kind: KindContent}
)

// 定型メッセージ。i18n のカタログキーとしても使います。
const (
	MsgMissingCredential = "API key is not set"
	MsgImageRequired     = "at least one image required"
	MsgPromptRequired    = "prompt is required"
	MsgTooManyImages     = "too many images for this mode"
	MsgBusy              = "a generation request is already in progress"
	MsgNoImageReturned   = "no image returned"
	MsgRequestFailed     = "generation request failed"
	MsgReadFailed        = "failed to read image"
	MsgEmptyImage        = "image file is empty"
)

func NewConfigurationError(msg string) *Error {
	return &Error{Kind: KindConfiguration, Message: msg}
}

func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NewReadError(msg string, err error) *Error {
	return &Error{Kind: KindRead, Message: msg, Err: err}
}

func NewTransportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: MsgRequestFailed, Err: err}
}

func NewContentError(err error) *Error {
	return &Error{Kind: KindContent, Message: MsgNoImageReturned, Err: err}
}
