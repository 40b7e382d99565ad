package generator

const (
	// DefaultModel は画像と文章を同時に返せる Gemini の画像モデルです。
	DefaultModel = "gemini-2.5-flash-image-preview"

	ModalityImage = "IMAGE"
	ModalityText  = "TEXT"
)
