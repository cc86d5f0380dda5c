package models

type EnlargeRequest struct {
	Algorithm   string  `json:"algorithm" form:"algorithm"`
	ScaleFactor float64 `json:"scale_factor" form:"scaleFactor"`
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

const (
	FormatPNG = "png"

	ContentTypePNG = "image/png"
)
