package models

type Slide struct {
	Image   string `json:"image"`
	Caption string `json:"caption,omitempty"`
}
