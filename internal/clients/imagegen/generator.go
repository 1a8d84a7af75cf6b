// Package imagegen talks to text-to-image providers.
package imagegen

//go:generate mockgen -destination=mock/mock_generator.go -package=mockimagegen -source=generator.go

import (
	"context"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 1024
)

// ImageRequest is one prompt pair plus sampler settings.
// Zero values fall back to provider defaults.
type ImageRequest struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Model          string  `json:"model,omitempty"`
	Steps          int     `json:"steps,omitempty"`
	Guidance       float64 `json:"guidance,omitempty"`
	Scheduler      string  `json:"scheduler,omitempty"`
	Seed           int64   `json:"seed,omitempty"`
}

// Image is either a URL to fetch or inline bytes
type Image struct {
	URL      string
	Data     []byte
	MIMEType string
}

// Generator produces images for a prompt. Every failure is returned as an
// error; callers decide whether to retry.
type Generator interface {
	Generate(ctx context.Context, req *ImageRequest) ([]Image, error)
}

func dimensions(req *ImageRequest) (int, int) {
	w, h := req.Width, req.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}
