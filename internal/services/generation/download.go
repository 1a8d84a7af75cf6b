package generation

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/clients/imagegen"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

// maxImageBytes bounds a downloaded image
const maxImageBytes = 32 << 20

// imageBytes returns the image content and MIME type, downloading it when
// the provider handed back a URL
func (s *service) imageBytes(ctx context.Context, img imagegen.Image) ([]byte, string, error) {
	data := img.Data
	if len(data) == 0 {
		if img.URL == "" {
			return nil, "", errors.Internalf("image has neither data nor URL")
		}

		var err error
		data, err = s.download(ctx, img.URL)
		if err != nil {
			return nil, "", err
		}
	}

	mimeType := img.MIMEType
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		mimeType = "image/" + format
	} else if mimeType == "" {
		mimeType = http.DetectContentType(data)
		s.logger.Warn("image format not recognized", zap.String("content_type", mimeType), zap.Error(err))
	}

	return data, mimeType, nil
}

func (s *service) download(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, DownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build image download")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to download image")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Unavailablef("image download returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read image")
	}
	if len(data) > maxImageBytes {
		return nil, errors.Unavailablef("image exceeds %d bytes", maxImageBytes)
	}
	return data, nil
}
