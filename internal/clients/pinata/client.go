// Package pinata pins files and folders to IPFS through the Pinata API.
package pinata

//go:generate mockgen -destination=mock/mock_client.go -package=mockpinata -source=client.go

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	apperrors "github.com/KirkDiggler/vertical-mint/internal/errors"
)

const (
	DefaultBaseURL = "https://api.pinata.cloud"
	pinFilePath    = "/pinning/pinFileToIPFS"
)

// File is one named blob to pin
type File struct {
	Name string
	Data []byte
}

// PinResult is what Pinata reports for a pin
type PinResult struct {
	CID       string `json:"IpfsHash"`
	Size      int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// URI is the ipfs:// form of the pinned content
func (r *PinResult) URI() string {
	return "ipfs://" + r.CID
}

// Client pins content. PinDirectory returns the CID of the folder so files
// resolve as ipfs://<cid>/<name>.
type Client interface {
	PinFile(ctx context.Context, file *File) (*PinResult, error)
	PinDirectory(ctx context.Context, dir string, files []*File) (*PinResult, error)
}

// Config holds Pinata credentials. Either JWT or the key/secret pair must be set.
type Config struct {
	APIKey     string
	Secret     string
	JWT        string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type client struct {
	apiKey  string
	secret  string
	jwt     string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a Pinata client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, apperrors.MissingParam("cfg")
	}
	if cfg.JWT == "" {
		if cfg.APIKey == "" {
			return nil, apperrors.MissingParam("cfg.APIKey")
		}
		if cfg.Secret == "" {
			return nil, apperrors.MissingParam("cfg.Secret")
		}
	}

	c := &client{
		apiKey:  cfg.APIKey,
		secret:  cfg.Secret,
		jwt:     cfg.JWT,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    cfg.HTTPClient,
		logger:  cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: time.Minute}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	return c, nil
}

func (c *client) PinFile(ctx context.Context, file *File) (*PinResult, error) {
	if file == nil || file.Name == "" {
		return nil, apperrors.MissingParam("file.Name")
	}

	return c.pin(ctx, file.Name, []*File{file}, func(f *File) string {
		return f.Name
	})
}

func (c *client) PinDirectory(ctx context.Context, dir string, files []*File) (*PinResult, error) {
	if dir == "" {
		return nil, apperrors.MissingParam("dir")
	}
	if len(files) == 0 {
		return nil, apperrors.MissingParam("files")
	}

	return c.pin(ctx, dir, files, func(f *File) string {
		return dir + "/" + f.Name
	})
}

func (c *client) pin(ctx context.Context, name string, files []*File, partName func(*File) string) (*PinResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, f := range files {
		part, err := writer.CreateFormFile("file", partName(f))
		if err != nil {
			return nil, errors.Wrap(err, "failed on create form file")
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, errors.Wrap(err, "failed on write form file")
		}
	}

	if err := writeJSONField(writer, "pinataOptions", map[string]any{"cidVersion": 1}); err != nil {
		return nil, err
	}
	if err := writeJSONField(writer, "pinataMetadata", map[string]any{"name": name}); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed on close multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pinFilePath, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed on build pin request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed on call pinata")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed on read pinata response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("pinata returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	result := &PinResult{}
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, errors.Wrap(err, "failed on decode pinata response")
	}
	if result.CID == "" {
		return nil, errors.Errorf("pinata response for %s has no IpfsHash", name)
	}

	c.logger.Debug("pinned",
		zap.String("name", name),
		zap.Int("files", len(files)),
		zap.String("cid", result.CID))

	return result, nil
}

func (c *client) authorize(req *http.Request) {
	if c.jwt != "" {
		req.Header.Set("Authorization", "Bearer "+c.jwt)
		return
	}
	req.Header.Set("pinata_api_key", c.apiKey)
	req.Header.Set("pinata_secret_api_key", c.secret)
}

func writeJSONField(writer *multipart.Writer, field string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed on marshal %s", field)
	}
	if err := writer.WriteField(field, string(raw)); err != nil {
		return errors.Wrapf(err, "failed on write %s", field)
	}
	return nil
}
