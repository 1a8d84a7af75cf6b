package imagegen

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/genai"

	apperrors "github.com/KirkDiggler/vertical-mint/internal/errors"
)

const DefaultImagenModel = "imagen-3.0-generate-002"

// imageModels is the slice of *genai.Models the client uses
type imageModels interface {
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// GenAIConfig configures the Gemini API image client
type GenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type genAI struct {
	models imageModels
	model  string
	logger *zap.Logger
}

// NewGenAI creates a Generator backed by Imagen through the Gemini API
func NewGenAI(ctx context.Context, cfg *GenAIConfig) (Generator, error) {
	if cfg == nil {
		return nil, apperrors.MissingParam("cfg")
	}
	if cfg.APIKey == "" {
		return nil, apperrors.MissingParam("cfg.APIKey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed on create genai client")
	}

	return newGenAI(client.Models, cfg.Model, cfg.Logger), nil
}

func newGenAI(models imageModels, model string, logger *zap.Logger) *genAI {
	if model == "" {
		model = DefaultImagenModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &genAI{models: models, model: model, logger: logger}
}

// Generate asks Imagen for a single square PNG. Request.Model is ignored
// unless it names an Imagen model, since art periods carry Replicate ids.
func (g *genAI) Generate(ctx context.Context, req *ImageRequest) ([]Image, error) {
	config := &genai.GenerateImagesConfig{
		NegativePrompt:   req.NegativePrompt,
		NumberOfImages:   1,
		AspectRatio:      aspectRatio(req),
		OutputMIMEType:   "image/png",
		IncludeRAIReason: true,
	}
	if req.Guidance > 0 {
		guidance := float32(req.Guidance)
		config.GuidanceScale = &guidance
	}
	if req.Seed != 0 {
		seed := int32(req.Seed % (1 << 31))
		config.Seed = &seed
	}

	resp, err := g.models.GenerateImages(ctx, g.modelFor(req), req.Prompt, config)
	if err != nil {
		return nil, errors.Wrap(err, "failed on generate images")
	}

	return convertImages(resp)
}

func (g *genAI) modelFor(req *ImageRequest) string {
	if strings.HasPrefix(req.Model, "imagen-") {
		return req.Model
	}
	return g.model
}

// convertImages keeps inline image bytes only. Cloud Storage outputs are
// skipped since the pipeline downloads over HTTP.
func convertImages(resp *genai.GenerateImagesResponse) ([]Image, error) {
	if resp == nil {
		return nil, errors.New("genai returned no response")
	}

	var (
		images   []Image
		filtered string
	)
	for _, generated := range resp.GeneratedImages {
		if generated == nil {
			continue
		}
		if generated.RAIFilteredReason != "" {
			filtered = generated.RAIFilteredReason
		}
		if generated.Image == nil {
			continue
		}
		if len(generated.Image.ImageBytes) > 0 {
			images = append(images, Image{Data: generated.Image.ImageBytes, MIMEType: generated.Image.MIMEType})
		}
	}

	if len(images) == 0 {
		if filtered != "" {
			return nil, errors.Errorf("image filtered by safety checks: %s", filtered)
		}
		return nil, errors.New("genai returned no images")
	}
	return images, nil
}

func aspectRatio(req *ImageRequest) string {
	w, h := dimensions(req)
	switch {
	case w == h:
		return "1:1"
	case w*4 == h*3:
		return "3:4"
	case w*3 == h*4:
		return "4:3"
	case w*16 == h*9:
		return "9:16"
	case w*9 == h*16:
		return "16:9"
	default:
		return "1:1"
	}
}
