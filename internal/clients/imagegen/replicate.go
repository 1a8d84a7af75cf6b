package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apperrors "github.com/KirkDiggler/vertical-mint/internal/errors"
)

const (
	DefaultReplicateBaseURL = "https://api.replicate.com"
	defaultPollInterval     = time.Second
)

// ReplicateConfig configures the Replicate predictions client
type ReplicateConfig struct {
	APIToken     string
	BaseURL      string
	DefaultModel string
	HTTPClient   *http.Client
	PollInterval time.Duration
	Logger       *zap.Logger
}

type replicate struct {
	token        string
	baseURL      string
	defaultModel string
	client       *http.Client
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewReplicate creates a Generator on the Replicate HTTP API
func NewReplicate(cfg *ReplicateConfig) (Generator, error) {
	if cfg == nil {
		return nil, apperrors.MissingParam("cfg")
	}
	if cfg.APIToken == "" {
		return nil, apperrors.MissingParam("cfg.APIToken")
	}

	r := &replicate{
		token:        cfg.APIToken,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		defaultModel: cfg.DefaultModel,
		client:       cfg.HTTPClient,
		pollInterval: cfg.PollInterval,
		logger:       cfg.Logger,
	}
	if r.baseURL == "" {
		r.baseURL = DefaultReplicateBaseURL
	}
	if r.client == nil {
		r.client = &http.Client{Timeout: 2 * time.Minute}
	}
	if r.pollInterval <= 0 {
		r.pollInterval = defaultPollInterval
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	return r, nil
}

// Generate creates a prediction, waits for it to finish and returns the
// output URLs
func (r *replicate) Generate(ctx context.Context, req *ImageRequest) ([]Image, error) {
	model := req.Model
	if model == "" {
		model = r.defaultModel
	}
	if model == "" {
		return nil, apperrors.MissingParam("model")
	}

	path, payload := r.predictionRequest(model, req)
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed on marshal prediction")
	}

	body, err := r.do(ctx, http.MethodPost, r.baseURL+path, raw)
	if err != nil {
		return nil, err
	}

	prediction := gjson.ParseBytes(body)
	for !terminal(prediction.Get("status").String()) {
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "failed on wait for prediction")
		case <-time.After(r.pollInterval):
		}

		url := prediction.Get("urls.get").String()
		if url == "" {
			url = fmt.Sprintf("%s/v1/predictions/%s", r.baseURL, prediction.Get("id").String())
		}
		body, err = r.do(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		prediction = gjson.ParseBytes(body)
	}

	id := prediction.Get("id").String()
	status := prediction.Get("status").String()
	if status != "succeeded" {
		return nil, errors.Errorf("prediction %s %s: %s", id, status, prediction.Get("error").String())
	}

	images := outputImages(prediction.Get("output"))
	if len(images) == 0 {
		return nil, errors.Errorf("prediction %s returned no images", id)
	}

	r.logger.Debug("prediction finished",
		zap.String("prediction_id", id),
		zap.String("model", model),
		zap.Float64("predict_time", prediction.Get("metrics.predict_time").Float()))

	return images, nil
}

// predictionRequest targets a version when the model carries one
// (owner/name:version) and the model endpoint otherwise
func (r *replicate) predictionRequest(model string, req *ImageRequest) (string, map[string]any) {
	width, height := dimensions(req)
	input := map[string]any{
		"prompt":          req.Prompt,
		"negative_prompt": req.NegativePrompt,
		"width":           width,
		"height":          height,
		"num_outputs":     1,
		"guidance_scale":  req.Guidance,
	}
	if req.Steps > 0 {
		input["num_inference_steps"] = req.Steps
	}
	if req.Scheduler != "" {
		input["scheduler"] = req.Scheduler
	}
	if req.Seed != 0 {
		input["seed"] = req.Seed
	}

	if name, version, ok := strings.Cut(model, ":"); ok {
		r.logger.Debug("creating prediction", zap.String("model", name), zap.String("version", version))
		return "/v1/predictions", map[string]any{"version": version, "input": input}
	}
	return fmt.Sprintf("/v1/models/%s/predictions", model), map[string]any{"input": input}
}

func (r *replicate) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed on build replicate request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.token)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Prefer", "wait")
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "failed on call replicate")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed on read replicate response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		detail := gjson.GetBytes(body, "detail").String()
		if detail == "" {
			detail = strings.TrimSpace(string(body))
		}
		return nil, errors.Errorf("replicate returned %d: %s", resp.StatusCode, detail)
	}

	return body, nil
}

func terminal(status string) bool {
	switch status {
	case "succeeded", "failed", "canceled":
		return true
	default:
		return false
	}
}

// outputImages accepts a single URL or a list of URLs
func outputImages(output gjson.Result) []Image {
	var images []Image
	if output.IsArray() {
		output.ForEach(func(_, value gjson.Result) bool {
			if url := value.String(); url != "" {
				images = append(images, Image{URL: url})
			}
			return true
		})
		return images
	}

	if url := output.String(); url != "" {
		images = append(images, Image{URL: url})
	}
	return images
}
