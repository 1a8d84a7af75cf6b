package imagegen

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	apperrors "github.com/KirkDiggler/vertical-mint/internal/errors"
)

const testModel = "bytedance/sdxl-lightning-4step:5599ed30703defd1d160a25a63321b4dec97101d98b4674bcc56e41f62f35637"

type ReplicateTestSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	gen     Generator
}

func (s *ReplicateTestSuite) SetupTest() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))

	var err error
	s.gen, err = NewReplicate(&ReplicateConfig{
		APIToken:     "r8_test",
		BaseURL:      s.server.URL,
		DefaultModel: testModel,
		PollInterval: time.Millisecond,
	})
	s.Require().NoError(err)
}

func (s *ReplicateTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ReplicateTestSuite) TestGenerate_SyncSuccess() {
	var got map[string]any
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/v1/predictions", r.URL.Path)
		s.Equal("Bearer r8_test", r.Header.Get("Authorization"))
		s.Equal("wait", r.Header.Get("Prefer"))

		body, _ := io.ReadAll(r.Body)
		s.Require().NoError(json.Unmarshal(body, &got))

		_, _ = io.WriteString(w, `{"id":"p1","status":"succeeded","output":["https://cdn.example/out-0.png"]}`)
	}

	images, err := s.gen.Generate(context.Background(), &ImageRequest{
		Prompt:         "a mascot",
		NegativePrompt: "blurry",
		Steps:          4,
		Scheduler:      "DPM++ 2M SDE Karras",
		Seed:           1234,
	})
	s.Require().NoError(err)
	s.Equal([]Image{{URL: "https://cdn.example/out-0.png"}}, images)

	s.Equal("5599ed30703defd1d160a25a63321b4dec97101d98b4674bcc56e41f62f35637", got["version"])
	input := got["input"].(map[string]any)
	s.Equal("a mascot", input["prompt"])
	s.Equal("blurry", input["negative_prompt"])
	s.EqualValues(1024, input["width"])
	s.EqualValues(1024, input["height"])
	s.EqualValues(4, input["num_inference_steps"])
	s.EqualValues(0, input["guidance_scale"])
	s.EqualValues(1234, input["seed"])
	s.Equal("DPM++ 2M SDE Karras", input["scheduler"])
}

func (s *ReplicateTestSuite) TestGenerate_PollsUntilDone() {
	var polls int32
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			_, _ = io.WriteString(w, `{"id":"p2","status":"starting","urls":{"get":"`+s.server.URL+`/v1/predictions/p2"}}`)
		case http.MethodGet:
			s.Equal("/v1/predictions/p2", r.URL.Path)
			if atomic.AddInt32(&polls, 1) < 2 {
				_, _ = io.WriteString(w, `{"id":"p2","status":"processing"}`)
				return
			}
			_, _ = io.WriteString(w, `{"id":"p2","status":"succeeded","output":"https://cdn.example/single.png"}`)
		}
	}

	images, err := s.gen.Generate(context.Background(), &ImageRequest{Prompt: "p"})
	s.Require().NoError(err)
	s.Equal("https://cdn.example/single.png", images[0].URL)
	s.EqualValues(2, atomic.LoadInt32(&polls))
}

func (s *ReplicateTestSuite) TestGenerate_ModelWithoutVersion() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/v1/models/black-forest-labs/flux-schnell/predictions", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":"p3","status":"succeeded","output":["https://cdn.example/flux.png"]}`)
	}

	images, err := s.gen.Generate(context.Background(), &ImageRequest{Prompt: "p", Model: "black-forest-labs/flux-schnell"})
	s.Require().NoError(err)
	s.Len(images, 1)
}

func (s *ReplicateTestSuite) TestGenerate_PredictionFailed() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"p4","status":"failed","error":"NSFW content detected"}`)
	}

	_, err := s.gen.Generate(context.Background(), &ImageRequest{Prompt: "p"})
	s.Require().Error(err)
	s.Contains(err.Error(), "NSFW content detected")
	s.Contains(err.Error(), "p4 failed")
}

func (s *ReplicateTestSuite) TestGenerate_HTTPError() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Invalid token."}`)
	}

	_, err := s.gen.Generate(context.Background(), &ImageRequest{Prompt: "p"})
	s.Require().Error(err)
	s.Equal("replicate returned 401: Invalid token.", err.Error())
}

func (s *ReplicateTestSuite) TestGenerate_NoOutput() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"p5","status":"succeeded","output":[]}`)
	}

	_, err := s.gen.Generate(context.Background(), &ImageRequest{Prompt: "p"})
	s.Require().Error(err)
	s.Contains(err.Error(), "no images")
}

func (s *ReplicateTestSuite) TestGenerate_ContextCanceledWhilePolling() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"p6","status":"processing"}`)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.gen.Generate(ctx, &ImageRequest{Prompt: "p"})
	s.Require().Error(err)
}

func TestReplicateTestSuite(t *testing.T) {
	suite.Run(t, new(ReplicateTestSuite))
}

func TestNewReplicate_MissingToken(t *testing.T) {
	_, err := NewReplicate(&ReplicateConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingParam)

	_, err = NewReplicate(nil)
	assert.ErrorIs(t, err, apperrors.ErrMissingParam)
}

func TestNewReplicate_MissingModel(t *testing.T) {
	gen, err := NewReplicate(&ReplicateConfig{APIToken: "t"})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), &ImageRequest{Prompt: "p"})
	assert.ErrorIs(t, err, apperrors.ErrMissingParam)
}
