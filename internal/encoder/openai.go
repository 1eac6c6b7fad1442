package encoder

import (
	"context"
	"fmt"
	"math"
	"time"

	"quicksync/internal/config"

	"github.com/sashabaranov/go-openai"
)

const defaultEmbeddingModel = "text-embedding-3-small"

// OpenAIEncoder encodes text through the OpenAI embeddings API (or
// any compatible endpoint via base URL override).
type OpenAIEncoder struct {
	client     *openai.Client
	model      string
	maxRetries int
	timeout    time.Duration
}

func NewOpenAIEncoder(cfg config.EncoderConfig) *OpenAIEncoder {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.EmbeddingModel
	if model == "" {
		model = defaultEmbeddingModel
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIEncoder{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      model,
		maxRetries: maxRetries,
		timeout:    timeout,
	}
}

// Encode sends all texts in a single request. A failure yields no
// vectors at all; callers rely on that for all-or-nothing writes.
func (e *OpenAIEncoder) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	var resp openai.EmbeddingResponse
	err := e.doWithRetry(ctx, func(callCtx context.Context) error {
		var callErr error
		resp, callErr = e.client.CreateEmbeddings(callCtx, openai.EmbeddingRequest{
			Input: texts,
			Model: openai.EmbeddingModel(e.model),
		})
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("encode texts: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("encode texts: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	out := make([][]float64, len(resp.Data))
	for i, d := range resp.Data {
		vec := make([]float64, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float64(v)
		}
		out[i] = vec
	}
	return out, nil
}

func (e *OpenAIEncoder) doWithRetry(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < e.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		lastErr = fn(callCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}
