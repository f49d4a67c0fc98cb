package embedding

import (
	"context"
	"errors"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

var errProviderUnavailable = errors.New("embedding provider unavailable")

// OpenAIProvider generates embeddings through any OpenAI-compatible API,
// including locally hosted sentence-embedding servers when a base URL is set.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string

	mu          sync.Mutex
	client      *openai.Client
	unavailable bool
}

func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

// ensureClient initializes the API client on first use. A missing API key is
// cached as unavailable instead of being rechecked on every call.
func (p *OpenAIProvider) ensureClient() (*openai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.unavailable {
		return nil, errProviderUnavailable
	}
	if p.client != nil {
		return p.client, nil
	}
	if p.apiKey == "" {
		p.unavailable = true
		return nil, errProviderUnavailable
	}

	cfg := openai.DefaultConfig(p.apiKey)
	if p.baseURL != "" {
		cfg.BaseURL = p.baseURL
	}
	p.client = openai.NewClientWithConfig(cfg)
	return p.client, nil
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	client, err := p.ensureClient()
	if err != nil {
		return nil, err
	}

	resp, err := client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.model),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("empty embedding response")
	}

	embedding := make([]float32, len(resp.Data[0].Embedding))
	copy(embedding, resp.Data[0].Embedding)
	return embedding, nil
}
