package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

type EmbeddingClientInterface interface {
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

type OpenAIEmbeddingClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIEmbeddingClient(apiKey, model string) *OpenAIEmbeddingClient {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIEmbeddingClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("openai embedding: empty response")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

// GeminiEmbeddingClient implements EmbeddingClientInterface using Google's Gemini models
type GeminiEmbeddingClient struct {
	client *genai.Client
	model  string
}

func NewGeminiEmbeddingClient(ctx context.Context, apiKey, model string) (*GeminiEmbeddingClient, error) {
	if model == "" {
		model = "text-embedding-004"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbeddingClient{client: client, model: model}, nil
}

func (c *GeminiEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	res, err := c.client.EmbeddingModel(c.model).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("gemini embedding: %w", err)
	}
	if res == nil || res.Embedding == nil {
		return pgvector.Vector{}, fmt.Errorf("gemini embedding: empty response")
	}
	return pgvector.NewVector(res.Embedding.Values), nil
}

func (c *GeminiEmbeddingClient) Close() error {
	return c.client.Close()
}

// NewEmbeddingClient returns nil, nil when provider is "none" or empty.
func NewEmbeddingClient(ctx context.Context, provider, apiKey, model string) (EmbeddingClientInterface, error) {
	switch strings.ToLower(provider) {
	case "", "none":
		return nil, nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using OpenAI provider")
		}
		return NewOpenAIEmbeddingClient(apiKey, model), nil
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using Gemini provider")
		}
		client, err := NewGeminiEmbeddingClient(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s. Use 'openai' or 'gemini'", provider)
	}
}
