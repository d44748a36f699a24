package exchange

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quizforge/backend/internal/models"
)

// Client is the interface every provider adapter satisfies: prompt text
// and an API key in, raw response text out. The concrete wire protocol
// belongs to the adapter.
type Client interface {
	Complete(ctx context.Context, prompt string, apiKey string) (string, error)
}

// UnsupportedProviderError means no adapter is registered for the
// requested provider id.
type UnsupportedProviderError struct {
	Provider models.Provider
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported AI model: %s", e.Provider)
}

// UpstreamError wraps a transport or provider failure. The gateway
// performs no retry or backoff.
type UpstreamError struct {
	Provider models.Provider
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider %s call failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Registry resolves provider ids to client adapters.
type Registry struct {
	clients map[models.Provider]Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[models.Provider]Client)}
}

func (r *Registry) Register(id models.Provider, c Client) {
	r.clients[id] = c
}

func (r *Registry) Client(id models.Provider) (Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, &UnsupportedProviderError{Provider: id}
	}
	return c, nil
}

// DefaultRegistry returns a registry with every built-in adapter.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(models.ProviderGoogle, NewGeminiClient())
	r.Register(models.ProviderAnthropic, NewAnthropicClient())
	r.Register(models.ProviderMock, NewMockClient())
	return r
}

// Gateway translates domain requests into provider calls and provider
// text back into domain objects. It holds no state between calls; each
// call is a function of its inputs plus the supplied credential.
type Gateway struct {
	registry *Registry
}

func NewGateway(registry *Registry) *Gateway {
	return &Gateway{registry: registry}
}

func (g *Gateway) Generate(ctx context.Context, req models.GenerationRequest, cred models.ModelCredential) (models.Quiz, error) {
	client, err := g.registry.Client(cred.Provider)
	if err != nil {
		return nil, err
	}

	prompt := BuildQuizPrompt(req)
	raw, err := client.Complete(ctx, prompt, cred.APIKey)
	if err != nil {
		return nil, &UpstreamError{Provider: cred.Provider, Err: err}
	}

	return ParseQuizResponse(raw)
}

func (g *Gateway) Grade(ctx context.Context, quiz models.Quiz, cred models.ModelCredential) (*models.GradeResult, error) {
	client, err := g.registry.Client(cred.Provider)
	if err != nil {
		return nil, err
	}

	quizJSON, err := json.Marshal(quiz)
	if err != nil {
		return nil, fmt.Errorf("serialize quiz: %w", err)
	}

	prompt := BuildGradingPrompt(string(quizJSON))
	raw, err := client.Complete(ctx, prompt, cred.APIKey)
	if err != nil {
		return nil, &UpstreamError{Provider: cred.Provider, Err: err}
	}

	return ParseGradeResponse(raw)
}
