package llm

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"
)

const defaultModel = "claude-sonnet-4-5-20250929"

// ClientConfig holds configuration for the completion client
type ClientConfig struct {
	APIKey    string
	Model     string
	Timeout   time.Duration
	MaxTokens int64
}

// Client wraps the Anthropic completion service behind a budget gate and
// rate pacing. Every failure mode collapses into an empty-string return;
// callers fall back to local heuristics on "".
type Client struct {
	anthropic anthropic.Client
	model     string
	timeout   time.Duration
	maxTokens int64
	budget    *Budget
	limiter   *rate.Limiter
	enabled   bool
}

// NewClient creates a completion client. An empty API key produces a
// disabled client whose CanCall is always false (local-only mode).
func NewClient(cfg ClientConfig, budget *Budget, opts ...option.RequestOption) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	c := &Client{
		model:     model,
		timeout:   timeout,
		maxTokens: maxTokens,
		budget:    budget,
		// One call every 2s with a small burst keeps iterative refinement
		// from hammering the API.
		limiter: rate.NewLimiter(rate.Limit(0.5), 3),
	}

	if cfg.APIKey != "" {
		c.anthropic = anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)...)
		c.enabled = true
	}

	return c
}

// CanCall reports whether a remote call is currently permitted
func (c *Client) CanCall() bool {
	return c.enabled && c.budget.Allow()
}

// Complete sends a prompt to the completion service and returns the raw
// response text. Returns "" on any failure: disabled client, exhausted
// budget, transport error, timeout, or a response with no text content.
// A budget slot is reserved before the call and released again on every
// failure path, so only successful calls stay counted.
func (c *Client) Complete(ctx context.Context, prompt string) string {
	if !c.enabled {
		return ""
	}
	if !c.budget.TryAcquire() {
		log.Printf("[LLM] daily budget exhausted (%d calls), falling back to local", c.budget.Used())
		return ""
	}

	if err := c.limiter.Wait(ctx); err != nil {
		log.Printf("[LLM] rate limiter wait: %v", err)
		c.budget.Release()
		return ""
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	message, err := c.anthropic.Messages.New(callCtx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		log.Printf("[LLM] completion error: %v", err)
		c.budget.Release()
		return ""
	}

	for _, block := range message.Content {
		if block.Type == "text" && block.Text != "" {
			log.Printf("[LLM] completion ok model=%s size=%d used=%d/%d",
				c.model, len(block.Text), c.budget.Used(), c.budget.Used()+c.budget.Remaining())
			return block.Text
		}
	}

	log.Printf("[LLM] no text content in response")
	c.budget.Release()
	return ""
}

// CleanJSONEnvelope strips optional fenced code-block markers and
// surrounding whitespace so the remainder can be parsed as JSON. Models
// are instructed to return raw JSON, but the contract is not enforced.
func CleanJSONEnvelope(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
