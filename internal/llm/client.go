package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"interview-questions-go/internal/config"
	"interview-questions-go/internal/logger"
)

// Generator produces raw model output for a prompt. Satisfied by Client;
// faked in pipeline tests.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client talks to a local Ollama-style endpoint. All calls are
// synchronous; the service is a shared single-concurrency resource, so
// callers issue one request at a time.
type Client struct {
	url         string
	model       string
	timeout     time.Duration
	maxAttempts int
	baseDelay   time.Duration
	http        *http.Client
	log         *logger.Logger
}

// NewClient builds a Client from config. The retry policy (attempts, base
// delay, per-call timeout) is fixed here rather than scattered through
// call sites.
func NewClient(cfg config.OllamaConfig, log *logger.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	return &Client{
		url:         cfg.URL,
		model:       cfg.Model,
		timeout:     timeout,
		maxAttempts: cfg.MaxAttempts,
		baseDelay:   time.Duration(cfg.BaseDelayMs) * time.Millisecond,
		http:        &http.Client{Timeout: timeout},
		log:         log,
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate sends the prompt and returns the raw reply text. Connection
// failures, timeouts and 5xx responses are retried with exponential
// backoff up to the configured attempt count; 4xx responses are not
// retried. Temperature is pinned to 0 to keep replies reproducible.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	log := c.log.WithField("component", "llm")

	body, _ := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": 0.0,
		},
	})

	var out string
	var lastErr error

	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.url+"/api/generate", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("llm request failed, will retry")
			return err
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("llm server error %d: %s", resp.StatusCode, respBody)
			log.WithField("status", resp.StatusCode).Warn("llm server error, will retry")
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("llm client error %d: %s", resp.StatusCode, respBody)
			return backoff.Permanent(lastErr)
		}

		var parsed generateResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			lastErr = fmt.Errorf("decode llm response: %w", err)
			return lastErr
		}

		out = parsed.Response
		lastErr = nil
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.baseDelay
	policy := backoff.WithMaxRetries(b, uint64(c.maxAttempts-1))

	if err := backoff.Retry(op, backoff.WithContext(policy, ctx)); err != nil {
		return "", fmt.Errorf("llm generate failed after %d attempts: %w", c.maxAttempts, lastErr)
	}
	return out, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// CheckModel verifies the service is reachable and the configured model
// is present, pulling it when missing. An unreachable service is a fatal
// startup condition for the whole run.
func (c *Client) CheckModel(ctx context.Context) error {
	log := c.log.WithField("component", "llm").WithField("model", c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ollama unreachable at %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama list models: status %d: %s", resp.StatusCode, respBody)
	}

	var tags tagsResponse
	if err := json.Unmarshal(respBody, &tags); err != nil {
		return fmt.Errorf("decode model list: %w", err)
	}

	for _, m := range tags.Models {
		if m.Name == c.model {
			log.Info("model is available")
			return nil
		}
	}

	log.Info("model not found locally, pulling")
	return c.pullModel(ctx)
}

func (c *Client) pullModel(ctx context.Context) error {
	body, _ := json.Marshal(map[string]any{"name": c.model, "stream": false})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// model downloads can far exceed the per-generation timeout
	pullClient := &http.Client{}
	resp, err := pullClient.Do(req)
	if err != nil {
		return fmt.Errorf("pull model %s: %w", c.model, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pull model %s: status %d: %s", c.model, resp.StatusCode, respBody)
	}

	c.log.WithField("component", "llm").WithField("model", c.model).Info("model pulled successfully")
	return nil
}
