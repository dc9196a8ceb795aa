// Package gemini implements the model gateway against the Gemini
// generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/domain"
)

// Config carries the gateway settings, all sourced from the environment.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
	Timeout         time.Duration
}

// Client implements ports.TextGenerator. One attempt per call, no retries:
// a transport failure propagates immediately.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *slog.Logger
}

// NewClient builds a gateway client. A nil httpClient gets a default one
// with the configured timeout.
func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		logger:     logger,
	}
}

// Wire structs mirror the generateContent API shapes.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Every harm category is set to BLOCK_NONE: descriptions of strained joints
// and failing form trip safety filters often enough that a blocked reply
// would be the common case, not the exception.
var permissiveSafety = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

// Generate sends the prompt to the configured model and returns its text
// output, trimmed.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     c.cfg.Temperature,
			TopP:            c.cfg.TopP,
			TopK:            c.cfg.TopK,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
		SafetySettings: permissiveSafety,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model, c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.DebugContext(ctx, "calling model gateway", "model", c.cfg.Model, "prompt_len", len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: http call: %w", domain.ErrUpstreamModel, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", domain.ErrUpstreamModel, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError(resp.StatusCode, respBody)
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrUpstreamModel, err)
	}

	if genResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", domain.ErrUpstreamModel, genResp.PromptFeedback.BlockReason)
	}
	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", domain.ErrUpstreamModel)
	}

	var text strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: empty candidate text", domain.ErrUpstreamModel)
	}

	return strings.TrimSpace(text.String()), nil
}

func (c *Client) statusError(status int, body []byte) error {
	message := strings.TrimSpace(string(body))

	var errResp generateResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil {
		message = errResp.Error.Message
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w: status %d: %s", domain.ErrModelAuth, status, message)
	}
	return fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamModel, status, message)
}
