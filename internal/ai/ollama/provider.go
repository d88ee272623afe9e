// Package ollama implements models.TextProvider against a local Ollama
// server, for fully on-prem deployments.
package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mwhitfield/lendintake/internal/config"
	"github.com/mwhitfield/lendintake/pkg/models"
)

// Provider implements models.TextProvider using Ollama's /api/chat endpoint.
type Provider struct {
	cfg    config.OllamaConfig
	client *http.Client
}

func NewProvider(cfg config.OllamaConfig) *Provider {
	return &Provider{
		cfg:    cfg,
		client: &http.Client{},
	}
}

func (p *Provider) Name() string { return "ollama" }

type chatMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Format   string         `json:"format,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Error string `json:"error"`
}

func (p *Provider) Generate(ctx context.Context, req models.GenerateRequest) (string, error) {
	messages := []chatMessage{}
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.User})

	body := chatRequest{
		Model:    p.cfg.Model,
		Messages: messages,
		Options:  map[string]any{"temperature": req.Temperature},
	}
	if req.JSONMode {
		body.Format = "json"
	}
	if req.MaxTokens > 0 {
		body.Options["num_predict"] = req.MaxTokens
	}

	return p.chat(ctx, body)
}

// Describe sends binary content as a base64 image alongside the extraction
// prompt. Ollama has no dedicated PDF path; PDFs ride the same route and
// succeed only with a multimodal model loaded.
func (p *Provider) Describe(ctx context.Context, content []byte, mediaType string) (string, error) {
	prompt := "Please extract all text and relevant information from this image. Describe what you see in detail."
	if mediaType == "application/pdf" {
		prompt = "Please extract all the text content from this PDF document. Provide a complete transcription of all visible text."
	}

	body := chatRequest{
		Model: p.cfg.Model,
		Messages: []chatMessage{
			{
				Role:    "user",
				Content: prompt,
				Images:  []string{base64.StdEncoding.EncodeToString(content)},
			},
		},
	}

	return p.chat(ctx, body)
}

func (p *Provider) chat(ctx context.Context, body chatRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := strings.TrimRight(p.cfg.BaseURL, "/") + "/api/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling ollama: %w", err)
	}
	defer resp.Body.Close()

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", fmt.Errorf("decoding ollama response: %w", err)
	}
	if chat.Error != "" {
		return "", fmt.Errorf("ollama error: %s", chat.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	return chat.Message.Content, nil
}

var _ models.TextProvider = (*Provider)(nil)
