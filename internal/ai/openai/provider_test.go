package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitfield/lendintake/internal/config"
	"github.com/mwhitfield/lendintake/pkg/models"
)

func newTestProvider(serverURL string) *Provider {
	return NewProvider(config.OpenAIConfig{
		APIKey:      "sk-test",
		BaseURL:     serverURL,
		Model:       "gpt-4o",
		VisionModel: "gpt-4o-vision",
	})
}

func chatReply(content string) string {
	return `{"choices": [{"message": {"content": ` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGenerate(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(chatReply(`{"ok": true}`)))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	got, err := p.Generate(context.Background(), models.GenerateRequest{
		System:      "system instructions",
		User:        "user text",
		JSONMode:    true,
		Temperature: 0.3,
		MaxTokens:   500,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, got)

	assert.Equal(t, "gpt-4o", captured["model"])
	assert.Equal(t, 0.3, captured["temperature"])
	assert.Equal(t, float64(500), captured["max_tokens"])

	rf, ok := captured["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", rf["type"])

	msgs := captured["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "system instructions", msgs[0].(map[string]any)["content"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

func TestGenerate_NoSystemPrompt(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(chatReply("ok")))
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).Generate(context.Background(), models.GenerateRequest{User: "just user"})
	require.NoError(t, err)

	msgs := captured["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
}

func TestGenerate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid key", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).Generate(context.Background(), models.GenerateRequest{User: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid key")
	assert.Contains(t, err.Error(), "invalid_request_error")
}

func TestGenerate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).Generate(context.Background(), models.GenerateRequest{User: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestGenerate_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestProvider(server.URL).Generate(context.Background(), models.GenerateRequest{User: "hi"})
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	content := []byte{0x89, 0x50, 0x4e, 0x47}

	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(chatReply("extracted text")))
	}))
	defer server.Close()

	got, err := newTestProvider(server.URL).Describe(context.Background(), content, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "extracted text", got)

	assert.Equal(t, "gpt-4o-vision", captured["model"])

	msgs := captured["messages"].([]any)
	require.Len(t, msgs, 1)
	parts := msgs[0].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	assert.Equal(t, "text", parts[0].(map[string]any)["type"])

	img := parts[1].(map[string]any)
	assert.Equal(t, "image_url", img["type"])
	url := img["image_url"].(map[string]any)["url"].(string)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(content), url)
}

func TestDescribe_PDFUsesPDFPrompt(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(chatReply("pdf text")))
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).Describe(context.Background(), []byte("%PDF-"), "application/pdf")
	require.NoError(t, err)

	parts := captured["messages"].([]any)[0].(map[string]any)["content"].([]any)
	text := parts[0].(map[string]any)["text"].(string)
	assert.Contains(t, text, "PDF document")
}
