package ollama

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
	return NewProvider(config.OllamaConfig{
		BaseURL: serverURL,
		Model:   "llama3",
	})
}

func TestGenerate(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"message": {"content": "model reply"}}`))
	}))
	defer server.Close()

	got, err := newTestProvider(server.URL).Generate(context.Background(), models.GenerateRequest{
		System:      "sys",
		User:        "usr",
		JSONMode:    true,
		Temperature: 0.7,
		MaxTokens:   800,
	})
	require.NoError(t, err)
	assert.Equal(t, "model reply", got)

	assert.Equal(t, "llama3", captured["model"])
	assert.Equal(t, "json", captured["format"])
	assert.Equal(t, false, captured["stream"])

	opts := captured["options"].(map[string]any)
	assert.Equal(t, 0.7, opts["temperature"])
	assert.Equal(t, float64(800), opts["num_predict"])

	msgs := captured["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "sys", msgs[0].(map[string]any)["content"])
	assert.Equal(t, "usr", msgs[1].(map[string]any)["content"])
}

func TestGenerate_NoSystemNoFormat(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"message": {"content": "ok"}}`))
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).Generate(context.Background(), models.GenerateRequest{User: "usr"})
	require.NoError(t, err)

	_, hasFormat := captured["format"]
	assert.False(t, hasFormat)
	assert.Len(t, captured["messages"].([]any), 1)
}

func TestGenerate_TrailingSlashBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		w.Write([]byte(`{"message": {"content": "ok"}}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL + "/")
	_, err := p.Generate(context.Background(), models.GenerateRequest{User: "usr"})
	assert.NoError(t, err)
}

func TestGenerate_OllamaError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "model 'llama3' not found"}`))
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).Generate(context.Background(), models.GenerateRequest{User: "usr"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model 'llama3' not found")
}

func TestGenerate_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestProvider(server.URL).Generate(context.Background(), models.GenerateRequest{User: "usr"})
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	content := []byte("fake image bytes")

	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"message": {"content": "described"}}`))
	}))
	defer server.Close()

	got, err := newTestProvider(server.URL).Describe(context.Background(), content, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "described", got)

	msg := captured["messages"].([]any)[0].(map[string]any)
	images := msg["images"].([]any)
	require.Len(t, images, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString(content), images[0])
	assert.Contains(t, msg["content"], "image")
}
