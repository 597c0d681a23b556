package genai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purescan-ai/purescan-backend/internal/config"
	"github.com/purescan-ai/purescan-backend/internal/genai"
)

func geminiResponse(text string) string {
	payload := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
				},
			},
		},
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func newClient(baseURL string) *genai.Client {
	return genai.New(config.Gemini{
		APIKey:        "test-key",
		Model:         "gemini-3-pro-preview",
		BaseURL:       baseURL,
		TimeoutGemini: 5 * time.Second,
	})
}

func TestClient_Audit_TextInput(t *testing.T) {
	auditJSON := `{"product":{"name":"Гранола"},"analysis":{"score":8.5,"verdict":"Отлично"}}`

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-3-pro-preview:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geminiResponse(auditJSON)))
	}))
	defer srv.Close()

	client := newClient(srv.URL)
	audit, err := client.Audit(context.Background(), "", "овсяные хлопья, мёд")
	require.NoError(t, err)

	assert.Equal(t, "Гранола", audit.Product.Name)
	assert.Equal(t, 8.5, audit.Analysis.Score)
	assert.Equal(t, "Отлично", audit.Analysis.Verdict)

	// Запрос несёт системную инструкцию и требует JSON-ответ.
	assert.Contains(t, gotBody, "system_instruction")
	genCfg := gotBody["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", genCfg["response_mime_type"])
}

func TestClient_Audit_ImageTakesPrecedence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					Text       string `json:"text"`
					InlineData *struct {
						MimeType string `json:"mime_type"`
						Data     string `json:"data"`
					} `json:"inline_data"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		require.NotEmpty(t, body.Contents[0].Parts)

		// Первая часть — изображение, текст состава не отправляется.
		first := body.Contents[0].Parts[0]
		require.NotNil(t, first.InlineData)
		assert.Equal(t, "image/jpeg", first.InlineData.MimeType)
		assert.Equal(t, "aW1hZ2U=", first.InlineData.Data)

		_, _ = w.Write([]byte(geminiResponse(`{"analysis":{"score":7}}`)))
	}))
	defer srv.Close()

	client := newClient(srv.URL)
	audit, err := client.Audit(context.Background(), "aW1hZ2U=", "игнорируемый текст")
	require.NoError(t, err)
	assert.Equal(t, 7.0, audit.Analysis.Score)
}

func TestClient_Audit_StripsCodeFences(t *testing.T) {
	fenced := "```json\n{\"analysis\":{\"score\":6.2}}\n```"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(geminiResponse(fenced)))
	}))
	defer srv.Close()

	client := newClient(srv.URL)
	audit, err := client.Audit(context.Background(), "", "вода")
	require.NoError(t, err)
	assert.Equal(t, 6.2, audit.Analysis.Score)
}

func TestClient_Audit_Errors(t *testing.T) {
	t.Run("upstream error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "quota exhausted", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).Audit(context.Background(), "", "вода")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("missing candidates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).Audit(context.Background(), "", "вода")
		require.Error(t, err)
	})

	t.Run("malformed audit json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(geminiResponse("это не JSON")))
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).Audit(context.Background(), "", "вода")
		require.Error(t, err)
	})

	t.Run("missing api key", func(t *testing.T) {
		client := genai.New(config.Gemini{Model: "gemini-3-pro-preview"})
		_, err := client.Audit(context.Background(), "", "вода")
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(geminiResponse(`{}`)))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newClient(srv.URL).Audit(ctx, "", "вода")
		require.Error(t, err)
	})
}
