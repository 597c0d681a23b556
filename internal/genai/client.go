// Package genai реализует клиент генеративной модели Gemini
// поверх REST API generateContent. Клиент отправляет фиксированную
// системную инструкцию аудита и изображение этикетки либо текст состава,
// запрашивая ответ строго в формате JSON.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/purescan-ai/purescan-backend/internal/config"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// RawAudit — сырой ответ модели в согласованной структуре.
// Валидация схемы не выполняется: отсутствующие поля добиваются
// значениями по умолчанию на этапе маппинга в сервисе сканирования.
type RawAudit struct {
	FingerprintMaterial string `json:"fingerprint_material"`
	Product             struct {
		Name     string `json:"name"`
		Brand    string `json:"brand"`
		Category string `json:"category"`
	} `json:"product"`
	Analysis struct {
		Score          float64  `json:"score"`
		Verdict        string   `json:"verdict"`
		Pros           []string `json:"pros"`
		Cons           []string `json:"cons"`
		Recommendation string   `json:"recommendation"`
	} `json:"analysis"`
	Nutrition struct {
		Kcal    float64 `json:"kcal"`
		Protein float64 `json:"protein"`
		Fat     float64 `json:"fat"`
		Carbs   float64 `json:"carbs"`
		Sugar   float64 `json:"sugar"`
		Salt    float64 `json:"salt"`
	} `json:"nutrition"`
	Ingredients struct {
		Items []RawIngredient `json:"items"`
	} `json:"ingredients"`
	Additives []RawAdditive `json:"additives"`
}

// RawIngredient — один ингредиент из ответа модели.
type RawIngredient struct {
	Name          string `json:"name"`
	CanonicalName string `json:"canonicalName"`
	Status        string `json:"status"`
	Function      string `json:"function"`
	Description   string `json:"description"`
}

// RawAdditive — одна добавка из ответа модели.
type RawAdditive struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Risk        string `json:"risk"`
	Description string `json:"description"`
}

// Auditor описывает контракт клиента генеративной модели.
type Auditor interface {
	// Audit выполняет один запрос анализа: imageBase64 имеет приоритет
	// над текстом, если переданы оба.
	Audit(ctx context.Context, imageBase64, ingredients string) (*RawAudit, error)
}

// Client вызывает Gemini generateContent по HTTP.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// New создает клиент по настройкам из конфига.
func New(cfg config.Gemini) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.TimeoutGemini},
	}
}

// Audit отправляет запрос generateContent и разбирает JSON-ответ модели.
func (c *Client) Audit(ctx context.Context, imageBase64, ingredients string) (*RawAudit, error) {
	const op = "genai.Audit"
	if c.apiKey == "" || c.model == "" {
		return nil, fmt.Errorf("%s: api key and model are required", op)
	}

	var parts []part
	if imageBase64 != "" {
		parts = []part{
			{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageBase64}},
			{Text: imageAuditPrompt},
		}
	} else {
		parts = []part{{Text: fmt.Sprintf(textAuditPrompt, ingredients)}}
	}

	body := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: expertSystemInstruction}}},
		Contents:          []content{{Parts: parts}},
		GenerationConfig:  &generationConfig{ResponseMimeType: "application/json"},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", op, err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request gemini: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: gemini status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	text, err := extractText(parsed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var audit RawAudit
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &audit); err != nil {
		return nil, fmt.Errorf("%s: parse audit json: %w", op, err)
	}
	return &audit, nil
}

type generateRequest struct {
	SystemInstruction *content          `json:"system_instruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string `json:"response_mime_type,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func extractText(resp generateResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini response missing candidates")
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", errors.New("gemini response missing content parts")
	}
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

// stripCodeFences убирает обёртку ```json``` — модели иногда добавляют её
// вопреки response_mime_type.
func stripCodeFences(input string) string {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(trimmed, "json")
		trimmed = strings.TrimSpace(trimmed)
		if idx := strings.LastIndex(trimmed, "```"); idx != -1 {
			trimmed = strings.TrimSpace(trimmed[:idx])
		}
	}
	return trimmed
}
