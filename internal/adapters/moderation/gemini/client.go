package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption-backend/internal/platform/httpclient"
	"pet-adoption-backend/internal/ports/moderation"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 20 * time.Second
)

// Client modera contenido de publicaciones usando la API de Gemini.
// Implementa moderation.Classifier.
type Client struct {
	http   *httpclient.Client
	apiKey string
	model  string
}

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: api key requerida")
	}

	baseURL := cfg.BaseURL
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:   hc,
		apiKey: cfg.APIKey,
		model:  model,
	}, nil
}

// NewWithHTTPClient permite inyectar el httpclient (tests).
func NewWithHTTPClient(hc *httpclient.Client, apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{http: hc, apiKey: apiKey, model: model}
}

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Contents []struct {
		Parts []generatePart `json:"parts"`
	} `json:"contents"`
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

// Classify analiza texto y/o imagen. Si el modelo devuelve algo que no
// se puede parsear como veredicto, se asume contenido inofensivo en vez
// de bloquear la publicación.
func (c *Client) Classify(ctx context.Context, text string, image []byte) (moderation.Result, error) {
	parts := []generatePart{{Text: buildPrompt(text)}}
	if len(image) > 0 {
		parts = append(parts, generatePart{
			InlineData: &inlineData{
				MimeType: "image/jpeg",
				Data:     base64.StdEncoding.EncodeToString(image),
			},
		})
	}

	req := generateRequest{}
	req.Contents = append(req.Contents, struct {
		Parts []generatePart `json:"parts"`
	}{Parts: parts})

	var resp generateResponse
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
	headers := map[string]string{"x-goog-api-key": c.apiKey}
	if err := c.http.DoJSON(ctx, http.MethodPost, path, headers, req, &resp); err != nil {
		return moderation.Result{}, fmt.Errorf("gemini: %w", err)
	}

	raw := firstCandidateText(resp)
	result, ok := parseVerdict(raw)
	if !ok {
		return harmlessResult("unable to parse model response"), nil
	}
	return result, nil
}

func firstCandidateText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

func buildPrompt(text string) string {
	var b strings.Builder
	b.WriteString("You are a content moderator for a pet adoption platform. ")
	b.WriteString("Analyze the following post (and attached image, if any) for spam, scams, ")
	b.WriteString("offensive language, violence, sexual content, misleading claims and discrimination. ")
	b.WriteString("Respond ONLY with a JSON object with keys content_analysis, image_analysis ")
	b.WriteString("and combined_assessment, matching this shape: ")
	b.WriteString(`{"content_analysis":{"spam":false,"scam":false,"offensive":false,"violence":false,"sexual":false,"misleading":false,"discrimination":false,"overall_toxic":false,"confidence_score":0,"reason":""},"image_analysis":{"spam":false,"scam":false,"offensive":false,"violence":false,"sexual":false,"discrimination":false,"overall_harmful":false,"confidence_score":0,"image_description":"","reason":""},"combined_assessment":{"is_harmful":false,"reason":""}}`)
	b.WriteString("\n\nPost content:\n")
	b.WriteString(text)
	return b.String()
}

var _ moderation.Classifier = (*Client)(nil)
