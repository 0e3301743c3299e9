package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

// TextGenerator abstraksi layanan generasi teks untuk fitur chat/tutor.
// Bukan bagian correctness inti: kegagalan di sini tidak boleh merembet
// keluar handler.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, mode, userContext string) (string, error)
}

/* ==========================
   GEMINI REST CLIENT
========================== */

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

type GeminiClient struct {
	APIKey     string
	HTTPClient *http.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func modePreamble(mode string) string {
	switch mode {
	case "tutor":
		return "You are a patient tutor for university students. Explain step by step."
	case "exam":
		return "You are an exam coach. Answer concisely and quiz the student back."
	default:
		return "You are a helpful campus assistant."
	}
}

func (g *GeminiClient) Generate(ctx context.Context, prompt, mode, userContext string) (string, error) {
	full := modePreamble(mode)
	if userContext != "" {
		full += "\nStudent context: " + userContext
	}
	full += "\n\n" + prompt

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: full}}}},
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := sonic.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

/* ==========================
   OFFLINE FALLBACK
========================== */

// StaticResponder dipakai saat GEMINI_API_KEY kosong (dev/test).
type StaticResponder struct{}

func (StaticResponder) Generate(_ context.Context, prompt, mode, _ string) (string, error) {
	return fmt.Sprintf("[%s] I can't reach the assistant service right now. You asked: %s", mode, prompt), nil
}
