package service

import (
	"ai_course_backend/internal/config"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Part is one text fragment of a message turn.
type Part struct {
	Text string `json:"text"`
}

// Message is one role-tagged turn of the generateContent conversation.
type Message struct {
	Role  string `json:"role"` // user | model
	Parts []Part `json:"parts"`
}

// GenerationOptions are the per-call knobs; zero values fall back to the
// service defaults.
type GenerationOptions struct {
	Temperature     float64
	MaxOutputTokens int
}

// Generator is the text-completion collaborator: conversation-shaped
// input in, free text out, with no guarantee of structural compliance.
type Generator interface {
	Generate(ctx context.Context, messages []Message, opts GenerationOptions) (string, error)
}

type generateRequest struct {
	Contents         []Message        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
			Role  string `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// GeminiService calls the generativelanguage generateContent endpoint.
// One blocking POST per prompt; no streaming.
type GeminiService struct {
	config config.GeminiConfig
	client *http.Client
}

func NewGeminiService(cfg config.GeminiConfig) *GeminiService {
	return &GeminiService{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (s *GeminiService) Generate(ctx context.Context, messages []Message, opts GenerationOptions) (string, error) {
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	if opts.MaxOutputTokens == 0 {
		opts.MaxOutputTokens = 1024
	}

	reqBody := generateRequest{
		Contents: messages,
		GenerationConfig: generationConfig{
			Temperature:     opts.Temperature,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: opts.MaxOutputTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.config.BaseURL, s.config.Model, s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var data generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response candidates from gemini API")
	}
	return data.Candidates[0].Content.Parts[0].Text, nil
}

func UserMessage(text string) Message {
	return Message{Role: "user", Parts: []Part{{Text: text}}}
}

func ModelMessage(text string) Message {
	return Message{Role: "model", Parts: []Part{{Text: text}}}
}

// JSONPrompt wraps a prompt with the instruction to answer in raw JSON.
// The repair pipeline still treats the answer as untrusted.
func JSONPrompt(text string) Message {
	return UserMessage(text + `

IMPORTANT: Your response must be valid JSON only, with no markdown formatting, no code blocks, and no explanatory text.
Just return the raw JSON object/array.`)
}
