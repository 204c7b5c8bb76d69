package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// chatProvider calls an OpenAI-compatible chat-completions endpoint. This
// covers self-hosted runtimes (Ollama, vLLM) and the OpenAI API itself.
type chatProvider struct {
	endpoint   string
	modelID    string
	apiKey     string
	httpClient *http.Client
}

func (p *chatProvider) Name() string {
	return "chat-completions"
}

func (p *chatProvider) Generate(ctx context.Context, prompt string) (string, error) {
	requestBody, err := json.Marshal(map[string]any{
		"model": p.modelID,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("chat-completions: %s", resp.Status)
	}

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	return parseChatResponse(responseBody.Bytes())
}

func parseChatResponse(body []byte) (string, error) {
	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	for _, choice := range response.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text, nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}
