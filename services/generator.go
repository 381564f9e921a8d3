package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Generator produces the recommendation text via Ollama.
type Generator struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewGenerator(baseURL, model string) *Generator {
	return &Generator{
		BaseURL: baseURL,
		Model:   model,
		Client: &http.Client{
			Timeout: 120 * time.Second, // longer timeout for generation
		},
	}
}

type OllamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type OllamaGenerateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

// Recommend asks the LLM to explain why the retrieved titles fit the
// user's query and returns its text unmodified.
func (g *Generator) Recommend(query string, titles []string) (string, error) {
	return g.generate(buildRecommendationPrompt(query, titles))
}

func (g *Generator) generate(prompt string) (string, error) {
	reqBody := OllamaGenerateRequest{
		Model:  g.Model,
		Prompt: prompt,
		Stream: false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/generate", g.BaseURL)
	resp, err := g.Client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to call Ollama API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Ollama API error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp OllamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if genResp.Response == "" {
		return "", fmt.Errorf("received empty response from Ollama")
	}

	return strings.TrimSpace(genResp.Response), nil
}

func buildRecommendationPrompt(query string, titles []string) string {
	var sb strings.Builder

	sb.WriteString("Here are some similar movies I found:\n")
	sb.WriteString(strings.Join(titles, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("based on user's query: %s\n", query))
	sb.WriteString("Explain why these movies fit the query.")

	return sb.String()
}

func (g *Generator) TestConnection() error {
	url := fmt.Sprintf("%s/api/tags", g.BaseURL)
	resp, err := g.Client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Ollama API returned status %d", resp.StatusCode)
	}

	return nil
}
