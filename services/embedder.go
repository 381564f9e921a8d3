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

// Embedder turns text into a fixed-length vector via Ollama. The "simple"
// model is a local hash-bucket fallback that needs no API, used for
// development and tests.
type Embedder struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewEmbedder(baseURL, model string) *Embedder {
	return &Embedder{
		BaseURL: baseURL,
		Model:   model,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type OllamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type OllamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (e *Embedder) GenerateEmbedding(text string) ([]float32, error) {
	if e.Model == "simple" {
		return e.generateSimpleEmbedding(text), nil
	}

	reqBody := OllamaEmbedRequest{
		Model:  e.Model,
		Prompt: text,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/embeddings", e.BaseURL)
	resp, err := e.Client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to call Ollama API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, string(body))
	}

	var embedResp OllamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(embedResp.Embedding) == 0 {
		return nil, fmt.Errorf("received empty embedding from ollama")
	}

	return embedResp.Embedding, nil
}

// generateSimpleEmbedding creates a lightweight embedding using word frequency
func (e *Embedder) generateSimpleEmbedding(text string) []float32 {
	text = strings.ToLower(text)
	words := strings.Fields(text)

	embedding := make([]float32, 128)

	wordCounts := make(map[string]int)
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if len(word) > 0 {
			wordCounts[word]++
		}
	}

	for word, count := range wordCounts {
		hash := 0
		for _, char := range word {
			hash = hash*31 + int(char)
		}
		pos := (hash & 0x7FFFFFFF) % 128
		embedding[pos] += float32(count) / float32(len(words))
	}

	norm := float32(0)
	for _, val := range embedding {
		norm += val * val
	}
	if norm > 0 {
		norm = sqrt(norm)
		for i := range embedding {
			embedding[i] /= norm
		}
	}

	return embedding
}

// simple square root approximation
func sqrt(x float32) float32 {
	if x == 0 {
		return 0
	}
	z := x
	for i := 0; i < 10; i++ {
		z = (z + x/z) / 2
	}
	return z
}

func (e *Embedder) TestConnection() error {
	// simple mode, runs locally
	if e.Model == "simple" {
		return nil
	}

	url := fmt.Sprintf("%s/api/tags", e.BaseURL)
	resp, err := e.Client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama API returned status %d", resp.StatusCode)
	}

	return nil
}
