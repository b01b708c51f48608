package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stakeholder-rag-be/pkg/classify"
)

// HuggingFaceClassifier calls the HF inference API's text-classification
// pipeline (default model: ProsusAI/finbert).
type HuggingFaceClassifier struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ classify.Classifier = &HuggingFaceClassifier{}

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

type classifyLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func NewHuggingFaceClassifier(apiKey, baseURL, model string) *HuggingFaceClassifier {
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co/models"
	}
	if model == "" {
		model = "ProsusAI/finbert"
	}
	return &HuggingFaceClassifier{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *HuggingFaceClassifier) Classify(ctx context.Context, text string) (*classify.Classification, error) {
	reqBody := classifyRequest{Inputs: text}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface classify error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	// The pipeline returns labels nested per input: [[{label, score}, ...]]
	var nested [][]classifyLabel
	if err := json.Unmarshal(bodyBytes, &nested); err != nil {
		// Some deployments return a flat list for single inputs
		var flat []classifyLabel
		if err2 := json.Unmarshal(bodyBytes, &flat); err2 != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		nested = [][]classifyLabel{flat}
	}

	if len(nested) == 0 || len(nested[0]) == 0 {
		return nil, fmt.Errorf("empty classification from huggingface api")
	}

	top := nested[0][0]
	for _, l := range nested[0][1:] {
		if l.Score > top.Score {
			top = l
		}
	}

	return &classify.Classification{
		Label: top.Label,
		Score: top.Score,
	}, nil
}
