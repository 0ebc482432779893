package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"loan-agent-be/pkg/vision"
)

const extractionPrompt = `Analyze the provided image of a government-issued ID document (like a PAN card or Aadhar card).
Extract the full name, the type of the ID, and the ID number.

CRITICAL INSTRUCTIONS:
1. The output MUST be a single, valid JSON object.
2. The JSON object must have exactly three keys: "full_name" (string), "id_type" (string), and "id_number" (string).
3. For "id_type", identify if it is an 'Aadhar' card, 'PAN' card, or another type. Be concise.
4. Do not include any other text, explanations, or markdown formatting in your response. Your entire response should be only the JSON object itself.

Example JSON Output:
{"full_name": "ALICE SMITH", "id_type": "PAN", "id_number": "P987654321"}`

// GeminiProvider extracts ID fields via the Gemini multimodal endpoint.
type GeminiProvider struct {
	ApiKey    string
	ModelName string
	Client    *http.Client
}

var _ vision.Provider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiProvider{
		ApiKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type visionPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type visionContent struct {
	Parts []visionPart `json:"parts"`
}

type visionRequest struct {
	Contents []visionContent `json:"contents"`
}

type visionResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func (p *GeminiProvider) Extract(ctx context.Context, imagePath string) (*vision.IDExtraction, error) {
	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	payload := visionRequest{
		Contents: []visionContent{{
			Parts: []visionPart{
				{Text: extractionPrompt},
				{InlineData: &inlineData{
					MimeType: mimeTypeFor(imagePath),
					Data:     base64.StdEncoding.EncodeToString(imageBytes),
				}},
			},
		}},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent",
		p.ModelName,
	)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini vision request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini vision error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var visionResp visionResponse
	if err := json.Unmarshal(bodyBytes, &visionResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(visionResp.Candidates) == 0 || visionResp.Candidates[0].Content == nil ||
		len(visionResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini vision returned no candidates")
	}

	return ParseExtraction(visionResp.Candidates[0].Content.Parts[0].Text)
}

// ParseExtraction decodes the model reply, tolerating markdown code fences.
func ParseExtraction(raw string) (*vision.IDExtraction, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var extraction vision.IDExtraction
	if err := json.Unmarshal([]byte(cleaned), &extraction); err != nil {
		return nil, fmt.Errorf("parse extraction: %w", err)
	}
	return &extraction, nil
}
