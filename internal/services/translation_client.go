package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"maistorBack/internal/models"
)

// TranslationClient talks to the external machine-translation service that
// produces the pivot-language (Bulgarian) counterparts of listing content.
type TranslationClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewTranslationClient(httpClient *http.Client, baseURL, apiKey string) *TranslationClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &TranslationClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type translationRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Requirements *string `json:"requirements,omitempty"`
	SourceLocale string  `json:"source_locale"`
}

// Translate sends the content fields and returns whatever subset the service
// managed to translate. Best effort: an empty result is not an error.
func (c *TranslationClient) Translate(ctx context.Context, title, description string, requirements *string, sourceLocale string) (models.TaskTranslation, error) {
	if c == nil || strings.TrimSpace(c.baseURL) == "" {
		return models.TaskTranslation{}, errors.New("translation client is not configured")
	}

	body, err := json.Marshal(translationRequest{
		Title:        title,
		Description:  description,
		Requirements: requirements,
		SourceLocale: sourceLocale,
	})
	if err != nil {
		return models.TaskTranslation{}, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + "/translate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return models.TaskTranslation{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return models.TaskTranslation{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return models.TaskTranslation{}, fmt.Errorf("translation error: status %d: %s", resp.StatusCode, string(data))
	}

	var tr models.TaskTranslation
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return models.TaskTranslation{}, fmt.Errorf("decode response: %w", err)
	}
	return tr, nil
}
