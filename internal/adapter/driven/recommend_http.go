package driven

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DavideLaterza81/ItalianTV/internal/assistant"
	"github.com/DavideLaterza81/ItalianTV/internal/channel"
)

const recommendHTTPTimeout = 30 * time.Second

// RecommendHTTPClient implements the Recommender port against a hosted
// recommendation API. The service receives the viewer question plus a compact
// catalog summary and answers with conversational text in Italian and the ids
// of the channels it suggests.
type RecommendHTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRecommendHTTPClient creates a new recommendation API client.
// If httpClient is nil, it creates a default client with a 30-second timeout.
func NewRecommendHTTPClient(baseURL, apiKey string, httpClient *http.Client) *RecommendHTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: recommendHTTPTimeout,
		}
	}
	return &RecommendHTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// recommendRequest is the JSON body sent to the recommendation API.
type recommendRequest struct {
	Question string           `json:"question"`
	Channels []channelSummary `json:"channels"`
}

type channelSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// recommendResponse is the JSON body returned by the recommendation API.
type recommendResponse struct {
	ResponseText   string   `json:"response_text"`
	RecommendedIDs []string `json:"recommended_ids"`
}

// recommendErrorResponse captures error responses from the API.
type recommendErrorResponse struct {
	Detail string `json:"detail"`
}

// Recommend asks the hosted API to answer a viewer question against the given
// catalog.
func (c *RecommendHTTPClient) Recommend(ctx context.Context, question string, catalog []channel.Record) (assistant.Reply, error) {
	summaries := make([]channelSummary, 0, len(catalog))
	for _, rec := range catalog {
		summaries = append(summaries, channelSummary{
			ID:          rec.ID(),
			Name:        rec.Name(),
			Description: rec.Description(),
			Category:    string(rec.Category()),
		})
	}

	bodyBytes, err := json.Marshal(recommendRequest{
		Question: question,
		Channels: summaries,
	})
	if err != nil {
		return assistant.Reply{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return assistant.Reply{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return assistant.Reply{}, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return assistant.Reply{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr recommendErrorResponse
		_ = json.Unmarshal(respBody, &apiErr)
		return assistant.Reply{}, fmt.Errorf("recommendation API %d: %s", resp.StatusCode, apiErr.Detail)
	}

	var recResp recommendResponse
	if err := json.Unmarshal(respBody, &recResp); err != nil {
		return assistant.Reply{}, fmt.Errorf("unmarshal response: %w", err)
	}

	return assistant.Reply{
		Text:       recResp.ResponseText,
		ChannelIDs: recResp.RecommendedIDs,
	}, nil
}
