package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"newsreel/api"
)

// StudioClient is a thin HTTP client for the render API.
type StudioClient struct {
	baseURL string
	client  *http.Client
}

// NewStudioClient creates a client for the given server.
func NewStudioClient(baseURL string) *StudioClient {
	return &StudioClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Sample payloads for smoke-testing a running server from the keys.
var (
	sampleStory = api.RenderStoryRequest{
		Hook: "Studio test card",
		Script: "This is a studio test render. The quick brown fox jumps over " +
			"the lazy dog while the markets watch closely. Stay informed. " +
			"Follow for more updates.",
	}
	sampleBulletin = api.RenderBulletinRequest{
		Titles: []string{
			"Test headline one lands on the board",
			"Second slot checks the badge palette",
			"Third slot exercises wrapped titles that run a little long",
			"Fourth slot stays short",
			"Fifth slot closes the card",
		},
	}
)

// GetStatus fetches the current status from the server.
func (c *StudioClient) GetStatus() (*api.StatusResponse, error) {
	resp, err := c.client.Get(c.baseURL + "/api/status")
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var status api.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &status, nil
}

// RenderStory submits the sample narrated render.
func (c *StudioClient) RenderStory() (string, error) {
	return c.postRender("/api/render", sampleStory)
}

// RenderBulletin submits the sample bulletin render.
func (c *StudioClient) RenderBulletin() (string, error) {
	return c.postRender("/api/render/bulletin", sampleBulletin)
}

func (c *StudioClient) postRender(path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to start render: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(raw))
	}

	var ack api.RenderResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return ack.JobID, nil
}
