package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteModel calls an inference process over HTTP. The endpoint receives
// {"instances": [record]} and answers {"predictions": [price]}.
type RemoteModel struct {
	url    string
	client *http.Client
}

type remoteRequest struct {
	Instances []Record `json:"instances"`
}

type remoteResponse struct {
	Predictions []float64 `json:"predictions"`
}

// NewRemoteModel returns a client for the inference endpoint at url. A nil
// client gets a default one with a 10 second timeout.
func NewRemoteModel(url string, client *http.Client) *RemoteModel {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RemoteModel{url: url, client: client}
}

// Predict sends rec to the inference endpoint.
func (m *RemoteModel) Predict(rec Record) (float64, error) {
	body, err := json.Marshal(remoteRequest{Instances: []Record{rec}})
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	resp, err := m.client.Post(m.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("call inference endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("inference endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Predictions) != 1 {
		return 0, fmt.Errorf("expected 1 prediction, got %d", len(out.Predictions))
	}
	return out.Predictions[0], nil
}
