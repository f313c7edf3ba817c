package score

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the arcade web service the sink talks to when no
// override is configured.
const DefaultBaseURL = "http://localhost:5000"

const submitPath = "/games/api/save-score"

// submitRequest is the wire format the save-score endpoint expects.
type submitRequest struct {
	UserID int `json:"user_id"`
	GameID int `json:"game_id"`
	Score  int `json:"score"`
}

// submitResponse is the wire format the save-score endpoint returns.
type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HTTPSink submits final scores to the arcade web service as a single
// JSON POST. There are no retries; a failed submission is simply lost.
type HTTPSink struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSink creates a sink for the given base URL.
// An empty baseURL selects DefaultBaseURL.
func NewHTTPSink(baseURL string) *HTTPSink {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPSink{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Submit posts the report and checks the service's verdict.
func (s *HTTPSink) Submit(r Report) error {
	body, err := json.Marshal(submitRequest{
		UserID: r.UserID,
		GameID: r.GameID,
		Score:  r.Score,
	})
	if err != nil {
		return fmt.Errorf("encode score report: %w", err)
	}

	resp, err := s.client.Post(s.baseURL+submitPath, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post score: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("post score: unexpected status %s", resp.Status)
	}

	var verdict submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return fmt.Errorf("decode score response: %w", err)
	}
	if !verdict.Success {
		return fmt.Errorf("score rejected: %s", verdict.Message)
	}
	return nil
}
