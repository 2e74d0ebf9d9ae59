package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spendwise/expense-api/internal/core/ports"
)

// FeedbackForwarder POSTs feedback submissions to the configured endpoint.
// The response code alone determines success.
type FeedbackForwarder struct {
	endpoint string
	client   *http.Client
}

func NewFeedbackForwarder(endpoint string) *FeedbackForwarder {
	return &FeedbackForwarder{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (f *FeedbackForwarder) Forward(ctx context.Context, submission ports.FeedbackSubmission) error {
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now().UTC()
	}

	body, err := json.Marshal(submission)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("forward feedback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("forward feedback: unexpected status %d", resp.StatusCode)
	}
	return nil
}
