package ports

import (
	"context"
	"time"
)

// FeedbackSubmission is a user feedback triple queued for relay to the
// external feedback endpoint.
type FeedbackSubmission struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"feedback"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// FeedbackService validates and queues feedback submissions.
type FeedbackService interface {
	Submit(ctx context.Context, submission FeedbackSubmission) error
}

// FeedbackForwarder delivers one submission to the external endpoint. Relay is
// fire-and-forget: a failed delivery is logged and counted, never retried.
type FeedbackForwarder interface {
	Forward(ctx context.Context, submission FeedbackSubmission) error
}
