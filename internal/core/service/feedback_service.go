package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendwise/expense-api/internal/core/domain"
	"github.com/spendwise/expense-api/internal/core/ports"
)

// FeedbackEnqueuer hands a validated submission to the async relay.
type FeedbackEnqueuer interface {
	Enqueue(submission ports.FeedbackSubmission)
}

// FeedbackService validates feedback submissions and queues them for
// fire-and-forget relay to the external endpoint.
type FeedbackService struct {
	queue FeedbackEnqueuer
	log   zerolog.Logger
}

func NewFeedbackService(queue FeedbackEnqueuer, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{queue: queue, log: log}
}

func (s *FeedbackService) Submit(_ context.Context, submission ports.FeedbackSubmission) error {
	submission.Name = strings.TrimSpace(submission.Name)
	submission.Email = domain.NormalizeEmail(submission.Email)
	submission.Message = strings.TrimSpace(submission.Message)
	if submission.Name == "" || submission.Email == "" || submission.Message == "" {
		return domain.ErrValidation
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now().UTC()
	}

	s.queue.Enqueue(submission)
	s.log.Debug().Str("email", submission.Email).Msg("feedback queued")
	return nil
}
