package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/expense-api/internal/core/ports"
)

type stubFeedbackService struct {
	submissions []ports.FeedbackSubmission
	err         error
}

func (s *stubFeedbackService) Submit(_ context.Context, submission ports.FeedbackSubmission) error {
	if s.err != nil {
		return s.err
	}
	s.submissions = append(s.submissions, submission)
	return nil
}

func TestFeedbackHandler_Submit(t *testing.T) {
	svc := &stubFeedbackService{}
	h := NewFeedbackHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/v1/feedback",
		`{"name":"Ada","email":"ada@example.com","feedback":"Great app"}`)
	if err := h.Submit(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.submissions) != 1 || svc.submissions[0].Message != "Great app" {
		t.Fatalf("expected submission forwarded, got %+v", svc.submissions)
	}
}

func TestFeedbackHandler_Submit_Validation(t *testing.T) {
	h := NewFeedbackHandler(&stubFeedbackService{})

	cases := []string{
		`{"email":"ada@example.com","feedback":"hi"}`,
		`{"name":"Ada","email":"not-an-email","feedback":"hi"}`,
		`{"name":"Ada","email":"ada@example.com"}`,
	}
	for i, body := range cases {
		c, _ := newTestContext(http.MethodPost, "/v1/feedback", body)
		err := h.Submit(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400 HTTPError, got %v", i, err)
		}
	}
}
