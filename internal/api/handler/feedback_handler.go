package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/expense-api/internal/core/ports"
)

// FeedbackHandler accepts feedback submissions for async relay.
type FeedbackHandler struct {
	feedback ports.FeedbackService
}

func NewFeedbackHandler(feedback ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

type feedbackRequest struct {
	Name    string `json:"name"     validate:"required"`
	Email   string `json:"email"    validate:"required,email"`
	Message string `json:"feedback" validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

// Submit handles POST /v1/feedback — queues the submission, returns 202.
//
// @Summary      Submit feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      feedbackRequest  true  "Feedback triple"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/feedback [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.feedback.Submit(c.Request().Context(), ports.FeedbackSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "feedback accepted"})
}
