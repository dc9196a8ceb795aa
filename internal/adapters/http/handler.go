// Package http exposes the feedback pipeline over four POST routes plus a
// health check. Handlers validate request shape and map errors; everything
// else is the app service's job.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/app"
	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/domain"
)

const (
	serviceName    = "AI Gym Coach Backend"
	serviceVersion = "2.0"
)

type Handler struct {
	svc   *app.Coach
	model string
}

func NewHandler(svc *app.Coach, model string) *Handler {
	return &Handler{svc: svc, model: model}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/analyze-poses", h.AnalyzePoses)
	e.POST("/real-time-feedback", h.RealTimeFeedback)
	e.POST("/analyze-angles", h.AnalyzeAngles)
	e.POST("/analyze-form-issue", h.AnalyzeFormIssue)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Service: serviceName,
		Model:   h.model,
		Version: serviceVersion,
	})
}

func (h *Handler) AnalyzePoses(c echo.Context) error {
	var req analyzePosesRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c, err)
	}
	if req.Poses == nil {
		return badRequest(c, domain.ErrMissingPoses)
	}
	if len(*req.Poses) == 0 {
		return badRequest(c, domain.ErrEmptyPoses)
	}

	analysis, err := h.svc.AnalyzeForm(c.Request().Context(), app.AnalyzeFormRequest{
		Poses:    *req.Poses,
		Exercise: req.Exercise,
	})
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, analysisResponse{Success: true, Analysis: analysis})
}

func (h *Handler) RealTimeFeedback(c echo.Context) error {
	var req realTimeRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c, err)
	}
	if len(req.Poses) == 0 {
		return badRequest(c, domain.ErrNoPoseData)
	}

	feedback, err := h.svc.SnapshotFeedback(c.Request().Context(), app.SnapshotRequest{
		Poses:    req.Poses,
		Exercise: req.Exercise,
	})
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, feedbackResponse{Success: true, Feedback: feedback})
}

func (h *Handler) AnalyzeAngles(c echo.Context) error {
	var req anglesRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c, err)
	}
	if req.ExerciseName == nil && req.Angles == nil && req.FormIssues == nil {
		return badRequest(c, domain.ErrEmptyRequest)
	}

	angles := domain.AngleReading{}
	if req.Angles != nil {
		angles = *req.Angles
	}
	var issues []domain.FormIssue
	if req.FormIssues != nil {
		issues = *req.FormIssues
	}

	analysis, err := h.svc.AnalyzeAngles(c.Request().Context(), app.AngleAnalysisRequest{
		Exercise: stringValue(req.ExerciseName),
		Angles:   angles,
		Issues:   issues,
	})
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, angleAnalysisResponse{
		Success:         true,
		Analysis:        analysis,
		Angles:          angles,
		FormIssuesCount: len(issues),
	})
}

func (h *Handler) AnalyzeFormIssue(c echo.Context) error {
	var req issueRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c, err)
	}
	if req.ExerciseName == nil && req.Issue == nil && req.Angles == nil {
		return badRequest(c, domain.ErrEmptyRequest)
	}

	var issue domain.FormIssue
	if req.Issue != nil {
		issue = *req.Issue
	}
	angles := domain.AngleReading{}
	if req.Angles != nil {
		angles = *req.Angles
	}

	coaching, err := h.svc.CoachIssue(c.Request().Context(), app.IssueCoachingRequest{
		Exercise: stringValue(req.ExerciseName),
		Issue:    issue,
		Angles:   angles,
	})
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, coachingResponse{
		Success:  true,
		Coaching: coaching,
		Issue:    issue,
	})
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Success: false, Error: err.Error()})
}

func badBody(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{
		Success: false,
		Error:   fmt.Sprintf("invalid request body: %v", unwrapBindError(err)),
	})
}

// mapError classifies pipeline errors. Normalizer fallbacks never reach
// here; only gateway and unexpected failures do, and both are 500s.
func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrModelAuth), errors.Is(err, domain.ErrUpstreamModel):
		slog.Error("model gateway failure", "request_id", requestID, "error", err)
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Success: false, Error: err.Error()})
}

// unwrapBindError strips echo's HTTPError wrapper so the client sees the
// decode failure, not the framework envelope.
func unwrapBindError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal != nil {
		return he.Internal
	}
	return err
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
