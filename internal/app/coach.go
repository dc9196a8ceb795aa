// Package app orchestrates the feedback pipeline: render data block, build
// prompt, call the model gateway once, extract and normalize the reply.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/domain"
	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/ports"
	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/prompt"
	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/reply"
)

// AnalyzeFormRequest is the application-level input for full-form analysis.
type AnalyzeFormRequest struct {
	Poses    []domain.PoseFrame
	Exercise string
}

// SnapshotRequest is the input for real-time snapshot feedback.
type SnapshotRequest struct {
	Poses    []domain.PoseFrame
	Exercise string
}

// AngleAnalysisRequest is the input for angle-based analysis.
type AngleAnalysisRequest struct {
	Exercise string
	Angles   domain.AngleReading
	Issues   []domain.FormIssue
}

// IssueCoachingRequest is the input for single-issue coaching.
type IssueCoachingRequest struct {
	Exercise string
	Issue    domain.FormIssue
	Angles   domain.AngleReading
}

// Coach runs the four feedback pipelines over injected collaborators.
// It holds no mutable state, so one instance serves concurrent requests.
type Coach struct {
	llm       ports.TextGenerator
	profiles  ports.ProfileSource
	threshold float64
	logger    *slog.Logger
}

func NewCoach(llm ports.TextGenerator, profiles ports.ProfileSource, threshold float64, logger *slog.Logger) *Coach {
	return &Coach{
		llm:       llm,
		profiles:  profiles,
		threshold: threshold,
		logger:    logger,
	}
}

// AnalyzeForm runs the full-form analysis pipeline. The result is always
// schema-complete; a reply the model garbled comes back as the fallback
// payload, not an error.
func (c *Coach) AnalyzeForm(ctx context.Context, req AnalyzeFormRequest) (domain.AnalysisResult, error) {
	poseText := prompt.FormatPoses(req.Poses, c.profiles.Landmarks(req.Exercise), c.threshold)

	raw, err := c.llm.Generate(ctx, prompt.BuildAnalysis(req.Exercise, poseText))
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("analyze form: %w", err)
	}

	result, parsed := reply.NormalizeAnalysis(reply.Extract(raw), raw, req.Exercise)
	c.logFallback(ctx, domain.ModeAnalysis, parsed)
	return result, nil
}

// SnapshotFeedback runs the real-time snapshot pipeline.
func (c *Coach) SnapshotFeedback(ctx context.Context, req SnapshotRequest) (domain.RealTimeFeedback, error) {
	poseText := prompt.FormatPoses(req.Poses, c.profiles.Landmarks(req.Exercise), c.threshold)

	raw, err := c.llm.Generate(ctx, prompt.BuildRealTime(req.Exercise, poseText))
	if err != nil {
		return domain.RealTimeFeedback{}, fmt.Errorf("snapshot feedback: %w", err)
	}

	feedback, parsed := reply.NormalizeRealTime(reply.Extract(raw), raw)
	c.logFallback(ctx, domain.ModeRealTime, parsed)
	return feedback, nil
}

// AnalyzeAngles runs the angle-based pipeline over pre-smoothed angles and
// detected issues from the client's biomechanics layer.
func (c *Coach) AnalyzeAngles(ctx context.Context, req AngleAnalysisRequest) (domain.AngleAnalysis, error) {
	exercise := exerciseOrUnknown(req.Exercise)

	c.logger.InfoContext(ctx, "analyzing angles",
		"exercise", exercise,
		"angle_count", len(req.Angles),
		"issue_count", len(req.Issues),
	)

	angleText := prompt.FormatAngles(exercise, req.Angles, req.Issues)

	raw, err := c.llm.Generate(ctx, prompt.BuildAngles(angleText))
	if err != nil {
		return domain.AngleAnalysis{}, fmt.Errorf("analyze angles: %w", err)
	}

	analysis, parsed := reply.NormalizeAngles(reply.Extract(raw), raw)
	c.logFallback(ctx, domain.ModeAngles, parsed)
	return analysis, nil
}

// CoachIssue runs the single-issue coaching pipeline.
func (c *Coach) CoachIssue(ctx context.Context, req IssueCoachingRequest) (domain.IssueCoaching, error) {
	exercise := exerciseOrUnknown(req.Exercise)

	c.logger.InfoContext(ctx, "coaching form issue",
		"exercise", exercise,
		"issue_type", req.Issue.Type,
		"severity", req.Issue.Severity,
	)

	issueText := prompt.FormatIssue(exercise, req.Issue, req.Angles)

	raw, err := c.llm.Generate(ctx, prompt.BuildIssue(issueText))
	if err != nil {
		return domain.IssueCoaching{}, fmt.Errorf("coach issue: %w", err)
	}

	coaching, parsed := reply.NormalizeIssue(reply.Extract(raw), raw)
	c.logFallback(ctx, domain.ModeIssue, parsed)
	return coaching, nil
}

func (c *Coach) logFallback(ctx context.Context, mode domain.Mode, parsed bool) {
	if parsed {
		return
	}
	c.logger.WarnContext(ctx, "model reply was not parseable JSON, using fallback payload", "mode", mode.String())
}

func exerciseOrUnknown(name string) string {
	if name == "" {
		return "unknown"
	}
	return name
}
