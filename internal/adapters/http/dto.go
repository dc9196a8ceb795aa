package http

import "github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/domain"

// Request DTOs use pointer fields where the handlers must tell an absent
// field from a present-but-empty one.

type analyzePosesRequest struct {
	Poses    *[]domain.PoseFrame `json:"poses"`
	Exercise string              `json:"exercise"`
}

type realTimeRequest struct {
	Poses    []domain.PoseFrame `json:"poses"`
	Exercise string             `json:"exercise"`
}

type anglesRequest struct {
	ExerciseName *string              `json:"exercise_name"`
	Angles       *domain.AngleReading `json:"angles"`
	FormIssues   *[]domain.FormIssue  `json:"form_issues"`
}

type issueRequest struct {
	ExerciseName *string              `json:"exercise_name"`
	Issue        *domain.FormIssue    `json:"issue"`
	Angles       *domain.AngleReading `json:"angles"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Model   string `json:"model"`
	Version string `json:"version"`
}

type analysisResponse struct {
	Success  bool                  `json:"success"`
	Analysis domain.AnalysisResult `json:"analysis"`
}

type feedbackResponse struct {
	Success  bool                    `json:"success"`
	Feedback domain.RealTimeFeedback `json:"feedback"`
}

type angleAnalysisResponse struct {
	Success         bool                 `json:"success"`
	Analysis        domain.AngleAnalysis `json:"analysis"`
	Angles          domain.AngleReading  `json:"angles"`
	FormIssuesCount int                  `json:"form_issues_count"`
}

type coachingResponse struct {
	Success  bool                 `json:"success"`
	Coaching domain.IssueCoaching `json:"coaching"`
	Issue    domain.FormIssue     `json:"issue"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
