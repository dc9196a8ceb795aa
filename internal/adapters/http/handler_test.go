package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/adapters/http"
	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/adapters/profiles"
	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/app"
	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/domain"
)

type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

const wellFormedAnalysis = `{
	"exercise_name": "squat",
	"form_score": 8,
	"issues": ["slight knee cave"],
	"corrections": ["push knees out"],
	"positives": ["good depth"],
	"overall_feedback": "Strong squat overall."
}`

const specExamplePoses = `{"poses":[{"landmarks":{"leftKnee":{"x":280,"y":450,"z":0,"confidence":0.88}}}],"exercise":"squat"}`

func newServer(t *testing.T, gen *stubGenerator) *echo.Echo {
	t.Helper()
	store, err := profiles.NewEmbeddedStore()
	require.NoError(t, err)

	svc := app.NewCoach(gen, store, 0.5, slog.Default())

	e := echo.New()
	e.Use(httpadapter.RequestIDMiddleware())
	httpadapter.NewHandler(svc, "gemini-1.5-flash").Register(e)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	e := newServer(t, &stubGenerator{})
	rec := do(e, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "AI Gym Coach Backend", body["service"])
	assert.Equal(t, "gemini-1.5-flash", body["model"])
	assert.Equal(t, "2.0", body["version"])
}

func TestAnalyzePoses_WellFormedReply(t *testing.T) {
	e := newServer(t, &stubGenerator{reply: wellFormedAnalysis})
	rec := do(e, http.MethodPost, "/analyze-poses", specExamplePoses)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	analysis := body["analysis"].(map[string]any)
	for _, field := range []string{
		"exercise_name", "form_score", "issues", "corrections", "positives", "overall_feedback",
	} {
		assert.Contains(t, analysis, field)
	}
	assert.Equal(t, 8.0, analysis["form_score"])
}

func TestAnalyzePoses_GarbledReplyStillComplete(t *testing.T) {
	e := newServer(t, &stubGenerator{reply: "I will not produce JSON."})
	rec := do(e, http.MethodPost, "/analyze-poses", specExamplePoses)

	require.Equal(t, http.StatusOK, rec.Code, "fallback is not an error")
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	analysis := body["analysis"].(map[string]any)
	for _, field := range []string{
		"exercise_name", "form_score", "issues", "corrections", "positives", "overall_feedback",
	} {
		assert.Contains(t, analysis, field)
	}
	assert.Equal(t, "I will not produce JSON.", analysis["raw_response"])
}

func TestAnalyzePoses_MissingPoses(t *testing.T) {
	e := newServer(t, &stubGenerator{})
	rec := do(e, http.MethodPost, "/analyze-poses", `{"exercise": "squat"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Missing 'poses' in request body", body["error"])
}

func TestAnalyzePoses_EmptyPoses(t *testing.T) {
	e := newServer(t, &stubGenerator{})
	rec := do(e, http.MethodPost, "/analyze-poses", `{"poses": []}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Poses list is empty", decodeBody(t, rec)["error"])
}

func TestAnalyzePoses_MalformedBody(t *testing.T) {
	e := newServer(t, &stubGenerator{})
	rec := do(e, http.MethodPost, "/analyze-poses", `{"poses": [`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestAnalyzePoses_GatewayFailure(t *testing.T) {
	e := newServer(t, &stubGenerator{err: domain.ErrUpstreamModel})
	rec := do(e, http.MethodPost, "/analyze-poses", specExamplePoses)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestRealTimeFeedback_NoPoses(t *testing.T) {
	e := newServer(t, &stubGenerator{})

	for _, body := range []string{`{}`, `{"poses": []}`} {
		rec := do(e, http.MethodPost, "/real-time-feedback", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No pose data provided", decodeBody(t, rec)["error"])
	}
}

func TestRealTimeFeedback_Success(t *testing.T) {
	e := newServer(t, &stubGenerator{reply: `{"critical_issues": ["knees"], "immediate_action": "Slow down"}`})
	rec := do(e, http.MethodPost, "/real-time-feedback", specExamplePoses)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	feedback := body["feedback"].(map[string]any)
	assert.Equal(t, "Slow down", feedback["immediate_action"])
}

func TestAnalyzeAngles_NoData(t *testing.T) {
	e := newServer(t, &stubGenerator{})

	for _, body := range []string{"", `{}`, `null`} {
		rec := do(e, http.MethodPost, "/analyze-angles", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.Equal(t, "No data provided", decodeBody(t, rec)["error"])
	}
}

func TestAnalyzeAngles_EchoesInput(t *testing.T) {
	e := newServer(t, &stubGenerator{reply: `{"form_quality": "good", "corrections": [], "encouragement": "Nice"}`})
	reqBody := `{
		"exercise_name": "squat",
		"angles": {"leftKnee": 92.5, "rightKnee": null},
		"form_issues": [{"type": "depth", "description": "Too shallow", "severity": "warning"}]
	}`
	rec := do(e, http.MethodPost, "/analyze-angles", reqBody)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["form_issues_count"])

	angles := body["angles"].(map[string]any)
	assert.Equal(t, 92.5, angles["leftKnee"])

	analysis := body["analysis"].(map[string]any)
	assert.Equal(t, "good", analysis["form_quality"])
}

func TestAnalyzeFormIssue_NoData(t *testing.T) {
	e := newServer(t, &stubGenerator{})
	rec := do(e, http.MethodPost, "/analyze-form-issue", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No data provided", decodeBody(t, rec)["error"])
}

func TestAnalyzeFormIssue_EchoesIssue(t *testing.T) {
	e := newServer(t, &stubGenerator{reply: `{"quick_fix": "Sit back", "why_it_matters": "why", "cue": "Hips first"}`})
	reqBody := `{
		"exercise_name": "squat",
		"issue": {"type": "knee_travel", "description": "Knees past toes", "severity": "warning"}
	}`
	rec := do(e, http.MethodPost, "/analyze-form-issue", reqBody)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	coaching := body["coaching"].(map[string]any)
	assert.Equal(t, "Sit back", coaching["quick_fix"])

	issue := body["issue"].(map[string]any)
	assert.Equal(t, "knee_travel", issue["type"])
}

func TestRequestIDHeader(t *testing.T) {
	e := newServer(t, &stubGenerator{})
	rec := do(e, http.MethodGet, "/health", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
