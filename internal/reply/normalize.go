package reply

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/domain"
)

// Each feedback mode declares its schema as a field table; after a successful
// parse the table is applied uniformly, so a payload is complete even when the
// model skipped fields. When the candidate does not parse to a JSON object the
// mode's fallback payload preserves the raw model text in its designated
// field, so no information is discarded. The returned bool is false on that
// fallback path; callers log it, but it is never an error.

const (
	neutralScore = 5
	maxCritical  = 3
	maxCueLen    = 50
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindList
	kindScore
)

type fieldSpec struct {
	name string
	kind fieldKind
}

var (
	analysisSchema = []fieldSpec{
		{"exercise_name", kindText},
		{"form_score", kindScore},
		{"issues", kindList},
		{"corrections", kindList},
		{"positives", kindList},
		{"overall_feedback", kindText},
	}
	realTimeSchema = []fieldSpec{
		{"critical_issues", kindList},
		{"immediate_action", kindText},
	}
	anglesSchema = []fieldSpec{
		{"form_quality", kindText},
		{"corrections", kindList},
		{"encouragement", kindText},
	}
	issueSchema = []fieldSpec{
		{"quick_fix", kindText},
		{"why_it_matters", kindText},
		{"cue", kindText},
	}
)

// NormalizeAnalysis produces a complete AnalysisResult from the extracted
// candidate. raw is the trimmed full model text, kept verbatim on fallback;
// exercise seeds the fallback exercise name.
func NormalizeAnalysis(candidate, raw, exercise string) (domain.AnalysisResult, bool) {
	obj, ok := parseObject(candidate)
	if !ok {
		if exercise == "" {
			exercise = "Unknown"
		}
		return domain.AnalysisResult{
			ExerciseName:    exercise,
			FormScore:       neutralScore,
			Issues:          []string{"Unable to parse detailed analysis"},
			Corrections:     []string{"Review the raw feedback below"},
			Positives:       []string{},
			OverallFeedback: raw,
			RawResponse:     raw,
		}, false
	}

	f := fill(obj, analysisSchema)
	return domain.AnalysisResult{
		ExerciseName:    f.text("exercise_name"),
		FormScore:       f.score("form_score"),
		Issues:          f.list("issues"),
		Corrections:     f.list("corrections"),
		Positives:       f.list("positives"),
		OverallFeedback: f.text("overall_feedback"),
	}, true
}

// NormalizeRealTime produces a complete RealTimeFeedback. critical_issues is
// capped at 3 entries after defaulting, first entries retained.
func NormalizeRealTime(candidate, raw string) (domain.RealTimeFeedback, bool) {
	obj, ok := parseObject(candidate)
	if !ok {
		return domain.RealTimeFeedback{
			CriticalIssues:  []string{"Form check in progress"},
			ImmediateAction: raw,
		}, false
	}

	f := fill(obj, realTimeSchema)
	issues := f.list("critical_issues")
	if len(issues) > maxCritical {
		issues = issues[:maxCritical]
	}
	return domain.RealTimeFeedback{
		CriticalIssues:  issues,
		ImmediateAction: f.text("immediate_action"),
	}, true
}

// NormalizeAngles produces a complete AngleAnalysis.
func NormalizeAngles(candidate, raw string) (domain.AngleAnalysis, bool) {
	obj, ok := parseObject(candidate)
	if !ok {
		return domain.AngleAnalysis{
			FormQuality:   "needs_improvement",
			Corrections:   []string{"Review the detected form issues"},
			Encouragement: raw,
		}, false
	}

	f := fill(obj, anglesSchema)
	return domain.AngleAnalysis{
		FormQuality:   f.text("form_quality"),
		Corrections:   f.list("corrections"),
		Encouragement: f.text("encouragement"),
	}, true
}

// NormalizeIssue produces a complete IssueCoaching. On fallback the salvaged
// text is truncated to 50 characters for the cue field only.
func NormalizeIssue(candidate, raw string) (domain.IssueCoaching, bool) {
	obj, ok := parseObject(candidate)
	if !ok {
		return domain.IssueCoaching{
			QuickFix:     "Adjust your form based on the detected issue",
			WhyItMatters: "Proper form prevents injury and improves results",
			Cue:          truncate(raw, maxCueLen),
		}, false
	}

	f := fill(obj, issueSchema)
	return domain.IssueCoaching{
		QuickFix:     f.text("quick_fix"),
		WhyItMatters: f.text("why_it_matters"),
		Cue:          f.text("cue"),
	}, true
}

// parseObject parses candidate as a single JSON object. Trailing content
// after the first value fails the parse, as does any non-object value.
func parseObject(candidate string) (map[string]any, bool) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}

	obj, ok := v.(map[string]any)
	return obj, ok
}

type filled map[string]any

// fill applies a schema table to a parsed object: every declared field comes
// out coerced to its kind, absent fields get the kind's default.
func fill(obj map[string]any, schema []fieldSpec) filled {
	out := make(filled, len(schema))
	for _, spec := range schema {
		switch spec.kind {
		case kindText:
			out[spec.name] = coerceText(obj[spec.name])
		case kindList:
			out[spec.name] = coerceList(obj[spec.name])
		case kindScore:
			out[spec.name] = coerceScore(obj[spec.name])
		}
	}
	return out
}

func (f filled) text(name string) string   { return f[name].(string) }
func (f filled) list(name string) []string { return f[name].([]string) }
func (f filled) score(name string) float64 { return f[name].(float64) }

func coerceText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return compactJSON(v)
	}
}

func coerceList(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, len(t))
		for i, item := range t {
			out[i] = coerceText(item)
		}
		return out
	default:
		// A scalar where a list was expected keeps its content as the
		// single entry instead of dropping it.
		return []string{coerceText(v)}
	}
}

func coerceScore(v any) float64 {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Float64(); err == nil {
			return n
		}
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return n
		}
	}
	return neutralScore
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
