package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LandmarkObservation is one skeletal keypoint as detected by the client's
// pose tracker. Confidence may be absent or non-numeric on the wire;
// ConfidenceKnown is false in that case and the observation never passes
// the reporting threshold.
type LandmarkObservation struct {
	Name            string
	X, Y, Z         float64
	Confidence      float64
	ConfidenceKnown bool
}

// PoseFrame is one detected person at one instant. Landmarks is nil when the
// wire object had no "landmarks" key at all, and an empty non-nil slice when
// the key was present but held no entries; the formatter renders the two
// differently.
type PoseFrame struct {
	Landmarks []LandmarkObservation
}

// UnmarshalJSON decodes the wire form {"landmarks": {name: {...}, ...}}.
// A plain map would randomize landmark order, so the mapping is walked with a
// token scan to keep document order. Landmark values that are not JSON
// objects are skipped.
func (f *PoseFrame) UnmarshalJSON(data []byte) error {
	var wire struct {
		Landmarks json.RawMessage `json:"landmarks"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	raw := bytes.TrimSpace(wire.Landmarks)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		f.Landmarks = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("landmarks: expected object, got %v", tok)
	}

	obs := []LandmarkObservation{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}

		lm, ok := decodeLandmark(name, value)
		if !ok {
			continue
		}
		obs = append(obs, lm)
	}

	f.Landmarks = obs
	return nil
}

func decodeLandmark(name string, raw json.RawMessage) (LandmarkObservation, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return LandmarkObservation{}, false
	}

	lm := LandmarkObservation{Name: name}
	lm.X, _ = numberField(fields["x"])
	lm.Y, _ = numberField(fields["y"])
	lm.Z, _ = numberField(fields["z"])
	lm.Confidence, lm.ConfidenceKnown = numberField(fields["confidence"])
	return lm, true
}

func numberField(raw json.RawMessage) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

// AngleReading maps joint names to smoothed angle values in degrees.
// A nil entry means the angle was not computed this frame and is skipped,
// never rendered as 0.
type AngleReading map[string]*float64

// FormIssue is a problem detected by the client's biomechanics layer.
type FormIssue struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// AnalysisResult is the full-form feedback payload.
type AnalysisResult struct {
	ExerciseName    string   `json:"exercise_name"`
	FormScore       float64  `json:"form_score"`
	Issues          []string `json:"issues"`
	Corrections     []string `json:"corrections"`
	Positives       []string `json:"positives"`
	OverallFeedback string   `json:"overall_feedback"`
	RawResponse     string   `json:"raw_response,omitempty"`
}

// RealTimeFeedback is the snapshot feedback payload. CriticalIssues carries
// at most 3 entries.
type RealTimeFeedback struct {
	CriticalIssues  []string `json:"critical_issues"`
	ImmediateAction string   `json:"immediate_action"`
}

// AngleAnalysis is the angle-based feedback payload. FormQuality is nominally
// excellent/good/needs_improvement/poor but the model's value is not enforced.
type AngleAnalysis struct {
	FormQuality   string   `json:"form_quality"`
	Corrections   []string `json:"corrections"`
	Encouragement string   `json:"encouragement"`
}

// IssueCoaching is the single-issue coaching payload.
type IssueCoaching struct {
	QuickFix     string `json:"quick_fix"`
	WhyItMatters string `json:"why_it_matters"`
	Cue          string `json:"cue"`
}

// Mode selects which feedback template and payload schema a pipeline run uses.
type Mode int

const (
	ModeAnalysis Mode = iota
	ModeRealTime
	ModeAngles
	ModeIssue
)

func (m Mode) String() string {
	switch m {
	case ModeAnalysis:
		return "analysis"
	case ModeRealTime:
		return "real_time"
	case ModeAngles:
		return "angles"
	case ModeIssue:
		return "issue"
	default:
		return "unknown"
	}
}
