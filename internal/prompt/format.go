// Package prompt renders pose, angle, and issue data into text blocks and
// wraps them in the fixed instruction templates sent to the model gateway.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/domain"
)

// FormatPoses renders pose frames as the POSE DATA ANALYSIS block. relevant
// is the set of landmark names diagnostic for the exercise; nil means no
// filter. Only observations with a numeric confidence strictly above
// threshold are rendered, in the frame's own landmark order.
func FormatPoses(frames []domain.PoseFrame, relevant []string, threshold float64) string {
	var keep map[string]bool
	if relevant != nil {
		keep = make(map[string]bool, len(relevant))
		for _, name := range relevant {
			keep[name] = true
		}
	}

	var b strings.Builder
	b.WriteString("POSE DATA ANALYSIS:\n\n")

	for i, frame := range frames {
		fmt.Fprintf(&b, "Person %d:\n", i+1)

		// A frame without a landmarks key gets no block at all, not even
		// the trailing blank line.
		if frame.Landmarks == nil {
			continue
		}

		for _, lm := range frame.Landmarks {
			if keep != nil && !keep[lm.Name] {
				continue
			}
			if !lm.ConfidenceKnown || lm.Confidence <= threshold {
				continue
			}
			fmt.Fprintf(&b, "  • %s: x=%.2f, y=%.2f, z=%.2f (conf: %.2f)\n",
				lm.Name, lm.X, lm.Y, lm.Z, lm.Confidence)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// FormatAngles renders the BIOMECHANICAL ANALYSIS block: joint angles plus
// the detected form issues when any were supplied. Joints render in sorted
// order so identical input always produces an identical prompt.
func FormatAngles(exercise string, angles domain.AngleReading, issues []domain.FormIssue) string {
	var b strings.Builder
	b.WriteString("BIOMECHANICAL ANALYSIS:\n\n")
	fmt.Fprintf(&b, "Exercise: %s\n\n", exercise)
	b.WriteString("Current Joint Angles:\n")
	writeAngleLines(&b, angles)

	if len(issues) > 0 {
		b.WriteString("\nDetected Form Issues:\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "  - %s: %s\n", orDefault(issue.Type, "unknown"),
				orDefault(issue.Description, "No description"))
			fmt.Fprintf(&b, "    Severity: %s\n", orDefault(issue.Severity, "unknown"))
		}
	}

	return b.String()
}

// FormatIssue renders the FORM ISSUE DETECTED block for a single issue.
func FormatIssue(exercise string, issue domain.FormIssue, angles domain.AngleReading) string {
	var b strings.Builder
	b.WriteString("FORM ISSUE DETECTED:\n\n")
	fmt.Fprintf(&b, "Exercise: %s\n", exercise)
	fmt.Fprintf(&b, "Issue Type: %s\n", orDefault(issue.Type, "unknown"))
	fmt.Fprintf(&b, "Severity: %s\n", orDefault(issue.Severity, "warning"))
	fmt.Fprintf(&b, "Description: %s\n", orDefault(issue.Description, "Form issue detected"))
	b.WriteString("\nCurrent Joint Angles:\n")
	writeAngleLines(&b, angles)
	return b.String()
}

func writeAngleLines(b *strings.Builder, angles domain.AngleReading) {
	joints := make([]string, 0, len(angles))
	for joint := range angles {
		joints = append(joints, joint)
	}
	sort.Strings(joints)

	for _, joint := range joints {
		angle := angles[joint]
		if angle == nil {
			continue
		}
		fmt.Fprintf(b, "  %s: %.1f°\n", joint, *angle)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
