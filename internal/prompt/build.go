package prompt

import "fmt"

// The four templates are a contract with the model gateway: each one demands
// a specific JSON shape and ends with an explicit JSON-only instruction.
// Models violate that instruction often enough that the reply package assumes
// prose and code fences around the payload.

const analysisTemplate = `You are an expert personal trainer and biomechanics specialist analyzing exercise form.

EXERCISE: %s

%s

ANALYSIS REQUIRED:
Analyze the body positioning and movement patterns. Provide structured feedback in JSON format.

RESPONSE FORMAT (strict JSON):
{
  "exercise_name": "identified or confirmed exercise name",
  "form_score": <number 0-10>,
  "issues": ["issue 1", "issue 2", ...],
  "corrections": ["specific correction 1", "specific correction 2", ...],
  "positives": ["positive aspect 1", "positive aspect 2", ...],
  "overall_feedback": "brief summary in 2-3 sentences"
}

FOCUS ON:
- Joint angles and alignment
- Weight distribution
- Range of motion
- Common form mistakes for this exercise
- Safety considerations

Respond ONLY with valid JSON.`

const realTimeTemplate = `You are a real-time fitness coach. Analyze this pose snapshot.

EXERCISE: %s

%s

Provide IMMEDIATE, ACTIONABLE feedback. Focus on the most critical issue RIGHT NOW.

RESPONSE FORMAT (strict JSON):
{
  "critical_issues": ["issue 1", "issue 2", "issue 3"],
  "immediate_action": "One clear instruction to fix the main problem"
}

Keep it SHORT and SPECIFIC. Respond ONLY with valid JSON.`

const anglesTemplate = `You are an expert biomechanics coach analyzing exercise form.

%s

Based on these joint angles and detected issues, provide:
1. Assessment of the current form quality
2. Specific corrections needed (if any)
3. Encouragement or advice

RESPONSE FORMAT (strict JSON):
{
  "form_quality": "excellent/good/needs_improvement/poor",
  "corrections": ["correction 1", "correction 2"],
  "encouragement": "Brief motivational message"
}

Respond ONLY with valid JSON.`

const issueTemplate = `%s

As an expert coach, provide IMMEDIATE, SPECIFIC instructions to fix this issue.

RESPONSE FORMAT (strict JSON):
{
  "quick_fix": "One clear instruction to correct this immediately",
  "why_it_matters": "Brief explanation of the risk/benefit",
  "cue": "Simple mental cue to remember (e.g., 'Chest up', 'Knees out')"
}

Respond ONLY with valid JSON.`

// BuildAnalysis composes the full-form analysis prompt. An empty exercise
// name asks the model to identify the exercise itself.
func BuildAnalysis(exercise, poseText string) string {
	if exercise == "" {
		exercise = "Unknown - identify it"
	}
	return fmt.Sprintf(analysisTemplate, exercise, poseText)
}

// BuildRealTime composes the snapshot-feedback prompt.
func BuildRealTime(exercise, poseText string) string {
	return fmt.Sprintf(realTimeTemplate, exercise, poseText)
}

// BuildAngles composes the angle-based analysis prompt around a rendered
// BIOMECHANICAL ANALYSIS block.
func BuildAngles(angleText string) string {
	return fmt.Sprintf(anglesTemplate, angleText)
}

// BuildIssue composes the single-issue coaching prompt around a rendered
// FORM ISSUE DETECTED block.
func BuildIssue(issueText string) string {
	return fmt.Sprintf(issueTemplate, issueText)
}
