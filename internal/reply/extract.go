// Package reply recovers structured payloads from the model gateway's
// free-form text output.
package reply

import "strings"

const (
	fenceMarker     = "```"
	jsonFenceMarker = "```json"
)

// Extract locates the best-effort JSON candidate inside raw model output.
// Precedence, which callers depend on: a json-tagged fence beats any bare
// fence, which beats a brace span, which beats the raw text. The bare-fence
// branch pairs the first marker with the LAST one, deliberately surviving
// replies that only close the second of two fences. The brace branch takes
// the first '{' through the last '}', which mis-extracts when a reply holds
// two sibling JSON objects; that limitation is accepted.
//
// Extract never fails; validity checking belongs to the parse step.
func Extract(raw string) string {
	text := strings.TrimSpace(raw)

	if i := strings.Index(text, jsonFenceMarker); i >= 0 {
		start := i + len(jsonFenceMarker)
		rest := text[start:]
		if j := strings.Index(rest, fenceMarker); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
		// Unclosed fence: everything after the opener.
		return strings.TrimSpace(rest)
	}

	if i := strings.Index(text, fenceMarker); i >= 0 {
		start := i + len(fenceMarker)
		end := strings.LastIndex(text, fenceMarker)
		if end < start {
			// A single fence is its own opener and closer.
			return ""
		}
		return strings.TrimSpace(text[start:end])
	}

	open := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if open >= 0 && last >= 0 {
		if last < open {
			return ""
		}
		return text[open : last+1]
	}

	return text
}
