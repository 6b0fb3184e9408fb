package parser

import (
	"encoding/json"
	"strings"
)

// RawQuestionCandidate is the unvalidated output of parsing one LLM
// reply entry. Hints are free-form model labels, normalized downstream.
type RawQuestionCandidate struct {
	Text        string
	SpeakerHint string
	TypeHint    string
}

// candidateJSON is the shape the prompt asks the model for. Fields are
// decoded loosely; anything missing stays empty.
type candidateJSON struct {
	Question string `json:"question"`
	Speaker  string `json:"speaker"`
	Type     string `json:"type"`
}

// Parse extracts question candidates from a raw LLM reply. It never
// fails: a reply with no parseable candidates yields an empty slice.
// Malformed array entries are skipped, well-formed ones in the same
// reply are still extracted. When no JSON array is present at all the
// reply is scanned line by line for question-shaped text.
func Parse(raw string) []RawQuestionCandidate {
	payload := extractJSONArray(raw)
	if payload == "" {
		return parseLines(raw)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &elements); err != nil {
		return parseLines(raw)
	}

	candidates := make([]RawQuestionCandidate, 0, len(elements))
	for _, el := range elements {
		var c candidateJSON
		if err := json.Unmarshal(el, &c); err != nil {
			continue
		}
		text := strings.TrimSpace(c.Question)
		if text == "" {
			continue
		}
		candidates = append(candidates, RawQuestionCandidate{
			Text:        text,
			SpeakerHint: c.Speaker,
			TypeHint:    c.Type,
		})
	}
	return candidates
}

// extractJSONArray finds the first balanced JSON array in a string and
// returns it. Markdown fences are stripped first, since models wrap
// payloads in them despite instructions.
func extractJSONArray(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, fence := range []string{"```json", "```yaml", "```text", "```", "`json", "`"} {
		s = strings.ReplaceAll(s, fence, "")
	}

	start := strings.Index(s, "[")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}

	return ""
}

// parseLines is the fallback for prose replies: any line containing a
// question mark and long enough to be a real question becomes a
// candidate with no hints.
func parseLines(raw string) []RawQuestionCandidate {
	var candidates []RawQuestionCandidate
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.Contains(line, "?") && len(line) > 10 {
			candidates = append(candidates, RawQuestionCandidate{Text: line})
		}
	}
	return candidates
}
