package prompt

import (
	"fmt"
	"strings"
)

// questionPrompt is the instruction template sent with every chunk. The
// model must answer with a bare JSON array so the parser has a stable
// contract; anything else goes through the tolerant fallback path.
const questionPrompt = `You are an interview analysis engine.

Analyze the following interview transcript excerpt and extract every
question that was asked or clearly implied in the text.

For each question provide:
1. The exact question text
2. Who asked it: "interviewer" or "interviewee" (use "unknown" if unclear)
3. The question type, exactly one of: "technical", "behavioral", "general"

Return ONLY a JSON array where each item has the keys:
- "question": the exact question text
- "speaker": "interviewer", "interviewee" or "unknown"
- "type": "technical", "behavioral" or "general"

Do NOT include commentary, markdown fences or any text outside the JSON
array. If the excerpt contains no questions, return [].

%s

Transcript excerpt:
%s
`

// Build produces the deterministic prompt for one chunk. language is the
// transcript language as detected or configured ("ru", "en" or "auto").
func Build(chunkText, language string) string {
	return fmt.Sprintf(questionPrompt, languageNote(language), chunkText)
}

func languageNote(language string) string {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "ru":
		return "The transcript is in Russian. Keep question text in Russian."
	case "en":
		return "The transcript is in English. Keep question text in English."
	default:
		return "The transcript may be in Russian or English. Analyze both appropriately and keep each question in its original language."
	}
}
