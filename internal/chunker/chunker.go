package chunker

import (
	"strings"

	"interview-questions-go/internal/types"
)

// charsPerToken is the rough character-to-token ratio used to keep chunks
// under the model's context budget.
const charsPerToken = 4

// Chunk is a contiguous run of whole utterances bounded by the token
// budget. StartUtterance is the absolute index of its first utterance in
// the transcript, which speaker attribution relies on.
type Chunk struct {
	Index          int
	StartUtterance int
	Utterances     types.Transcript
}

// Text joins the chunk's utterances into the text sent to the LLM.
func (c Chunk) Text() string {
	parts := make([]string, 0, len(c.Utterances))
	for _, u := range c.Utterances {
		if s := strings.TrimSpace(u.Text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// EstimateTokens approximates the token count of a string.
func EstimateTokens(s string) int {
	return (len(s) + charsPerToken - 1) / charsPerToken
}

// Split cuts a transcript into chunks of at most budgetTokens each,
// always on utterance boundaries. An utterance that alone exceeds the
// budget becomes its own oversized chunk; content is never dropped, so
// concatenating all chunk texts reproduces the transcript text exactly.
// An empty transcript yields no chunks.
func Split(t types.Transcript, budgetTokens int) []Chunk {
	if budgetTokens <= 0 {
		budgetTokens = 1
	}
	budgetChars := budgetTokens * charsPerToken

	var chunks []Chunk
	var current types.Transcript
	currentStart := 0
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Index:          len(chunks),
			StartUtterance: currentStart,
			Utterances:     current,
		})
		current = nil
		currentLen = 0
	}

	for i, u := range t {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}
		cost := len(text)
		if len(current) > 0 {
			cost++ // joining space
		}
		if currentLen+cost > budgetChars && len(current) > 0 {
			flush()
			cost = len(text)
		}
		if len(current) == 0 {
			currentStart = i
		}
		current = append(current, u)
		currentLen += cost
	}
	flush()

	return chunks
}
