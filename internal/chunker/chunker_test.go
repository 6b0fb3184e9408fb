package chunker

import (
	"strings"
	"testing"

	"interview-questions-go/internal/types"
)

func transcriptOf(texts ...string) types.Transcript {
	t := make(types.Transcript, 0, len(texts))
	for i, s := range texts {
		t = append(t, types.Utterance{
			Start: float64(i),
			End:   float64(i + 1),
			Text:  s,
		})
	}
	return t
}

func joinChunks(chunks []Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Text())
	}
	return strings.Join(parts, " ")
}

func TestSplitRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		texts  []string
		budget int
	}{
		{
			name:   "single small utterance",
			texts:  []string{"Tell me about your experience?"},
			budget: 3000,
		},
		{
			name:   "many utterances tiny budget",
			texts:  []string{"First sentence here.", "Second sentence here.", "Third one.", "And a fourth."},
			budget: 5,
		},
		{
			name:   "utterance exceeding budget",
			texts:  []string{"short", strings.Repeat("long words repeated ", 50), "tail"},
			budget: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := transcriptOf(tt.texts...)
			chunks := Split(tr, tt.budget)

			if got, want := joinChunks(chunks), tr.Text(); got != want {
				t.Errorf("round trip mismatch:\ngot  %q\nwant %q", got, want)
			}
		})
	}
}

func TestSplitBudget(t *testing.T) {
	texts := []string{
		"Alpha beta gamma delta.",
		"Epsilon zeta eta theta.",
		"Iota kappa lambda mu.",
	}
	budget := 8 // 32 chars, enough for one utterance per chunk only
	chunks := Split(transcriptOf(texts...), budget)

	for _, c := range chunks {
		if len(c.Utterances) == 1 {
			continue // a single utterance may legitimately exceed the budget
		}
		if got := EstimateTokens(c.Text()); got > budget {
			t.Errorf("chunk %d has %d tokens, budget %d", c.Index, got, budget)
		}
	}
	if len(chunks) < 2 {
		t.Errorf("expected multiple chunks under tight budget, got %d", len(chunks))
	}
}

func TestSplitOversizedUtteranceKeptWhole(t *testing.T) {
	huge := strings.Repeat("word ", 200)
	chunks := Split(transcriptOf("intro.", huge, "outro."), 10)

	found := false
	for _, c := range chunks {
		if strings.TrimSpace(c.Text()) == strings.TrimSpace(huge) {
			found = true
			if len(c.Utterances) != 1 {
				t.Errorf("oversized utterance should be alone in its chunk, got %d utterances", len(c.Utterances))
			}
		}
	}
	if !found {
		t.Error("oversized utterance was not kept whole in its own chunk")
	}
}

func TestSplitEmptyTranscript(t *testing.T) {
	if got := Split(nil, 3000); len(got) != 0 {
		t.Errorf("empty transcript should yield no chunks, got %d", len(got))
	}
	if got := Split(transcriptOf("", "  "), 3000); len(got) != 0 {
		t.Errorf("blank-only transcript should yield no chunks, got %d", len(got))
	}
}

func TestSplitStartUtterance(t *testing.T) {
	texts := []string{
		"One two three four five six.",
		"Seven eight nine ten eleven.",
		"Twelve thirteen fourteen.",
	}
	chunks := Split(transcriptOf(texts...), 8)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if chunks[0].StartUtterance != 0 {
		t.Errorf("first chunk StartUtterance = %d, want 0", chunks[0].StartUtterance)
	}
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		want := prev.StartUtterance + len(prev.Utterances)
		if chunks[i].StartUtterance != want {
			t.Errorf("chunk %d StartUtterance = %d, want %d", i, chunks[i].StartUtterance, want)
		}
	}
}

func TestSplitSingleChunkUnderDefaultBudget(t *testing.T) {
	tr := transcriptOf(
		"Tell me about your Python experience?",
		"I used it for five years.",
	)
	chunks := Split(tr, 3000)
	if len(chunks) != 1 {
		t.Fatalf("expected one chunk, got %d", len(chunks))
	}
	if chunks[0].Index != 0 || chunks[0].StartUtterance != 0 {
		t.Errorf("unexpected chunk metadata: %+v", chunks[0])
	}
}
