package aggregator

import (
	"strings"

	"interview-questions-go/internal/types"
)

// Aggregate merges the ordered questions extracted across all chunks
// into the final per-video artifact. Question text is whitespace
// normalized, duplicates are dropped keeping the first occurrence
// (case-insensitive), and the result is partitioned into complete
// by-speaker and by-type maps: every enum key is present even when its
// bucket is empty. TotalQuestions is counted after deduplication.
// Aggregating an already aggregated AllQuestions list yields the same
// result.
func Aggregate(videoName string, questions []types.Question) types.QuestionSet {
	set := types.QuestionSet{
		VideoName:    videoName,
		BySpeaker:    map[types.Speaker][]types.Question{},
		ByType:       map[types.QuestionType][]types.Question{},
		AllQuestions: []types.Question{},
	}
	for _, s := range types.AllSpeakers() {
		set.BySpeaker[s] = []types.Question{}
	}
	for _, t := range types.AllQuestionTypes() {
		set.ByType[t] = []types.Question{}
	}

	seen := map[string]bool{}
	for _, q := range questions {
		text := normalizeText(q.Question)
		if text == "" {
			continue
		}
		key := strings.ToLower(text)
		if seen[key] {
			continue
		}
		seen[key] = true

		q.Question = text
		q.Speaker = types.NormalizeSpeaker(string(q.Speaker))
		q.Type = types.NormalizeQuestionType(string(q.Type))

		set.AllQuestions = append(set.AllQuestions, q)
		set.BySpeaker[q.Speaker] = append(set.BySpeaker[q.Speaker], q)
		set.ByType[q.Type] = append(set.ByType[q.Type], q)
	}

	set.TotalQuestions = len(set.AllQuestions)
	return set
}

// normalizeText trims and collapses internal whitespace.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
