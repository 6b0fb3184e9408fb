package speaker

import (
	"strings"

	"interview-questions-go/internal/chunker"
	"interview-questions-go/internal/parser"
	"interview-questions-go/internal/types"
)

// RoleMap maps a raw transcription speaker tag to its inferred role.
// Computed once per transcript and passed into Attribute; no state is
// shared across calls.
type RoleMap map[string]types.Speaker

// RoleInferencer derives the role map for one transcript. Pluggable so
// the heuristic can be swapped without touching attribution.
type RoleInferencer func(types.Transcript) RoleMap

// InferRoles is the default heuristic: the tagged speaker who asks the
// most question-marked sentences across the whole transcript is the
// interviewer; every other tagged speaker is an interviewee. A tie goes
// to the speaker who appears first. When no speaker asks anything there
// is no basis for inference and all tags map to unknown.
func InferRoles(t types.Transcript) RoleMap {
	questions := map[string]int{}
	var order []string

	for _, u := range t {
		if u.Speaker == "" {
			continue
		}
		if _, seen := questions[u.Speaker]; !seen {
			order = append(order, u.Speaker)
		}
		questions[u.Speaker] += strings.Count(u.Text, "?")
	}

	if len(order) == 0 {
		return RoleMap{}
	}

	interviewer := ""
	best := 0
	for _, tag := range order {
		if questions[tag] > best {
			best = questions[tag]
			interviewer = tag
		}
	}

	roles := make(RoleMap, len(order))
	for _, tag := range order {
		switch {
		case best == 0:
			roles[tag] = types.SpeakerUnknown
		case tag == interviewer:
			roles[tag] = types.SpeakerInterviewer
		default:
			roles[tag] = types.SpeakerInterviewee
		}
	}
	return roles
}

// Attribute assigns a speaker role to one candidate. Transcript tags win:
// if the candidate's text can be matched to a tagged utterance in its
// chunk, that utterance's role is used. The model's own speaker hint is
// trusted only when the transcript carries no tags at all. Everything
// else is unknown.
func Attribute(c parser.RawQuestionCandidate, chunk chunker.Chunk, roles RoleMap) types.Speaker {
	if u, ok := matchUtterance(c.Text, chunk.Utterances); ok && u.Speaker != "" {
		if role, ok := roles[u.Speaker]; ok {
			return role
		}
	}

	if len(roles) == 0 && c.SpeakerHint != "" {
		return types.NormalizeSpeaker(c.SpeakerHint)
	}

	return types.SpeakerUnknown
}

// matchUtterance finds the utterance the candidate text came from by
// normalized containment in either direction. LLMs echo question text
// near-verbatim, so containment is usually enough.
func matchUtterance(text string, utts types.Transcript) (types.Utterance, bool) {
	needle := normalize(text)
	if needle == "" {
		return types.Utterance{}, false
	}
	for _, u := range utts {
		hay := normalize(u.Text)
		if hay == "" {
			continue
		}
		if strings.Contains(hay, needle) || strings.Contains(needle, hay) {
			return u, true
		}
	}
	return types.Utterance{}, false
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
