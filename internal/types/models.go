package types

import "strings"

// Speaker is the role a question is attributed to.
type Speaker string

const (
	SpeakerInterviewer Speaker = "interviewer"
	SpeakerInterviewee Speaker = "interviewee"
	SpeakerUnknown     Speaker = "unknown"
)

// AllSpeakers lists every speaker bucket the output artifact must carry,
// in serialization order.
func AllSpeakers() []Speaker {
	return []Speaker{SpeakerInterviewer, SpeakerInterviewee, SpeakerUnknown}
}

// NormalizeSpeaker maps free-form speaker labels onto the closed set.
// Anything unrecognized becomes unknown.
func NormalizeSpeaker(s string) Speaker {
	switch Speaker(strings.ToLower(strings.TrimSpace(s))) {
	case SpeakerInterviewer:
		return SpeakerInterviewer
	case SpeakerInterviewee:
		return SpeakerInterviewee
	default:
		return SpeakerUnknown
	}
}

// QuestionType is the category assigned to a question.
type QuestionType string

const (
	TypeTechnical  QuestionType = "technical"
	TypeBehavioral QuestionType = "behavioral"
	TypeGeneral    QuestionType = "general"
)

// AllQuestionTypes lists every type bucket the output artifact must carry.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{TypeTechnical, TypeBehavioral, TypeGeneral}
}

// NormalizeQuestionType maps free-form type labels onto the closed set.
// Anything unrecognized becomes general.
func NormalizeQuestionType(s string) QuestionType {
	switch QuestionType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeTechnical:
		return TypeTechnical
	case TypeBehavioral:
		return TypeBehavioral
	default:
		return TypeGeneral
	}
}

// Utterance is one timed segment of a transcript. Speaker is the raw tag
// from the transcription engine and may be empty when the engine does not
// diarize.
type Utterance struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

// Transcript is the ordered utterance sequence for one video. It is
// immutable once produced by the transcription engine.
type Transcript []Utterance

// Text joins all utterances into the full transcript text, separated by
// single spaces. Used for the plain-text transcript artifact and by the
// chunker's round-trip guarantee.
func (t Transcript) Text() string {
	parts := make([]string, 0, len(t))
	for _, u := range t {
		if s := strings.TrimSpace(u.Text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Tagged reports whether any utterance carries a speaker tag.
func (t Transcript) Tagged() bool {
	for _, u := range t {
		if u.Speaker != "" {
			return true
		}
	}
	return false
}

// Question is one validated, categorized interview question.
type Question struct {
	Question string       `json:"question"`
	Speaker  Speaker      `json:"speaker"`
	Type     QuestionType `json:"type"`
}

// QuestionSet is the final per-video artifact. Every question appears in
// AllQuestions exactly once and in exactly one BySpeaker bucket and one
// ByType bucket; TotalQuestions always equals len(AllQuestions).
type QuestionSet struct {
	VideoName      string                      `json:"video_name"`
	TotalQuestions int                         `json:"total_questions"`
	BySpeaker      map[Speaker][]Question      `json:"by_speaker"`
	ByType         map[QuestionType][]Question `json:"by_type"`
	AllQuestions   []Question                  `json:"all_questions"`
}
