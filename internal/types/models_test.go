package types

import "testing"

func TestTranscriptText(t *testing.T) {
	tr := Transcript{
		{Text: " Hello there. "},
		{Text: ""},
		{Text: "How are you?"},
	}
	if got, want := tr.Text(), "Hello there. How are you?"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if got := (Transcript{}).Text(); got != "" {
		t.Errorf("empty transcript Text() = %q", got)
	}
}

func TestTranscriptTagged(t *testing.T) {
	if (Transcript{{Text: "a"}}).Tagged() {
		t.Error("untagged transcript reported as tagged")
	}
	if !(Transcript{{Text: "a"}, {Text: "b", Speaker: "S1"}}).Tagged() {
		t.Error("tagged transcript reported as untagged")
	}
}

func TestNormalizeQuestionType(t *testing.T) {
	tests := []struct {
		in   string
		want QuestionType
	}{
		{"technical", TypeTechnical},
		{"Technical", TypeTechnical},
		{" BEHAVIORAL ", TypeBehavioral},
		{"general", TypeGeneral},
		{"trick question", TypeGeneral},
		{"", TypeGeneral},
	}
	for _, tt := range tests {
		if got := NormalizeQuestionType(tt.in); got != tt.want {
			t.Errorf("NormalizeQuestionType(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeSpeaker(t *testing.T) {
	tests := []struct {
		in   string
		want Speaker
	}{
		{"interviewer", SpeakerInterviewer},
		{"Interviewee", SpeakerInterviewee},
		{"candidate", SpeakerUnknown},
		{"", SpeakerUnknown},
	}
	for _, tt := range tests {
		if got := NormalizeSpeaker(tt.in); got != tt.want {
			t.Errorf("NormalizeSpeaker(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
