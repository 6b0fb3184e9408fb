package transcription

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"interview-questions-go/internal/config"
	"interview-questions-go/internal/logger"
)

const whisperOutput = `{
  "result": {"language": "en"},
  "transcription": [
    {"offsets": {"from": 0, "to": 3200}, "text": " Tell me about your Python experience?", "speaker": "SPEAKER_00"},
    {"offsets": {"from": 3200, "to": 6000}, "text": " I used it for five years.", "speaker": "SPEAKER_01"},
    {"offsets": {"from": 6000, "to": 6100}, "text": "   "}
  ]
}`

func TestParseWhisperJSON(t *testing.T) {
	transcript, err := ParseWhisperJSON([]byte(whisperOutput))
	if err != nil {
		t.Fatalf("ParseWhisperJSON() error = %v", err)
	}

	if len(transcript) != 2 {
		t.Fatalf("expected 2 utterances (blank dropped), got %d", len(transcript))
	}

	first := transcript[0]
	if first.Start != 0 || first.End != 3.2 {
		t.Errorf("offsets not converted to seconds: start=%v end=%v", first.Start, first.End)
	}
	if first.Text != "Tell me about your Python experience?" {
		t.Errorf("text not trimmed: %q", first.Text)
	}
	if first.Speaker != "SPEAKER_00" {
		t.Errorf("speaker tag lost: %q", first.Speaker)
	}
}

func TestParseWhisperJSONErrors(t *testing.T) {
	if _, err := ParseWhisperJSON([]byte("not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if got, err := ParseWhisperJSON([]byte(`{"transcription": []}`)); err != nil || len(got) != 0 {
		t.Errorf("empty transcription should parse to empty transcript, got %v, %v", got, err)
	}
}

// fakeExecutor stands in for ffmpeg and whisper-cli: when the whisper
// binary is invoked it writes the JSON output the real tool would.
type fakeExecutor struct {
	whisperBin string
	calls      []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, name)
	if name != f.whisperBin {
		return "", nil
	}
	var prefix string
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "--output-file" {
			prefix = args[i+1]
		}
	}
	return "", os.WriteFile(prefix+".json", []byte(whisperOutput), 0644)
}

func TestTranscribe(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "interview.mp4")
	if err := os.WriteFile(videoPath, []byte("fake video"), 0644); err != nil {
		t.Fatal(err)
	}

	exec := &fakeExecutor{whisperBin: "whisper-cli"}
	engine := New(config.WhisperConfig{
		BinaryPath: "whisper-cli",
		ModelPath:  "models/test.bin",
		Language:   "en",
	}, exec, logger.New())

	transcript, err := engine.Transcribe(context.Background(), videoPath)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(transcript))
	}
	if len(exec.calls) != 2 || exec.calls[0] != "ffmpeg" || exec.calls[1] != "whisper-cli" {
		t.Errorf("unexpected command sequence: %v", exec.calls)
	}

	// whisper JSON output must be cleaned up
	if _, err := os.Stat(filepath.Join(dir, "interview_temp.json")); !os.IsNotExist(err) {
		t.Error("temp whisper output was not removed")
	}
}
