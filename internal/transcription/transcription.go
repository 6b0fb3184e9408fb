package transcription

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"interview-questions-go/internal/config"
	"interview-questions-go/internal/logger"
	"interview-questions-go/internal/types"
	"interview-questions-go/pkg/executor"
)

// Engine turns a video file into a timed transcript. Implemented by the
// local Whisper engine below; faked in pipeline tests.
type Engine interface {
	Transcribe(ctx context.Context, videoPath string) (types.Transcript, error)
}

type whisperEngine struct {
	cfg  config.WhisperConfig
	exec executor.Executor
	log  *logger.Logger
}

// New builds the Whisper-backed transcription engine.
func New(cfg config.WhisperConfig, exec executor.Executor, log *logger.Logger) Engine {
	return &whisperEngine{cfg: cfg, exec: exec, log: log}
}

// Transcribe extracts the audio track with ffmpeg, runs whisper-cli over
// it with JSON output, and parses the result. Temp artifacts are removed
// before returning.
func (w *whisperEngine) Transcribe(ctx context.Context, videoPath string) (types.Transcript, error) {
	log := w.log.WithField("component", "transcription").WithField("video", filepath.Base(videoPath))

	audioPath, err := w.extractAudio(ctx, videoPath)
	if err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}
	defer os.Remove(audioPath)

	log.Info("audio extracted, starting whisper")

	jsonPath, err := w.runWhisper(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("whisper: %w", err)
	}
	defer os.Remove(jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	transcript, err := ParseWhisperJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	log.WithField("utterances", len(transcript)).Info("transcription completed")
	return transcript, nil
}

// extractAudio converts the video's audio track to 16kHz mono WAV, the
// format Whisper expects.
func (w *whisperEngine) extractAudio(ctx context.Context, videoPath string) (string, error) {
	audioPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + "_temp.wav"

	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := w.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", err
	}
	return audioPath, nil
}

// runWhisper transcribes the WAV file and returns the path of the JSON
// output whisper-cli wrote next to it.
func (w *whisperEngine) runWhisper(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", audioPath,
		"-oj",
		"-l", w.cfg.Language,
		"--output-file", outputPrefix,
	}

	if _, err := w.exec.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return "", err
	}
	return outputPrefix + ".json", nil
}

// whisperResult mirrors the whisper.cpp JSON output. Offsets are in
// milliseconds; speaker is present only when the engine diarizes.
type whisperResult struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text    string `json:"text"`
		Speaker string `json:"speaker,omitempty"`
	} `json:"transcription"`
}

// ParseWhisperJSON converts whisper.cpp JSON output into a Transcript.
// Segments with empty text are dropped.
func ParseWhisperJSON(data []byte) (types.Transcript, error) {
	var res whisperResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}

	transcript := make(types.Transcript, 0, len(res.Transcription))
	for _, seg := range res.Transcription {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		transcript = append(transcript, types.Utterance{
			Start:   float64(seg.Offsets.From) / 1000.0,
			End:     float64(seg.Offsets.To) / 1000.0,
			Text:    text,
			Speaker: strings.TrimSpace(seg.Speaker),
		})
	}
	return transcript, nil
}
