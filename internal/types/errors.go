package types

import "fmt"

// TranscriptionError means the transcription engine failed for one video.
// It is fatal for that video only; the batch continues.
type TranscriptionError struct {
	Video string
	Err   error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed for %s: %v", e.Video, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// GenerationError means the LLM call for one chunk failed after all
// retries. It is fatal for that chunk only; the video continues with the
// remaining chunks.
type GenerationError struct {
	ChunkIndex int
	Err        error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for chunk %d: %v", e.ChunkIndex, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// OutputWriteError means a per-video artifact could not be written. The
// video is reported failed even when processing itself succeeded.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }
