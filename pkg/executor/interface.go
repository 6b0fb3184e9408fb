package executor

import "context"

// Executor runs external commands. Abstracted so the transcription engine
// can be faked in tests.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
