package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"interview-questions-go/internal/aggregator"
	"interview-questions-go/internal/chunker"
	"interview-questions-go/internal/config"
	"interview-questions-go/internal/llm"
	"interview-questions-go/internal/logger"
	"interview-questions-go/internal/parser"
	"interview-questions-go/internal/prompt"
	"interview-questions-go/internal/speaker"
	"interview-questions-go/internal/transcription"
	"interview-questions-go/internal/types"
)

// Status is the per-video processing state. A video moves through the
// stages in order and ends in done or failed.
type Status string

const (
	StatusPending      Status = "pending"
	StatusTranscribing Status = "transcribing"
	StatusChunking     Status = "chunking"
	StatusGenerating   Status = "generating"
	StatusAggregating  Status = "aggregating"
	StatusDone         Status = "done"
	StatusFailed       Status = "failed"
)

// supportedExtensions are the video formats picked up by the directory
// scan.
var supportedExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".wmv": true,
	".flv": true, ".webm": true, ".m4v": true, ".3gp": true, ".ogv": true,
}

// VideoResult summarizes one video's run for the final report.
type VideoResult struct {
	VideoName      string
	Status         Status
	TotalQuestions int
	ByType         map[types.QuestionType]int
	ChunksTotal    int
	ChunksFailed   int
	TranscriptPath string
	QuestionsPath  string
	DurationMs     int64
	Err            error
}

// Pipeline drives one video end to end: transcribe, chunk, generate,
// parse, attribute, aggregate, write. Videos are processed sequentially;
// the local LLM service is a shared single-concurrency resource.
type Pipeline struct {
	cfg    *config.Config
	engine transcription.Engine
	gen    llm.Generator
	infer  speaker.RoleInferencer
	log    *logger.Logger
}

// New builds a Pipeline with the default role-inference heuristic.
func New(cfg *config.Config, engine transcription.Engine, gen llm.Generator, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		engine: engine,
		gen:    gen,
		infer:  speaker.InferRoles,
		log:    log,
	}
}

// WithRoleInferencer swaps the role-inference heuristic.
func (p *Pipeline) WithRoleInferencer(infer speaker.RoleInferencer) *Pipeline {
	p.infer = infer
	return p
}

// IsVideoFile reports whether the path has a recognized video extension.
func IsVideoFile(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// FindVideos returns the video files in dir, sorted by name so runs are
// deterministic.
func FindVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var videos []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if IsVideoFile(e.Name()) {
			videos = append(videos, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(videos)
	return videos, nil
}

// Run scans the working directory and processes every video in order.
// Per-video failures are logged and never abort the scan.
func (p *Pipeline) Run(ctx context.Context) ([]VideoResult, error) {
	if err := p.ensureDirs(); err != nil {
		return nil, err
	}

	videos, err := FindVideos(p.cfg.Paths.WorkDir)
	if err != nil {
		return nil, err
	}

	log := p.log.WithField("component", "pipeline")
	log.WithField("videos", len(videos)).Info("video files found")

	results := make([]VideoResult, 0, len(videos))
	for _, v := range videos {
		res := p.ProcessVideo(ctx, v)
		if res.Status == StatusFailed {
			p.log.WithVideo(res.VideoName).WithField("error", fmt.Sprint(res.Err)).Error("video failed")
		}
		results = append(results, res)
	}

	return results, nil
}

// ProcessVideo runs the state machine for a single video. Chunk-level
// generation failures are skipped and logged with the chunk index; the
// video fails only on transcription failure, output write failure, or
// when every chunk failed.
func (p *Pipeline) ProcessVideo(ctx context.Context, videoPath string) VideoResult {
	start := time.Now()
	videoName := filepath.Base(videoPath)
	stem := strings.TrimSuffix(videoName, filepath.Ext(videoName))
	log := p.log.WithVideo(videoName)

	res := VideoResult{
		VideoName: videoName,
		Status:    StatusPending,
		ByType:    map[types.QuestionType]int{},
	}
	fail := func(err error) VideoResult {
		res.Status = StatusFailed
		res.Err = err
		res.DurationMs = time.Since(start).Milliseconds()
		return res
	}

	// Transcribing
	res.Status = StatusTranscribing
	log.WithField("stage", res.Status).Info("transcribing video")
	transcript, err := p.engine.Transcribe(ctx, videoPath)
	if err != nil {
		return fail(&types.TranscriptionError{Video: videoName, Err: err})
	}

	log.WithField("utterances", len(transcript)).
		WithField("diarized", transcript.Tagged()).
		Info("transcript received")

	res.TranscriptPath = filepath.Join(p.cfg.Paths.WorkDir, p.cfg.Paths.TranscribedDir, stem+"_transcript.txt")
	if err := os.WriteFile(res.TranscriptPath, []byte(transcript.Text()), 0644); err != nil {
		return fail(&types.OutputWriteError{Path: res.TranscriptPath, Err: err})
	}
	log.WithField("path", res.TranscriptPath).Info("transcript saved")

	// Chunking
	res.Status = StatusChunking
	chunks := chunker.Split(transcript, p.cfg.Chunking.MaxTokens)
	res.ChunksTotal = len(chunks)
	log.WithField("stage", res.Status).WithField("chunks", len(chunks)).Info("transcript chunked")

	roles := p.infer(transcript)

	// Generating
	res.Status = StatusGenerating
	var questions []types.Question
	for _, c := range chunks {
		chunkLog := log.WithField("chunk", c.Index)
		chunkLog.WithField("chunks_total", len(chunks)).Info("processing chunk")

		reply, err := p.gen.Generate(ctx, prompt.Build(c.Text(), p.cfg.Whisper.Language))
		if err != nil {
			genErr := &types.GenerationError{ChunkIndex: c.Index, Err: err}
			chunkLog.WithField("error", genErr.Error()).Warn("chunk skipped after exhausting retries")
			res.ChunksFailed++
			continue
		}

		for _, cand := range parser.Parse(reply) {
			questions = append(questions, types.Question{
				Question: cand.Text,
				Speaker:  speaker.Attribute(cand, c, roles),
				Type:     types.NormalizeQuestionType(cand.TypeHint),
			})
		}
	}

	if res.ChunksTotal > 0 && res.ChunksFailed == res.ChunksTotal {
		return fail(fmt.Errorf("all %d chunks failed generation", res.ChunksTotal))
	}

	// Aggregating
	res.Status = StatusAggregating
	set := aggregator.Aggregate(videoName, questions)
	res.TotalQuestions = set.TotalQuestions
	for t, qs := range set.ByType {
		res.ByType[t] = len(qs)
	}

	res.QuestionsPath = filepath.Join(p.cfg.Paths.WorkDir, p.cfg.Paths.QuestionsDir, stem+"_questions.json")
	if err := writeQuestionSet(res.QuestionsPath, set); err != nil {
		return fail(&types.OutputWriteError{Path: res.QuestionsPath, Err: err})
	}

	res.Status = StatusDone
	res.DurationMs = time.Since(start).Milliseconds()
	log.WithField("total_questions", set.TotalQuestions).
		WithField("chunks_failed", res.ChunksFailed).
		WithField("duration_ms", res.DurationMs).
		Info("video completed")
	return res
}

func (p *Pipeline) ensureDirs() error {
	for _, dir := range []string{p.cfg.Paths.TranscribedDir, p.cfg.Paths.QuestionsDir} {
		if err := os.MkdirAll(filepath.Join(p.cfg.Paths.WorkDir, dir), 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// writeQuestionSet writes the artifact as indented UTF-8 JSON. HTML
// escaping is off so Cyrillic and punctuation stay readable.
func writeQuestionSet(path string, set types.QuestionSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(set); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
