package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"interview-questions-go/internal/config"
	"interview-questions-go/internal/llm"
	"interview-questions-go/internal/logger"
	"interview-questions-go/internal/pipeline"
	"interview-questions-go/internal/report"
	"interview-questions-go/internal/transcription"
	"interview-questions-go/internal/watcher"
	"interview-questions-go/pkg/executor"
)

func main() {
	_ = godotenv.Load() // loads .env

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewWithFile(filepath.Join(cfg.Paths.WorkDir, cfg.Paths.LogFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.WithField("service", "interview-questions-go").
		WithField("model", cfg.Ollama.Model).
		WithField("work_dir", cfg.Paths.WorkDir).
		Info("starting run")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The LLM service being unreachable is the one fatal startup
	// condition; everything after this is absorbed per video.
	client := llm.NewClient(cfg.Ollama, log)
	if err := client.CheckModel(ctx); err != nil {
		log.WithError(err).Fatal("llm service check failed")
	}

	engine := transcription.New(cfg.Whisper, executor.New(), log)
	p := pipeline.New(cfg, engine, client, log)

	results, err := p.Run(ctx)
	if err != nil {
		log.WithError(err).Fatal("directory scan failed")
	}

	reportPath := filepath.Join(cfg.Paths.WorkDir, cfg.Paths.ReportFile)
	if err := report.Write(reportPath, results); err != nil {
		log.WithError(err).Warn("failed to write run report")
	}

	printSummary(cfg, results)

	if cfg.Watch.Enabled {
		runWatcher(ctx, cfg, p, log)
	}
}

// runWatcher keeps processing videos dropped into the work directory
// until the process is interrupted.
func runWatcher(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline, log *logger.Logger) {
	handle := func(ctx context.Context, path string) error {
		res := p.ProcessVideo(ctx, path)
		if res.Status == pipeline.StatusFailed {
			return res.Err
		}
		return nil
	}

	w, err := watcher.New(
		cfg.Paths.WorkDir,
		handle,
		pipeline.IsVideoFile,
		time.Duration(cfg.Watch.SettleDelayMs)*time.Millisecond,
		log,
	)
	if err != nil {
		log.WithError(err).Error("failed to start watch mode")
		return
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && err != context.Canceled {
		log.WithError(err).Error("watch mode terminated")
	}
}

func printSummary(cfg *config.Config, results []pipeline.VideoResult) {
	done := 0
	failed := 0
	questions := 0
	for _, r := range results {
		if r.Status == pipeline.StatusDone {
			done++
			questions += r.TotalQuestions
		} else {
			failed++
		}
	}

	fmt.Println()
	fmt.Println("==================================================")
	fmt.Println("Video processing completed")
	fmt.Printf("Videos processed: %d (failed: %d)\n", done, failed)
	fmt.Printf("Questions extracted: %d\n", questions)
	fmt.Printf("Transcripts saved in: %s\n", filepath.Join(cfg.Paths.WorkDir, cfg.Paths.TranscribedDir))
	fmt.Printf("Questions saved in: %s\n", filepath.Join(cfg.Paths.WorkDir, cfg.Paths.QuestionsDir))
	fmt.Println("==================================================")
}
