package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Ollama   OllamaConfig   `yaml:"ollama"`
	Whisper  WhisperConfig  `yaml:"whisper"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Paths    PathsConfig    `yaml:"paths"`
	Watch    WatchConfig    `yaml:"watch"`
}

type OllamaConfig struct {
	URL         string `yaml:"url"`
	Model       string `yaml:"model"`
	TimeoutSec  int    `yaml:"timeout_sec"`
	MaxAttempts int    `yaml:"max_attempts"`
	BaseDelayMs int    `yaml:"base_delay_ms"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
}

type ChunkingConfig struct {
	MaxTokens int `yaml:"max_tokens"`
}

type PathsConfig struct {
	WorkDir        string `yaml:"work_dir"`
	TranscribedDir string `yaml:"transcribed_dir"`
	QuestionsDir   string `yaml:"questions_dir"`
	LogFile        string `yaml:"log_file"`
	ReportFile     string `yaml:"report_file"`
}

type WatchConfig struct {
	Enabled       bool `yaml:"enabled"`
	SettleDelayMs int  `yaml:"settle_delay_ms"`
}

// Load reads the optional YAML config file, applies environment variable
// overrides on top, then validates and fills defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// env and defaults only
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Ollama.URL = envOr("OLLAMA_URL", c.Ollama.URL)
	c.Ollama.Model = envOr("OLLAMA_MODEL", c.Ollama.Model)
	c.Ollama.TimeoutSec = envIntOr("OLLAMA_TIMEOUT_SEC", c.Ollama.TimeoutSec)
	c.Ollama.MaxAttempts = envIntOr("OLLAMA_MAX_ATTEMPTS", c.Ollama.MaxAttempts)

	c.Whisper.BinaryPath = envOr("WHISPER_BIN", c.Whisper.BinaryPath)
	c.Whisper.ModelPath = envOr("WHISPER_MODEL", c.Whisper.ModelPath)
	c.Whisper.Language = envOr("LANGUAGE", c.Whisper.Language)

	c.Chunking.MaxTokens = envIntOr("CHUNK_TOKENS", c.Chunking.MaxTokens)

	c.Paths.WorkDir = envOr("WORK_DIR", c.Paths.WorkDir)

	if v := os.Getenv("WATCH"); v != "" {
		c.Watch.Enabled = v == "true" || v == "1"
	}
}

func (c *Config) Validate() error {
	if c.Ollama.URL == "" {
		c.Ollama.URL = "http://localhost:11434"
	}
	if c.Ollama.Model == "" {
		// 8B instruct model, balanced for local machines
		c.Ollama.Model = "llama3.1:8b"
	}
	if c.Ollama.TimeoutSec <= 0 {
		c.Ollama.TimeoutSec = 120
	}
	if c.Ollama.MaxAttempts <= 0 {
		c.Ollama.MaxAttempts = 4
	}
	if c.Ollama.BaseDelayMs <= 0 {
		c.Ollama.BaseDelayMs = 2000
	}

	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required (or WHISPER_MODEL)")
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}

	if c.Chunking.MaxTokens <= 0 {
		c.Chunking.MaxTokens = 3000
	}

	if c.Paths.WorkDir == "" {
		c.Paths.WorkDir = "."
	}
	if c.Paths.TranscribedDir == "" {
		c.Paths.TranscribedDir = "transcribed"
	}
	if c.Paths.QuestionsDir == "" {
		c.Paths.QuestionsDir = "questions"
	}
	if c.Paths.LogFile == "" {
		c.Paths.LogFile = "video_processor.log"
	}
	if c.Paths.ReportFile == "" {
		c.Paths.ReportFile = "questions_summary.xlsx"
	}

	if c.Watch.SettleDelayMs <= 0 {
		c.Watch.SettleDelayMs = 500
	}

	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envIntOr(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
