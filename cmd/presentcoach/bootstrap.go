package main

import (
	"context"
	"fmt"
	"log/slog"

	"presentcoach/internal/audioanalysis"
	"presentcoach/internal/config"
	"presentcoach/internal/eligibility"
	"presentcoach/internal/feedback"
	"presentcoach/internal/jobs"
	"presentcoach/internal/media/ffprobe"
	"presentcoach/internal/notifications"
	"presentcoach/internal/pipeline"
	"presentcoach/internal/services/llm"
	"presentcoach/internal/services/whisperx"
	"presentcoach/internal/store"
	"presentcoach/internal/textanalysis"
	"presentcoach/internal/vision"
)

// runtime is the wired analysis stack shared by analyze and serve.
type runtime struct {
	store        *store.Store
	orchestrator *pipeline.Orchestrator
	manager      *jobs.Manager
	notifier     notifications.Service
}

func newRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*runtime, error) {
	orchestrator, err := newOrchestrator(cfg, logger)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	notifier := notifications.NewService(cfg)
	manager := jobs.NewManager(orchestrator, st, jobs.Options{
		MaxConcurrentRuns: cfg.Analysis.MaxConcurrentRuns,
		Notifier:          notifier,
		Logger:            logger,
		Context:           ctx,
	})
	return &runtime{
		store:        st,
		orchestrator: orchestrator,
		manager:      manager,
		notifier:     notifier,
	}, nil
}

func newOrchestrator(cfg *config.Config, logger *slog.Logger) (*pipeline.Orchestrator, error) {
	transcriber := whisperx.NewService(whisperx.Config{
		Model:       cfg.Transcription.Model,
		Language:    cfg.Transcription.Language,
		CUDAEnabled: cfg.Transcription.CUDAEnabled,
		VADMethod:   cfg.Transcription.VADMethod,
		HFToken:     cfg.Transcription.HFToken,
		CacheDir:    cfg.Transcription.CacheDir,
	}, cfg.FFmpegBinary())

	return pipeline.New(pipeline.Dependencies{
		Prober:      ffprobe.NewProber(cfg.FFprobeBinary()),
		Extractor:   transcriber,
		Transcriber: transcriber,
		Audio:       audioanalysis.NewAnalyzer(logger),
		Text:        textanalysis.NewAnalyzer(logger),
		Video: vision.NewAnalyzer(vision.Config{
			Command:    cfg.Vision.Command,
			Args:       cfg.Vision.Args,
			SampleRate: cfg.Vision.SampleRate,
		}, logger),
		Feedback: newFeedback(cfg, logger),
	}, pipeline.Options{
		WorkDir:   cfg.Paths.WorkDir,
		KeepAudio: cfg.Analysis.KeepAudio,
		Thresholds: eligibility.Thresholds{
			MinDurationSeconds: cfg.Analysis.MinDurationSeconds,
			MinWordCount:       cfg.Analysis.MinWordCount,
			MinFrames:          cfg.Analysis.MinFrames,
		},
		Logger: logger,
	})
}

func newFeedback(cfg *config.Config, logger *slog.Logger) *feedback.Synthesizer {
	if !cfg.LLMReady() {
		return feedback.NewSynthesizer(nil, logger)
	}
	settings := cfg.GetLLM()
	client := llm.NewClient(llm.Config{
		APIKey:         settings.APIKey,
		BaseURL:        settings.BaseURL,
		Model:          settings.Model,
		Referer:        settings.Referer,
		Title:          settings.Title,
		TimeoutSeconds: settings.TimeoutSeconds,
	})
	return feedback.NewSynthesizer(client, logger)
}

func (r *runtime) Close() error {
	if r == nil || r.store == nil {
		return nil
	}
	return r.store.Close()
}
