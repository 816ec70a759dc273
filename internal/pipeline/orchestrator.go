package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"presentcoach/internal/analysis"
	"presentcoach/internal/eligibility"
	"presentcoach/internal/feedback"
	"presentcoach/internal/logging"
	"presentcoach/internal/scoring"
	"presentcoach/internal/services"
	"presentcoach/internal/services/whisperx"
	"presentcoach/internal/textutil"
)

// ErrTooShort marks a video below the minimum duration. Runs that fail with
// it are not worth retrying.
var ErrTooShort = errors.New("video too short")

const (
	audioFileName   = "audio.wav"
	defaultLanguage = "en"

	faceMissingWarning = "Face not detected in video. Body language metrics unavailable."
)

// Stage names used in logs and StageResult.
const (
	StageExtract    = "extract"
	StageTranscribe = "transcribe"
	StageAudio      = "audio"
	StageText       = "text"
	StageVideo      = "video"
	StageScoring    = "scoring"
	StageFeedback   = "feedback"
)

// Dependencies are the collaborators a run needs.
type Dependencies struct {
	Prober      MediaProber
	Extractor   AudioExtractor
	Transcriber Transcriber
	Audio       AudioAnalyzer
	Text        TextAnalyzer
	Video       VideoAnalyzer
	Feedback    FeedbackGenerator
}

// Options controls scratch files and thresholds.
type Options struct {
	// WorkDir holds one scratch directory per session.
	WorkDir    string
	KeepAudio  bool
	Thresholds eligibility.Thresholds
	Logger     *slog.Logger
	// Now overrides the clock (for testing).
	Now func() time.Time
}

// Orchestrator executes analysis runs. It is safe for concurrent use; each
// run keeps its own state.
type Orchestrator struct {
	deps      Dependencies
	gate      eligibility.Gate
	workDir   string
	keepAudio bool
	logger    *slog.Logger
	now       func() time.Time
}

// New validates deps and returns an orchestrator.
func New(deps Dependencies, opts Options) (*Orchestrator, error) {
	var missing []string
	if deps.Prober == nil {
		missing = append(missing, "prober")
	}
	if deps.Extractor == nil {
		missing = append(missing, "audio extractor")
	}
	if deps.Transcriber == nil {
		missing = append(missing, "transcriber")
	}
	if deps.Audio == nil {
		missing = append(missing, "audio analyzer")
	}
	if deps.Text == nil {
		missing = append(missing, "text analyzer")
	}
	if deps.Video == nil {
		missing = append(missing, "video analyzer")
	}
	if deps.Feedback == nil {
		missing = append(missing, "feedback generator")
	}
	if len(missing) > 0 {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "init", "missing "+strings.Join(missing, ", "), nil)
	}
	if strings.TrimSpace(opts.WorkDir) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "init", "work directory required", nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		deps:      deps,
		gate:      eligibility.NewGate(opts.Thresholds),
		workDir:   opts.WorkDir,
		keepAudio: opts.KeepAudio,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
		now:       now,
	}, nil
}

// Preflight probes videoPath and returns an ErrTooShort error when the video
// is below the minimum duration.
func (o *Orchestrator) Preflight(ctx context.Context, videoPath string) (float64, error) {
	summary, err := o.deps.Prober.Probe(ctx, videoPath)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, StageExtract, "probe", "inspect video", err)
	}
	return summary.DurationSeconds, o.checkDuration(summary.DurationSeconds)
}

func (o *Orchestrator) checkDuration(duration float64) error {
	if o.gate.DurationOK(duration) {
		return nil
	}
	return fmt.Errorf("%w: duration %.1fs is below the %.1fs minimum",
		ErrTooShort, duration, o.gate.Thresholds().MinDurationSeconds)
}

// state carries one run's intermediate values.
type state struct {
	run      Run
	dir      string
	progress *monotone
	logger   *slog.Logger

	duration     float64
	audioPresent bool
	audioPath    string
	frames       int

	transcript whisperx.Transcript
	text       string
	wordCount  int
	speech     bool

	eligibility eligibility.Result
	warning     string

	audio   analysis.Audio
	textDoc analysis.Text
	video   analysis.Video

	stages []StageResult
}

func (s *state) record(name string, outcome Outcome, reason string) {
	s.stages = append(s.stages, StageResult{Name: name, Outcome: outcome, Reason: reason})
}

func (s *state) warn(first, appended string) {
	if s.warning == "" {
		s.warning = first
		return
	}
	s.warning += "; " + appended
}

// Run executes every stage for run and assembles the report. The returned
// error is non-nil only for fatal failures; no report accompanies it.
func (o *Orchestrator) Run(ctx context.Context, run Run, progress ProgressFunc) (Report, error) {
	ctx = services.WithSessionID(ctx, run.SessionID)
	st := &state{
		run:      run,
		progress: newMonotone(progress),
		logger:   logging.WithContext(ctx, o.logger),
	}
	defer o.cleanup(st)

	started := o.now()
	st.logger.Info("analysis started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("video_path", run.VideoPath),
	)

	steps := []struct {
		name string
		fn   func(context.Context, *state) error
	}{
		{StageExtract, o.extract},
		{StageTranscribe, o.transcribe},
		{StageAudio, o.analyzeAudio},
		{StageText, o.analyzeText},
		{StageVideo, o.analyzeVideo},
	}
	for _, step := range steps {
		if err := step.fn(services.WithStage(ctx, step.name), st); err != nil {
			return Report{}, err
		}
	}

	report := o.assemble(services.WithStage(ctx, StageScoring), st)
	st.logger.Info("analysis finished",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("analysis_status", string(report.AnalysisStatus)),
		logging.Duration("run_duration", o.now().Sub(started)),
	)
	return report, nil
}

func (o *Orchestrator) extract(ctx context.Context, st *state) error {
	st.progress.report(ProgressExtracting, MessageExtracting)
	summary, err := o.deps.Prober.Probe(ctx, st.run.VideoPath)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, StageExtract, "probe", "inspect video", err)
	}
	st.duration = summary.DurationSeconds
	if err := o.checkDuration(st.duration); err != nil {
		return err
	}
	st.frames = SanitizeFrameCount(summary.FrameCount, st.duration, summary.FrameRate)
	st.audioPresent = summary.HasAudio && st.duration > 0
	if !st.audioPresent {
		st.record(StageExtract, OutcomeSkipped, "no audio stream")
		return nil
	}
	dir, err := o.scratchDir(st.run.SessionID)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, StageExtract, "workdir", "create scratch directory", err)
	}
	st.dir = dir
	st.audioPath = filepath.Join(st.dir, audioFileName)
	if err := o.deps.Extractor.ExtractAudio(ctx, st.run.VideoPath, st.audioPath); err != nil {
		return services.Wrap(services.ErrExternalTool, StageExtract, "ffmpeg", "extract audio", err)
	}
	st.record(StageExtract, OutcomeOK, "")
	st.logger.Debug("audio extracted",
		logging.String("audio_path", st.audioPath),
		logging.Float64("duration_seconds", st.duration),
		logging.Int("total_frames", st.frames),
	)
	return nil
}

func (o *Orchestrator) transcribe(ctx context.Context, st *state) error {
	st.progress.report(ProgressTranscribing, MessageTranscribing)
	if st.audioPresent {
		st.progress.report(ProgressTranscribingLong, MessageTranscribingLong)
		transcript, err := o.deps.Transcriber.Transcribe(ctx, st.audioPath, st.dir)
		if err != nil {
			return services.Wrap(services.ErrExternalTool, StageTranscribe, "whisperx", "transcribe audio", err)
		}
		st.transcript = transcript
		st.text = strings.TrimSpace(transcript.Text)
		st.wordCount = len(textutil.Words(st.text))
		st.record(StageTranscribe, OutcomeOK, "")
	} else {
		st.record(StageTranscribe, OutcomeSkipped, "no audio stream")
	}
	st.speech = o.gate.SpeechDetected(st.wordCount)

	st.eligibility = o.gate.Check(st.duration, st.audioPresent, st.wordCount, st.frames)
	if !st.eligibility.Eligible {
		st.warning = strings.Join(st.eligibility.Warnings, "; ")
		logging.WarnWithContext(st.logger, "presentation below eligibility thresholds",
			"eligibility_warning",
			logging.String("warnings", st.warning),
			logging.String(logging.FieldErrorHint, "record a longer video with clear speech facing the camera"),
			logging.String(logging.FieldImpact, "some score categories will be skipped"),
		)
	}
	return nil
}

func (o *Orchestrator) analyzeAudio(ctx context.Context, st *state) error {
	st.progress.report(ProgressAudio, MessageAudio)
	if !st.speech {
		st.audio = analysis.AudioPlaceholder(round2(st.duration))
		st.record(StageAudio, OutcomeSkipped, "no speech detected")
		return nil
	}
	audio, err := o.deps.Audio.Analyze(ctx, st.audioPath, st.text, st.duration)
	if err != nil {
		return services.Wrap(services.ErrTransient, StageAudio, "analyze", "audio analysis", err)
	}
	st.audio = audio
	st.record(StageAudio, OutcomeOK, "")
	return nil
}

func (o *Orchestrator) analyzeText(ctx context.Context, st *state) error {
	st.progress.report(ProgressText, MessageText)
	if !st.speech {
		st.textDoc = analysis.TextPlaceholder()
		st.record(StageText, OutcomeSkipped, "no speech detected")
		return nil
	}
	text, err := o.deps.Text.Analyze(ctx, st.text)
	if err != nil {
		return services.Wrap(services.ErrTransient, StageText, "analyze", "text analysis", err)
	}
	st.textDoc = text
	st.record(StageText, OutcomeOK, "")
	return nil
}

// analyzeVideo converts analyzer errors into a placeholder and a warning.
// Only cancellation aborts the run.
func (o *Orchestrator) analyzeVideo(ctx context.Context, st *state) error {
	st.progress.report(ProgressVideo, MessageVideo)
	st.progress.report(ProgressVideoFrames, MessageVideoFrames)
	st.progress.report(ProgressVideoDetect, MessageVideoDetect)
	video, err := o.deps.Video.Analyze(ctx, st.run.VideoPath, st.duration)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logging.WarnWithContext(st.logger, "video analysis failed; continuing without body language",
			"video_analysis_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, services.FailureHint(err)),
			logging.String(logging.FieldImpact, "confidence and body language metrics unavailable"),
		)
		st.video = analysis.VideoPlaceholder(round2(st.duration))
		st.record(StageVideo, OutcomeFailed, err.Error())
		st.warn("Video analysis encountered errors: "+err.Error(), "Video analysis errors: "+err.Error())
		return nil
	}
	st.progress.report(ProgressVideoFinalize, MessageVideoFinalize)
	st.video = video
	st.record(StageVideo, OutcomeOK, "")
	if !video.FaceDetected {
		st.warn(faceMissingWarning, faceMissingWarning)
	}
	return nil
}

func (o *Orchestrator) assemble(ctx context.Context, st *state) Report {
	st.progress.report(ProgressScoring, MessageScoring)
	evidence := analysis.Evidence{
		DurationSeconds:       st.duration,
		AudioPresent:          st.audioPresent,
		WordCount:             st.wordCount,
		SpeechDetected:        st.speech,
		TotalFrames:           st.frames,
		FaceDetected:          st.video.FaceDetected,
		PoseLandmarksDetected: st.video.PoseLandmarksDetected,
	}
	scores := scoring.Score(scoring.Inputs{
		Audio:    st.audio,
		Text:     st.textDoc,
		Video:    st.video,
		Evidence: evidence,
	})
	st.record(StageScoring, OutcomeOK, "")

	st.progress.report(ProgressFeedback, MessageFeedback)
	fb := o.deps.Feedback.Generate(services.WithStage(ctx, StageFeedback), feedback.Input{
		Audio:          st.audio,
		Text:           st.textDoc,
		Video:          st.video,
		Scores:         scores,
		SpeechDetected: st.speech,
	})
	st.record(StageFeedback, OutcomeOK, "")

	status, label := StatusCompleted, LabelValid
	var warning *string
	if st.warning != "" {
		status, label = StatusCompletedWithWarning, LabelLimitations
		warning = &st.warning
	}
	lang := st.transcript.Language
	if lang == "" {
		lang = defaultLanguage
	}
	return Report{
		Status:             label,
		EligibilityDetails: st.eligibility.Details,
		Transcription: Transcription{
			Text:          st.text,
			Language:      lang,
			SegmentsCount: len(st.transcript.Segments),
			WordCount:     st.wordCount,
		},
		AudioAnalysis: st.audio,
		TextAnalysis:  st.textDoc,
		VideoAnalysis: st.video,
		Scores:        scores,
		Feedback:      fb,
		Metadata: Metadata{
			VideoPath:             st.run.VideoPath,
			DurationSeconds:       round2(st.duration),
			AnalysisTimestamp:     o.now().UTC().Format(time.RFC3339),
			SpeechDetected:        st.speech,
			AudioPresent:          st.audioPresent,
			WordCount:             st.wordCount,
			FaceDetected:          st.video.FaceDetected,
			PoseLandmarksDetected: st.video.PoseLandmarksDetected,
			MinWordsRequired:      o.gate.Thresholds().MinWordCount,
			QualityMetrics:        st.video.QualityMetrics,
		},
		AnalysisStatus: status,
		AudioPresent:   st.audioPresent,
		SpeechDetected: st.speech,
		FaceDetected:   st.video.FaceDetected,
		WordCount:      st.wordCount,
		MetricAvailability: MetricAvailability{
			Speech:       st.speech,
			BodyLanguage: st.video.FaceDetected,
		},
		WarningMessage: warning,
		Stages:         st.stages,
	}
}

// scratchDir creates a directory owned by a single run. The sanitized
// session id is only a readable prefix; distinct ids may sanitize alike.
func (o *Orchestrator) scratchDir(sessionID string) (string, error) {
	if err := os.MkdirAll(o.workDir, 0o755); err != nil {
		return "", err
	}
	return os.MkdirTemp(o.workDir, textutil.SanitizeToken(sessionID)+"-*")
}

// cleanup removes the run's scratch directory unless audio is kept.
func (o *Orchestrator) cleanup(st *state) {
	if o.keepAudio || st.dir == "" {
		return
	}
	if err := os.RemoveAll(st.dir); err != nil {
		logging.WarnWithContext(st.logger, "failed to remove scratch audio",
			"cleanup_failed",
			logging.String("path", st.dir),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the directory manually"),
			logging.String(logging.FieldImpact, "disk space is not reclaimed"),
		)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
