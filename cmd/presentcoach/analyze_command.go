package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"presentcoach/internal/jobs"
	"presentcoach/internal/pipeline"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var sessionID string
	var userID string
	var jsonOutput bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "analyze <video>",
		Short: "Analyze a presentation video and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(verbose)
			if err != nil {
				return err
			}

			videoPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve video path: %w", err)
			}
			if _, err := os.Stat(videoPath); err != nil {
				return fmt.Errorf("video not found: %s", videoPath)
			}

			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}
			rt, err := newRuntime(runCtx, cfg, logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			session := strings.TrimSpace(sessionID)
			if session == "" {
				session = uuid.NewString()
			}

			if _, err := rt.orchestrator.Preflight(runCtx, videoPath); err != nil {
				return err
			}
			if !rt.manager.Start(session, videoPath, strings.TrimSpace(userID)) {
				return fmt.Errorf("session %s is already being analyzed", session)
			}

			updates, cancel := rt.manager.Subscribe(session)
			defer cancel()
			printer := newProgressPrinter(cmd.ErrOrStderr())
			final, err := followProgress(runCtx, updates, printer.render)
			printer.finish()
			if err != nil {
				return err
			}
			rt.manager.Cleanup(session)

			if final.Status == pipeline.StatusFailed {
				return fmt.Errorf("analysis %s failed: %s", session, final.Error)
			}

			rec, err := rt.store.Get(runCtx, session)
			if err != nil {
				return fmt.Errorf("load report: %w", err)
			}
			if rec == nil || !rec.HasReport() {
				return fmt.Errorf("no report stored for %s", session)
			}
			report, err := rec.Report()
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, reportView{SessionID: session, Report: report})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderReport(session, report, shouldColorize(cmd.OutOrStdout())))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session identifier (default: random UUID)")
	cmd.Flags().StringVar(&userID, "user", "", "User the analysis belongs to")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Write structured logs to stderr")
	return cmd
}

// followProgress drains updates until a terminal snapshot arrives.
func followProgress(ctx context.Context, updates <-chan jobs.Job, render func(jobs.Job)) (jobs.Job, error) {
	for {
		select {
		case job, ok := <-updates:
			if !ok {
				return jobs.Job{}, errors.New("progress stream closed before the analysis finished")
			}
			render(job)
			if job.Terminal() {
				return job, nil
			}
		case <-ctx.Done():
			return jobs.Job{}, ctx.Err()
		}
	}
}

// progressPrinter rewrites one line on terminals and prints one line per
// message change elsewhere.
type progressPrinter struct {
	out         io.Writer
	interactive bool
	lastMessage string
	lastPercent int
	width       int
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{out: out, interactive: shouldColorize(out), lastPercent: -1}
}

func (p *progressPrinter) render(job jobs.Job) {
	if job.ProgressPercent == p.lastPercent && job.Message == p.lastMessage {
		return
	}
	line := fmt.Sprintf("[%3d%%] %s", job.ProgressPercent, job.Message)
	if p.interactive {
		pad := ""
		if n := p.width - len(line); n > 0 {
			pad = strings.Repeat(" ", n)
		}
		fmt.Fprintf(p.out, "\r%s%s", line, pad)
		p.width = len(line)
	} else if job.Message != p.lastMessage {
		fmt.Fprintln(p.out, line)
	}
	p.lastMessage = job.Message
	p.lastPercent = job.ProgressPercent
}

func (p *progressPrinter) finish() {
	if p.interactive && p.width > 0 {
		fmt.Fprintln(p.out)
	}
}
