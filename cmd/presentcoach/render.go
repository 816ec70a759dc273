package main

import (
	"fmt"
	"strings"
	"time"

	"presentcoach/internal/pipeline"
	"presentcoach/internal/scoring"
	"presentcoach/internal/store"
)

// reportView is the --json shape for a single report.
type reportView struct {
	SessionID string          `json:"session_id"`
	Report    pipeline.Report `json:"report"`
}

// recordView is the --json shape for one stored run.
type recordView struct {
	SessionID       string          `json:"session_id"`
	UserID          string          `json:"user_id,omitempty"`
	VideoPath       string          `json:"video_path"`
	Status          pipeline.Status `json:"status"`
	ProgressPercent int             `json:"progress_percent"`
	Message         string          `json:"message"`
	Error           string          `json:"error,omitempty"`
	TooShort        bool            `json:"too_short,omitempty"`
	FinalScore      *float64        `json:"final_score,omitempty"`
	Grade           *string         `json:"grade,omitempty"`
	StartedAt       time.Time       `json:"started_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func newRecordView(rec *store.Record) recordView {
	view := recordView{
		SessionID:       rec.SessionID,
		UserID:          rec.UserID,
		VideoPath:       rec.VideoPath,
		Status:          rec.Status,
		ProgressPercent: rec.ProgressPercent,
		Message:         rec.ProgressMessage,
		Error:           rec.ErrorMessage,
		TooShort:        rec.TooShort,
		StartedAt:       rec.StartedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
	if rec.HasReport() {
		if report, err := rec.Report(); err == nil {
			view.FinalScore = report.FinalScore()
			view.Grade = report.Grade()
		}
	}
	return view
}

func renderReport(sessionID string, report pipeline.Report, colorize bool) string {
	var b strings.Builder
	writeLines := func(lines ...string) {
		for _, line := range lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	writeLines(renderSectionHeader("Presentation Report", colorize)...)
	writeLines(
		renderStatusLine("Session", statusInfo, sessionID, false),
		renderStatusLine("Video", statusInfo, report.Metadata.VideoPath, false),
		renderStatusLine("Duration", statusInfo, fmt.Sprintf("%.1fs", report.Metadata.DurationSeconds), false),
		renderStatusLine("Status", reportKind(report), report.Status, colorize),
		renderStatusLine("Final score", statusInfo, formatFinal(report.Scores.Final), false),
	)
	if report.WarningMessage != nil {
		writeLines(renderStatusLine("Warning", statusWarn, *report.WarningMessage, colorize))
	}
	b.WriteByte('\n')

	writeLines(renderScoresTable(report.Scores))
	b.WriteByte('\n')

	writeFeedbackList(&b, "Strengths", report.Feedback.Strengths, colorize)
	writeFeedbackList(&b, "Improvements", report.Feedback.Improvements, colorize)
	if assessment := strings.TrimSpace(report.Feedback.OverallAssessment); assessment != "" {
		writeLines(renderSectionHeader("Overall", colorize)...)
		writeLines(assessment, "")
	}
	return b.String()
}

func reportKind(report pipeline.Report) statusKind {
	if report.AnalysisStatus == pipeline.StatusCompletedWithWarning {
		return statusWarn
	}
	return statusOK
}

func formatFinal(final scoring.FinalScore) string {
	if final.FinalScore == nil {
		if final.Warning != nil {
			return "N/A (" + *final.Warning + ")"
		}
		return "N/A"
	}
	out := fmt.Sprintf("%.1f/100", *final.FinalScore)
	if final.Grade != nil {
		out += " (" + *final.Grade
		if final.Rating != nil {
			out += ", " + *final.Rating
		}
		out += ")"
	}
	return out
}

func renderScoresTable(scores scoring.Scores) string {
	headers := []string{"Category", "Score", "Weight", "Contribution", "Note"}
	rows := make([][]string, 0, len(scoring.Categories))
	for _, category := range scoring.Categories {
		cs := scores.Category(category)
		entry := scores.Final.Breakdown[category]
		note := ""
		switch {
		case cs.Reason != nil:
			note = *cs.Reason
		case entry.Reason != nil:
			note = *entry.Reason
		}
		score := formatOptional(cs.OverallScore, "%.1f")
		if cs.OverallScore == nil && cs.Label != nil {
			score = *cs.Label
		}
		rows = append(rows, []string{
			categoryLabel(category),
			score,
			fmt.Sprintf("%.0f%%", cs.Weight*100),
			formatOptional(entry.Contribution, "%.2f"),
			note,
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft})
}

func writeFeedbackList(b *strings.Builder, title string, items []string, colorize bool) {
	if len(items) == 0 {
		return
	}
	for _, line := range renderSectionHeader(title, colorize) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, item := range items {
		fmt.Fprintf(b, "%s- %s\n", statusIndent, item)
	}
	b.WriteByte('\n')
}

func categoryLabel(c scoring.Category) string {
	switch c {
	case scoring.VoiceDelivery:
		return "Voice delivery"
	case scoring.ContentQuality:
		return "Content quality"
	case scoring.ConfidenceBodyLanguage:
		return "Confidence & body language"
	case scoring.Engagement:
		return "Engagement"
	default:
		return string(c)
	}
}

func formatOptional(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}
