package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"presentcoach/internal/pipeline"
	"presentcoach/internal/store"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect stored analysis results",
	}
	reportCmd.AddCommand(newReportShowCommand(ctx))
	reportCmd.AddCommand(newReportListCommand(ctx))
	return reportCmd
}

func newReportShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <session>",
		Short: "Show the report for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			sessionID := strings.TrimSpace(args[0])
			rec, err := st.Get(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("no analysis found for session %s", sessionID)
			}
			switch rec.Status {
			case pipeline.StatusProcessing:
				return fmt.Errorf("session %s is still processing (%d%%: %s)", sessionID, rec.ProgressPercent, rec.ProgressMessage)
			case pipeline.StatusFailed:
				if jsonOutput {
					return writeJSON(cmd, newRecordView(rec))
				}
				return fmt.Errorf("session %s failed: %s", sessionID, rec.ErrorMessage)
			}
			if !rec.HasReport() {
				return fmt.Errorf("no report stored for session %s", sessionID)
			}
			report, err := rec.Report()
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, reportView{SessionID: sessionID, Report: report})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderReport(sessionID, report, shouldColorize(cmd.OutOrStdout())))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}

func newReportListCommand(ctx *commandContext) *cobra.Command {
	var userID string
	var statuses []string
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored analyses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := store.ListFilter{UserID: strings.TrimSpace(userID), Limit: limit}
			for _, raw := range statuses {
				status := pipeline.Status(strings.TrimSpace(raw))
				if !validStatus(status) {
					return fmt.Errorf("unknown status %q", raw)
				}
				filter.Statuses = append(filter.Statuses, status)
			}

			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := st.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			views := make([]recordView, 0, len(records))
			for _, rec := range records {
				views = append(views, newRecordView(rec))
			}
			if jsonOutput {
				return writeJSON(cmd, views)
			}
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No analyses found")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecordTable(views))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "Only show analyses for this user")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of analyses to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	return cmd
}

func validStatus(status pipeline.Status) bool {
	switch status {
	case pipeline.StatusProcessing, pipeline.StatusCompleted, pipeline.StatusCompletedWithWarning, pipeline.StatusFailed:
		return true
	}
	return false
}

func renderRecordTable(views []recordView) string {
	headers := []string{"Session", "User", "Status", "Progress", "Score", "Grade", "Updated"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		grade := "-"
		if v.Grade != nil {
			grade = *v.Grade
		}
		rows = append(rows, []string{
			v.SessionID,
			v.UserID,
			string(v.Status),
			fmt.Sprintf("%d%%", v.ProgressPercent),
			formatOptional(v.FinalScore, "%.1f"),
			grade,
			v.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft})
}
