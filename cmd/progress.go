package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lectora/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the progress log",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, _ := cmd.Flags().GetBool("summary")
		asCSV, _ := cmd.Flags().GetBool("csv")
		email, _ := cmd.Flags().GetString("email")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		log := progress.NewLog(st.Progress())
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		var recs []progress.Record
		if email != "" {
			recs, err = log.ForUser(ctx, email)
		} else {
			recs, err = log.ReadAll(ctx)
		}
		if err != nil {
			return fmt.Errorf("read progress: %w", err)
		}

		if asCSV {
			return progress.WriteCSV(out, recs)
		}
		if len(recs) == 0 {
			fmt.Fprintln(out, "No attempts recorded yet.")
			return nil
		}

		if summary {
			fmt.Fprintf(out, "%-32s  %-12s  %8s  %6s  %7s  %s\n",
				"Email", "Level", "Attempts", "Best", "Average", "Last")
			fmt.Fprintln(out, strings.Repeat("─", 90))
			for _, s := range progress.Summarize(recs) {
				fmt.Fprintf(out, "%-32s  %-12s  %8d  %6s  %7.1f  %s\n",
					truncate(s.Email, 32), s.Level, s.Attempts,
					fmt.Sprintf("%d/%d", s.Best, s.Total), s.Average,
					s.Last.Local().Format("2006-01-02 15:04"))
			}
			return nil
		}

		fmt.Fprintf(out, "%-19s  %-32s  %-12s  %s\n", "Time", "Email", "Level", "Score")
		fmt.Fprintln(out, strings.Repeat("─", 76))
		for _, r := range recs {
			fmt.Fprintf(out, "%-19s  %-32s  %-12s  %d/%d\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(r.Email, 32), r.Level, r.Score, r.Total)
		}
		return nil
	},
}

func init() {
	progressCmd.Flags().Bool("summary", false, "Aggregate per user and level")
	progressCmd.Flags().Bool("csv", false, "Write CSV to stdout")
	progressCmd.Flags().String("email", "", "Only show one user's attempts")
}
