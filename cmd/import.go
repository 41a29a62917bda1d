package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/legacy"
	"github.com/abhisek/lectora/internal/progress"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import usuarios.csv and progreso.csv from the spreadsheet version",
}

var importUsersCmd = &cobra.Command{
	Use:   "users <usuarios.csv>",
	Short: "Import accounts with their existing password hashes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rep, err := legacy.ImportUsers(cmd.Context(), f, accounts.NewService(st.Users()))
		printReport(cmd, rep)
		return err
	},
}

var importProgressCmd = &cobra.Command{
	Use:   "progress <progreso.csv>",
	Short: "Import legacy quiz scores",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rep, err := legacy.ImportProgress(cmd.Context(), f, progress.NewLog(st.Progress()), time.Now())
		printReport(cmd, rep)
		return err
	},
}

func printReport(cmd *cobra.Command, rep *legacy.Report) {
	if rep == nil {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d row(s).\n", rep.Imported)
	for _, s := range rep.Skipped {
		fmt.Fprintf(out, "  skipped line %d (%s): %s\n", s.Line, s.Email, s.Reason)
	}
}

func init() {
	importCmd.AddCommand(importUsersCmd)
	importCmd.AddCommand(importProgressCmd)
}
