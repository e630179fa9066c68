// cmd/history/history.go

package history

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/journal"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/output"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_cli"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_err"
	"github.com/CodeMonkeyCybersecurity/tfl/pkg/tfl_io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagKeys = map[string]string{
	"journal": "provision.journal_path",
}

// HistoryCmd lists provisioning runs recorded in the run journal.
var HistoryCmd = &cobra.Command{
	Use:   "history [RUN_ID]",
	Short: "List previous provisioning runs",
	Long: `Without arguments, list the most recent provisioning runs.
With a run ID (or a unique prefix of one), show every stage of that run.

Examples:
  tfl history
  tfl history --limit 50
  tfl history 3f2a9c1e`,
	Args: cobra.MaximumNArgs(1),
	RunE: tfl_cli.Wrap(func(rc *tfl_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		cfg, _, err := tfl_cli.LoadConfig(cmd, flagKeys)
		if err != nil {
			return err
		}
		path := cfg.Provision.JournalPath
		if _, err := os.Stat(path); err != nil {
			rc.Log.Debug("Journal not readable", zap.String("path", path), zap.Error(err))
			return tfl_err.NewUserError("no runs recorded yet (journal %s not found)", path)
		}

		j, err := journal.Open(path)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := j.Close(); closeErr != nil {
				rc.Log.Warn("Failed to close journal", zap.Error(closeErr))
			}
		}()

		if len(args) == 1 {
			run, err := j.Get(rc.Ctx, args[0])
			if err != nil {
				return tfl_err.NewExpectedError(err)
			}
			return showRun(run)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := j.Recent(rc.Ctx, limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			output.Stdout().Info("No runs recorded yet")
			return nil
		}
		return listRuns(runs)
	}),
}

func listRuns(runs []journal.Run) error {
	t := output.NewTableTo(os.Stdout).WithHeaders("RUN", "STARTED", "DURATION", "OUTCOME", "FAILED STAGE", "PROXY")
	for _, r := range runs {
		t.AddRow(
			short(r.ID),
			r.StartedAt.Local().Format(time.DateTime),
			formatDuration(r.Duration()),
			r.Outcome,
			r.FailedStage,
			strconv.FormatBool(r.EdgeProxy),
		)
	}
	return t.Render()
}

func showRun(r *journal.Run) error {
	if err := output.KeyValue(os.Stdout, [][2]string{
		{"Run", r.ID},
		{"Host", r.Hostname},
		{"Version", r.Version},
		{"Service", r.ServiceName},
		{"Started", r.StartedAt.Local().Format(time.DateTime)},
		{"Duration", formatDuration(r.Duration())},
		{"Outcome", r.Outcome},
		{"Error", r.Error},
	}); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout)

	t := output.NewTableTo(os.Stdout).WithHeaders("#", "STAGE", "STATUS", "DURATION", "MESSAGE")
	for _, s := range r.Stages {
		t.AddRow(
			strconv.Itoa(s.Seq),
			s.Stage,
			s.Status,
			formatDuration(time.Duration(s.DurationMS)*time.Millisecond),
			s.Message,
		)
	}
	return t.Render()
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(10 * time.Millisecond).String()
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	HistoryCmd.Flags().Int("limit", 10, "Number of runs to list")
	HistoryCmd.Flags().String("journal", shared.TflJournalFile, "Run journal database")
}
