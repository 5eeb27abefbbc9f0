package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mcad/internal/bootstrap"
	cadencedto "mcad/internal/modules/cadence/dto"
	notifydto "mcad/internal/modules/notify/dto"
	rosterdomain "mcad/internal/modules/roster/domain"
	rosterdto "mcad/internal/modules/roster/dto"
	"mcad/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "mcad",
		Short:         "Mentoring Cadence Tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newMenteeCmd(&dataDir))
	root.AddCommand(newCheckCmd(&dataDir))
	root.AddCommand(newCycleCmd(&dataDir))
	root.AddCommand(newAlertsCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newRefreshCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
	root.AddCommand(newNotifyCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func parseDateFlag(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return rosterdomain.ParseDate(value)
}

func printSyncStatus(cmd *cobra.Command, synced bool, warning string) {
	if !synced {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", warning)
	}
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the mcad terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newMenteeCmd(dataDir *string) *cobra.Command {
	mentee := &cobra.Command{Use: "mentee", Short: "Manage tracked mentees"}

	var contact, last, next, day, endpoint string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Track a new mentee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			lastDate, err := parseDateFlag(last)
			if err != nil {
				return err
			}
			if lastDate.IsZero() {
				lastDate = time.Now().UTC()
			}
			nextDate, err := parseDateFlag(next)
			if err != nil {
				return err
			}
			out, err := app.RosterCLI.Add(context.Background(), rosterdto.AddInput{
				Name:           args[0],
				ContactLink:    contact,
				LastSession:    lastDate,
				NextSession:    nextDate,
				ReportWeekday:  day,
				NotifyEndpoint: endpoint,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (next session %s)\n",
				out.Mentee.Name, out.Mentee.NextSession.Format(rosterdomain.DateLayout))
			printSyncStatus(cmd, out.Synced, out.SyncWarning)
			return nil
		},
	}
	add.Flags().StringVar(&contact, "contact", "", "chat link")
	add.Flags().StringVar(&last, "last", "", "last session date YYYY-MM-DD (default today)")
	add.Flags().StringVar(&next, "next", "", "next session date YYYY-MM-DD (default last+7)")
	add.Flags().StringVar(&day, "report-day", "Monday", "weekly report day")
	add.Flags().StringVar(&endpoint, "webhook", "", "notify endpoint")

	mentee.AddCommand(add)

	mentee.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tracked mentees",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.RosterCLI.List(context.Background())
			if err != nil {
				return err
			}
			if out.Warning != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", out.Warning)
			}
			if len(out.Mentees) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no mentees")
				return nil
			}
			for _, m := range out.Mentees {
				dates := "dates unreadable"
				if m.DatesValid {
					dates = fmt.Sprintf("%s > %s",
						m.LastSession.Format(rosterdomain.DateLayout),
						m.NextSession.Format(rosterdomain.DateLayout))
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n",
					m.ID, m.Name, dates, m.ReportWeekday, checkpointCells(m.Checkpoints))
			}
			return nil
		},
	})

	mentee.AddCommand(&cobra.Command{
		Use:   "show <mentee>",
		Short: "Show one mentee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			m, err := app.RosterCLI.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", m.Name, m.ID)
			if m.ContactLink != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "contact: %s\n", m.ContactLink)
			}
			if m.DatesValid {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "last session: %s\nnext session: %s\n",
					m.LastSession.Format(rosterdomain.DateLayout),
					m.NextSession.Format(rosterdomain.DateLayout))
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session dates unreadable")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "report day: %s\ncheckpoints: %s\n",
				m.ReportWeekday, checkpointCells(m.Checkpoints))
			if m.NotifyEndpoint != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "webhook: %s\n", m.NotifyEndpoint)
			}
			return nil
		},
	})

	var editName, editContact, editLast, editNext, editDay, editEndpoint string
	edit := &cobra.Command{
		Use:   "edit <mentee>",
		Short: "Edit mentee fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			input := rosterdto.EditInput{Selector: args[0]}
			if cmd.Flags().Changed("name") {
				input.Name = &editName
			}
			if cmd.Flags().Changed("contact") {
				input.ContactLink = &editContact
			}
			if cmd.Flags().Changed("last") {
				date, err := rosterdomain.ParseDate(editLast)
				if err != nil {
					return err
				}
				input.LastSession = &date
			}
			if cmd.Flags().Changed("next") {
				date, err := rosterdomain.ParseDate(editNext)
				if err != nil {
					return err
				}
				input.NextSession = &date
			}
			if cmd.Flags().Changed("report-day") {
				input.ReportWeekday = &editDay
			}
			if cmd.Flags().Changed("webhook") {
				input.NotifyEndpoint = &editEndpoint
			}
			out, err := app.RosterCLI.Edit(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", out.Mentee.Name)
			printSyncStatus(cmd, out.Synced, out.SyncWarning)
			return nil
		},
	}
	edit.Flags().StringVar(&editName, "name", "", "display name")
	edit.Flags().StringVar(&editContact, "contact", "", "chat link")
	edit.Flags().StringVar(&editLast, "last", "", "last session date YYYY-MM-DD")
	edit.Flags().StringVar(&editNext, "next", "", "next session date YYYY-MM-DD")
	edit.Flags().StringVar(&editDay, "report-day", "", "weekly report day")
	edit.Flags().StringVar(&editEndpoint, "webhook", "", "notify endpoint")
	mentee.AddCommand(edit)

	mentee.AddCommand(&cobra.Command{
		Use:   "remove <mentee>",
		Short: "Stop tracking a mentee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.RosterCLI.Remove(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", out.Mentee.Name)
			printSyncStatus(cmd, out.Synced, out.SyncWarning)
			return nil
		},
	})

	return mentee
}

func newCheckCmd(dataDir *string) *cobra.Command {
	check := &cobra.Command{Use: "check", Short: "Checkpoint commands"}

	check.AddCommand(&cobra.Command{
		Use:   "toggle <mentee> <checkpoint>",
		Short: "Flip a checkpoint (1..3)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkpoint, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("checkpoint must be a number: %w", err)
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.CadenceCLI.Toggle(context.Background(), cadencedto.ToggleInput{
				Selector:   args[0],
				Checkpoint: checkpoint,
			})
			if err != nil {
				return err
			}
			state := "cleared"
			if out.Mentee.Checkpoints[checkpoint-1] {
				state = "done"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "checkpoint %d %s for %s\n", checkpoint, state, out.Mentee.Name)
			printSyncStatus(cmd, out.Synced, out.SyncWarning)
			return nil
		},
	})

	return check
}

func newCycleCmd(dataDir *string) *cobra.Command {
	cycle := &cobra.Command{Use: "cycle", Short: "Cycle transitions"}

	var last, next string
	finish := &cobra.Command{
		Use:   "finish <mentee>",
		Short: "Archive this cycle and start the next",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			lastDate, err := parseDateFlag(last)
			if err != nil {
				return err
			}
			nextDate, err := parseDateFlag(next)
			if err != nil {
				return err
			}
			out, err := app.CadenceCLI.FinishCycle(context.Background(), cadencedto.FinishInput{
				Selector:       args[0],
				NewLastSession: lastDate,
				NewNextSession: nextDate,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cycle closed for %s, next session %s\n",
				out.Mentee.Name, out.Mentee.NextSession.Format(rosterdomain.DateLayout))
			printSyncStatus(cmd, out.Synced, out.SyncWarning)
			return nil
		},
	}
	finish.Flags().StringVar(&last, "last", "", "new last session date YYYY-MM-DD (default today)")
	finish.Flags().StringVar(&next, "next", "", "new next session date YYYY-MM-DD (default last+7)")
	cycle.AddCommand(finish)

	cycle.AddCommand(&cobra.Command{
		Use:   "batch",
		Short: "Close every cycle whose next session has arrived",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.CadenceCLI.BatchFinish(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "processed %d, skipped %d\n", out.Processed, out.Skipped)
			for _, warning := range out.Warnings {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", warning)
			}
			return nil
		},
	})

	return cycle
}

func newAlertsCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Show today's overdue checkpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.CadenceCLI.Alerts(context.Background())
			if err != nil {
				return err
			}
			if out.Warning != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", out.Warning)
			}
			if len(out.Alerts) == 0 && len(out.DueToday) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all caught up")
				return nil
			}
			for _, alert := range out.Alerts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "P%d %s: %s\n", alert.Checkpoint, alert.MenteeName, alert.Reason)
			}
			for _, due := range out.DueToday {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "P%d %s: %s\n", due.Checkpoint, due.MenteeName, due.Reason)
			}
			return nil
		},
	}
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Cycle archive"}

	history.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List archived cycles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.CadenceCLI.History(context.Background())
			if err != nil {
				return err
			}
			if len(out.Entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no history")
				return nil
			}
			for _, entry := range out.Entries {
				logged := "unknown"
				if !entry.LoggedDate.IsZero() {
					logged = entry.LoggedDate.Format(rosterdomain.DateLayout)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					logged, entry.MenteeName, checkpointCells(entry.Checkpoints))
			}
			return nil
		},
	})

	return history
}

func newRefreshCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload the roster from the record store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.RosterCLI.Refresh(context.Background())
			if err != nil {
				return err
			}
			if out.Warning != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", out.Warning)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "refreshed %d mentees\n", len(out.Mentees))
			return nil
		},
	}
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the local read models",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if err := app.RosterCLI.Reindex(ctx); err != nil {
				return err
			}
			if err := app.CadenceCLI.ReindexHistory(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindexed")
			return nil
		},
	}
}

func newNotifyCmd(dataDir *string) *cobra.Command {
	notify := &cobra.Command{Use: "notify", Short: "Nudge delivery"}

	var text string
	nudge := &cobra.Command{
		Use:   "nudge <mentee>",
		Short: "Send a nudge to a mentee's endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.NotifyCLI.Nudge(context.Background(), notifydto.NudgeInput{
				Selector: args[0],
				Text:     text,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "nudged %s via %s\n", out.MenteeName, out.Via)
			return nil
		},
	}
	nudge.Flags().StringVar(&text, "text", "", "message text (default nudge)")
	notify.AddCommand(nudge)

	notify.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check the notification delivery path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.NotifyCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if !out.ManifestFound {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no notifier configured, using %s\n", out.Fallback)
				if out.ManifestError != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "manifest: %s\n", out.ManifestError)
				}
				return nil
			}
			if out.ManifestError != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "manifest: %s\n", out.ManifestError)
				return nil
			}
			if out.PluginError != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plugin: %s\n", out.PluginError)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notifier %s %s ok\n", out.PluginName, out.PluginVersion)
			return nil
		},
	})

	return notify
}

func checkpointCells(checkpoints [3]bool) string {
	cells := make([]string, 0, 3)
	for _, done := range checkpoints {
		cells = append(cells, rosterdomain.FormatBool(done))
	}
	return strings.Join(cells, "/")
}
