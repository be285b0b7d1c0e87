package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/mantrad/internal/app"
	"github.com/sandeepkv93/mantrad/internal/countdown"
	"github.com/sandeepkv93/mantrad/internal/storage"
	"github.com/spf13/cobra"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show both countdowns as the TUI would resume them",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.close()

			sess.ctx.ResumeTimers()
			out := cmd.OutOrStdout()
			printTimer(out, "mantra", sess.ctx.Mantra())
			printTimer(out, "pomodoro", sess.ctx.Pomodoro())
			fmt.Fprintln(out, sess.ctx.TaskStats())
			printLastSaved(out, sess.store)
			return nil
		},
	}
}

func newMantraCmd(opts *rootOptions) *cobra.Command {
	mantraCmd := &cobra.Command{
		Use:   "mantra",
		Short: "Show or change the mantra",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.close()
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(sess.ctx.MantraLines(), "\n"))
			return nil
		},
	}

	mantraCmd.AddCommand(&cobra.Command{
		Use:   "set <text>",
		Short: "Replace the mantra text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.close()
			text := strings.ReplaceAll(strings.Join(args, " "), `\n`, "\n")
			if err := sess.ctx.SetMantraText(text); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Mantra updated!")
			return nil
		},
	})

	mantraCmd.AddCommand(&cobra.Command{
		Use:   "duration <seconds>",
		Short: "Set the mantra countdown length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secs, err := strconv.Atoi(strings.TrimSuffix(args[0], "s"))
			if err != nil || secs <= 0 {
				return fmt.Errorf("invalid duration %q", args[0])
			}
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.close()
			if err := sess.ctx.SetMantraDuration(secs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "mantra duration %ds\n", secs)
			return nil
		},
	})
	return mantraCmd
}

func printTimer(w io.Writer, name string, tm *countdown.Timer) {
	p := tm.Snapshot()
	remaining := int(math.Ceil(p.Remaining.Seconds()))
	fmt.Fprintf(w, "%-9s %-9s %3.0f%%  %s left of %s (%s)\n",
		name, p.Phase, p.Fraction*100,
		(time.Duration(remaining) * time.Second).String(), tm.Duration(), tm.Config().Policy)
}

type updateTracker interface {
	UpdatedAt(key string) (time.Time, error)
}

// printLastSaved reports when the task list was last written, for stores
// that track it.
func printLastSaved(w io.Writer, s storage.Store) {
	u, ok := s.(updateTracker)
	if !ok {
		return
	}
	at, err := u.UpdatedAt(app.KeyTasks)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "tasks saved %s\n", at.Local().Format("2006-01-02 15:04:05"))
}
