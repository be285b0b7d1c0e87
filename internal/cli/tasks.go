package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/mantrad/internal/views"
	"github.com/spf13/cobra"
)

func newTasksCmd(opts *rootOptions) *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and edit tasks",
	}

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.close()
			out := cmd.OutOrStdout()
			for i, t := range sess.ctx.Tasks() {
				mark := " "
				if t.Done {
					mark = "x"
				}
				fmt.Fprintf(out, "%2d. [%s] %s\n", i+1, mark, t.Text)
			}
			fmt.Fprintln(out, sess.ctx.TaskStats())
			return nil
		},
	})

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.close()
			t, err := sess.ctx.AddTask(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added task: %s (%d/%d)\n",
				t.Text, len(sess.ctx.Tasks()), sess.ctx.TaskCapacity())
			return nil
		},
	})

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "done <n>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := position(args[0])
			if err != nil {
				return err
			}
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.close()
			if err := sess.ctx.ToggleTask(i); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.ctx.TaskStats())
			return nil
		},
	})
	return tasksCmd
}

func newNotesCmd(opts *rootOptions) *cobra.Command {
	notesCmd := &cobra.Command{
		Use:   "notes",
		Short: "Browse archived notes",
	}

	notesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List archived notes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.close()
			out := cmd.OutOrStdout()
			notes := sess.ctx.Archive()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No archived notes")
				return nil
			}
			for i, n := range notes {
				fmt.Fprintf(out, "%2d. %s  %s  %s\n", i+1, n.Date.Local().Format("2006-01-02"), n.Title, strings.ReplaceAll(n.Preview(), "\n", " "))
			}
			return nil
		},
	})

	notesCmd.AddCommand(&cobra.Command{
		Use:   "show <n>",
		Short: "Render an archived note as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := position(args[0])
			if err != nil {
				return err
			}
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.close()
			notes := sess.ctx.Archive()
			if i >= len(notes) {
				return fmt.Errorf("no archived note #%d", i+1)
			}
			n := notes[i]
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n\n%s\n", n.Title, views.RenderMarkdown(n.Content, string(sess.ctx.Theme())))
			return nil
		},
	})
	return notesCmd
}

// position parses a one-based list position into an index.
func position(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q", arg)
	}
	return n - 1, nil
}
