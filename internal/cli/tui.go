package cli

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/mantrad/internal/chime"
	"github.com/sandeepkv93/mantrad/internal/i18n"
	"github.com/sandeepkv93/mantrad/internal/scheduler"
	"github.com/sandeepkv93/mantrad/internal/update"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	// The alt screen owns stdout, so logs go to a file or nowhere.
	if opts.verbose {
		f, err := tea.LogToFile(cfg.LogFile, "mantrad")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	sess, err := openSession(opts)
	if err != nil {
		return err
	}
	defer sess.close()

	engine := scheduler.NewEngine(sess.cfg.AlarmBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if sess.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	var player update.Chimer
	if sess.cfg.Sound {
		player = chime.NewPlayer()
	}

	model := update.NewModel(sess.ctx, update.Options{
		Alarms:       engine,
		Notifier:     notifier,
		Chime:        player,
		Translator:   i18n.New(i18n.Detect(sess.cfg.Language)),
		StorageLabel: sess.label,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("mantrad failed: %w", err)
	}
	if engine.Dropped() > 0 {
		log.Printf("cli: %d alarms dropped", engine.Dropped())
	}
	return nil
}
