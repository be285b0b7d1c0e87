package update

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/mantrad/internal/app"
	"github.com/sandeepkv93/mantrad/internal/countdown"
	"github.com/sandeepkv93/mantrad/internal/scheduler"
)

func tickCmd(tm *countdown.Timer) tea.Cmd {
	id, gen := tm.Config().KeyPrefix, tm.Generation()
	return tea.Tick(tm.Config().TickInterval, func(time.Time) tea.Msg {
		return TimerTickMsg{Timer: id, Generation: gen}
	})
}

func waitForAlarmCmd(ch <-chan scheduler.Alarm) tea.Cmd {
	return func() tea.Msg {
		a, ok := <-ch
		if !ok {
			return nil
		}
		return AlarmMsg{Alarm: a}
	}
}

func (m Model) onTimerTick(msg TimerTickMsg) (tea.Model, tea.Cmd) {
	tm, err := m.Ctx.Timer(msg.Timer)
	if err != nil {
		return m, nil
	}
	if tm.Generation() != msg.Generation || tm.Phase() != countdown.PhaseRunning {
		return m, nil
	}
	tm.Tick(m.Ctx.Clock().Monotonic())
	if tm.Phase() == countdown.PhaseCompleted {
		m.onTimerCompleted(tm)
		return m, nil
	}
	return m, tickCmd(tm)
}

func (m Model) onAlarm(msg AlarmMsg) (tea.Model, tea.Cmd) {
	var wait tea.Cmd
	if m.Alarms != nil {
		wait = waitForAlarmCmd(m.Alarms.C())
	}
	tm, err := m.Ctx.Timer(msg.Alarm.ID)
	if err != nil {
		return m, wait
	}
	wasRunning := tm.Phase() == countdown.PhaseRunning
	_, restart := m.Ctx.HandleAlarm(msg.Alarm)
	if wasRunning && tm.Phase() == countdown.PhaseCompleted {
		m.onTimerCompleted(tm)
	}
	if restart {
		return m, tea.Batch(wait, tickCmd(tm))
	}
	return m, wait
}

// onTerminalFocus re-syncs both countdowns with their checkpoints, the
// terminal counterpart of a page becoming visible again.
func (m Model) onTerminalFocus() (tea.Model, tea.Cmd) {
	timers := []*countdown.Timer{m.Ctx.Mantra(), m.Ctx.Pomodoro()}
	running := make(map[*countdown.Timer]bool, len(timers))
	for _, tm := range timers {
		running[tm] = tm.Phase() == countdown.PhaseRunning
	}
	cmds := make([]tea.Cmd, 0, len(timers))
	for _, tm := range m.Ctx.ResumeTimers() {
		cmds = append(cmds, tickCmd(tm))
	}
	for _, tm := range timers {
		if running[tm] && tm.Phase() == countdown.PhaseCompleted {
			m.onTimerCompleted(tm)
		}
	}
	if m.Ctx.Pomodoro().Phase() == countdown.PhaseRunning && !m.spinnerActive {
		m.spinnerActive = true
		cmds = append(cmds, m.pomoSpinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) onTimerCompleted(tm *countdown.Timer) {
	switch tm.Config().KeyPrefix {
	case app.PomodoroPrefix:
		m.spinnerActive = false
		msg := m.tr.T("Time's up!")
		m.Status = StatusBar{Text: msg, IsError: false}
		m.notify("Pomodoro", msg, "alert")
		if m.soundEnabled {
			m.chime.Play()
		}
	case app.MantraPrefix:
		m.Status = StatusBar{Text: fmt.Sprintf("mantra: %s", m.tr.T("Done")), IsError: false}
	}
}

// toggleTimer toggles tm and starts its tick loop when it entered Running.
func (m *Model) toggleTimer(tm *countdown.Timer) tea.Cmd {
	before := tm.Phase()
	after := tm.Toggle()
	if after != countdown.PhaseRunning || before == countdown.PhaseRunning {
		if tm == m.Ctx.Pomodoro() {
			m.spinnerActive = false
		}
		return nil
	}
	cmds := []tea.Cmd{tickCmd(tm)}
	if tm == m.Ctx.Pomodoro() && !m.spinnerActive {
		m.spinnerActive = true
		cmds = append(cmds, m.pomoSpinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m Model) mantraButton() string {
	switch m.Ctx.Mantra().Phase() {
	case countdown.PhaseRunning:
		return m.tr.T("Reset")
	case countdown.PhaseCompleted:
		return m.tr.T("Done")
	default:
		return m.tr.T("Start")
	}
}

func (m Model) pomodoroButton() string {
	p := m.Ctx.Pomodoro().Snapshot()
	switch {
	case p.Phase == countdown.PhaseRunning:
		return m.tr.T("Pause")
	case p.Phase == countdown.PhaseIdle && p.Elapsed > 0:
		return m.tr.T("Resume")
	case p.Phase == countdown.PhaseCompleted:
		return m.tr.T("Reset")
	default:
		return m.tr.T("Start")
	}
}

// formatClock renders a remaining duration as m:ss, rounding up so the
// display only reads 0:00 once the countdown is over.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(math.Ceil(d.Seconds()))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func formatSeconds(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%ds", int(math.Ceil(d.Seconds())))
}
