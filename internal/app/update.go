package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/winnux/internal/apps"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/tape"
	"github.com/Gaurav-Gosain/winnux/internal/taskbar"
)

// InputHandler is a function type that handles input messages.
// This allows Update to delegate to the input package without creating a
// circular dependency.
type InputHandler func(msg tea.Msg, d *Desktop) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
var inputHandler InputHandler

// SetInputHandler registers the input handler function. It must be called
// before the program starts.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the taskbar clock and tray, and the init commands of windows
// opened at construction.
func (d *Desktop) Init() tea.Cmd {
	cmds := append([]tea.Cmd{d.bar.Init()}, d.drainPending()...)
	return tea.Batch(cmds...)
}

// Update handles all incoming messages and updates the desktop state.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := d.update(msg)
	if len(d.pending) == 0 {
		return model, cmd
	}
	return model, tea.Batch(append(d.drainPending(), cmd)...)
}

func (d *Desktop) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := d.bar.Update(msg); ok {
		if _, isClock := msg.(taskbar.ClockMsg); isClock {
			d.CleanupNotifications()
		}
		return d, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.Resize(msg.Width, msg.Height)
		return d, nil

	case tea.BlurMsg:
		d.drag.Cancel()
		return d, nil

	case tea.FocusMsg:
		return d, nil

	case apps.Msg:
		if _, ok := d.contents[msg.WindowID]; !ok {
			return d, nil
		}
		if tc, ok := msg.Inner.(apps.ThemeChangedMsg); ok {
			name := tc.Name
			if name == "" {
				name = "terminal default"
			}
			d.ShowNotification("Theme: "+name, "info", config.NotificationDuration)
		}
		return d, d.SendToContent(msg.WindowID, msg.Inner)

	case tape.StepMsg:
		if d.script == nil || msg.Player != d.script.ID() {
			return d, nil
		}
		return d, d.script.Step(d.scriptExec)

	case tape.FinishedMsg:
		if d.script == nil || msg.Player != d.script.ID() {
			return d, nil
		}
		for _, err := range msg.Errors {
			d.LogError("script: %v", err)
		}
		done, _ := d.script.Progress()
		d.script = nil
		if len(msg.Errors) > 0 {
			d.ShowNotification("Script finished with errors", "warning", config.NotificationDuration)
		} else {
			d.LogInfo("script finished (%d commands)", done)
		}
		return d, nil
	}

	if inputHandler != nil {
		return inputHandler(msg, d)
	}
	return d, nil
}

// PlayScript starts playing commands. A script already running is replaced.
func (d *Desktop) PlayScript(commands []tape.Command) tea.Cmd {
	d.script = tape.NewPlayer(commands)
	d.LogInfo("script started (%d commands)", len(commands))
	return d.script.Start()
}

// QueueScript starts commands when the program starts.
func (d *Desktop) QueueScript(commands []tape.Command) {
	d.queue(d.PlayScript(commands))
}

// ScriptRunning reports whether a script is playing.
func (d *Desktop) ScriptRunning() bool { return d.script != nil }

func (d *Desktop) drainPending() []tea.Cmd {
	cmds := d.pending
	d.pending = nil
	return cmds
}
