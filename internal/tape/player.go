package tape

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

// StepMsg asks the program to run the next batch of commands.
type StepMsg struct {
	// Player identifies the script so a stale tick from an earlier script
	// cannot advance a newer one.
	Player int64
}

// FinishedMsg is sent once every command has run.
type FinishedMsg struct {
	Player int64
	Errors []error
}

var nextPlayerID atomic.Int64

// Player walks a command list, pausing on Sleep.
type Player struct {
	id       int64
	commands []Command
	index    int
	errors   []error
}

// NewPlayer creates a player positioned at the first command.
func NewPlayer(commands []Command) *Player {
	return &Player{id: nextPlayerID.Add(1), commands: commands}
}

// ID identifies this player in StepMsg and FinishedMsg.
func (p *Player) ID() int64 { return p.id }

// Start returns the command that triggers the first step.
func (p *Player) Start() tea.Cmd {
	id := p.id
	return func() tea.Msg { return StepMsg{Player: id} }
}

// IsFinished reports whether every command has been consumed.
func (p *Player) IsFinished() bool { return p.index >= len(p.commands) }

// Progress returns how many commands have run and the total.
func (p *Player) Progress() (done, total int) { return p.index, len(p.commands) }

// Errors returns the execution errors collected so far.
func (p *Player) Errors() []error { return p.errors }

// Step executes commands until it reaches a Sleep or the end of the script.
// It returns the command that schedules the next step, or a FinishedMsg.
// Execution errors are collected and do not stop playback.
func (p *Player) Step(ce *CommandExecutor) tea.Cmd {
	id := p.id
	for !p.IsFinished() {
		cmd := p.commands[p.index]
		p.index++
		if cmd.Type == CommandTypeSleep {
			return tea.Tick(cmd.Delay, func(time.Time) tea.Msg { return StepMsg{Player: id} })
		}
		if err := ce.Execute(cmd); err != nil {
			p.errors = append(p.errors, err)
		}
	}
	errs := p.errors
	return func() tea.Msg { return FinishedMsg{Player: id, Errors: errs} }
}
