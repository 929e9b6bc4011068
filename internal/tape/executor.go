package tape

import (
	"fmt"
)

// Executor applies tape commands to a desktop. Window references are ids,
// unique id prefixes or titles; an empty reference means the active window.
type Executor interface {
	OpenAppByName(name string) error
	CloseWindowRef(ref string) error
	MinimizeWindowRef(ref string) error
	ToggleMaximizeRef(ref string) error
	FocusWindowRef(ref string) error
	MoveWindowRef(ref string, x, y int) error
	ToggleStartMenuCmd() error
	TypeText(text string) error
	PressEnter() error
	NotifyCmd(message string) error
}

// CommandExecutor dispatches parsed commands to an Executor.
type CommandExecutor struct {
	executor Executor
}

// NewCommandExecutor creates a command executor.
func NewCommandExecutor(executor Executor) *CommandExecutor {
	return &CommandExecutor{executor: executor}
}

// Execute runs one command. Sleep is a no-op here; the Player owns timing.
func (ce *CommandExecutor) Execute(cmd Command) error {
	if ce.executor == nil {
		return nil
	}

	var err error
	switch cmd.Type {
	case CommandTypeOpen:
		err = ce.executor.OpenAppByName(cmd.Args[0])
	case CommandTypeClose:
		err = ce.executor.CloseWindowRef(cmd.Target())
	case CommandTypeMinimize:
		err = ce.executor.MinimizeWindowRef(cmd.Target())
	case CommandTypeMaximize:
		err = ce.executor.ToggleMaximizeRef(cmd.Target())
	case CommandTypeFocus:
		err = ce.executor.FocusWindowRef(cmd.Target())
	case CommandTypeMove:
		err = ce.executor.MoveWindowRef(cmd.Target(), cmd.X, cmd.Y)
	case CommandTypeStartMenu:
		err = ce.executor.ToggleStartMenuCmd()
	case CommandTypeType:
		err = ce.executor.TypeText(cmd.Args[0])
	case CommandTypeEnter:
		err = ce.executor.PressEnter()
	case CommandTypeNotify:
		err = ce.executor.NotifyCmd(cmd.Args[0])
	case CommandTypeSleep:
		return nil
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	if err != nil {
		return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd.Type, err)
	}
	return nil
}
