// Package tape implements desktop automation scripts: a line-oriented .tape
// language, an equivalent YAML step list, and a player that feeds the parsed
// commands to a running desktop.
package tape

import (
	"strconv"
	"strings"
	"time"
)

// CommandType identifies a script command.
type CommandType string

// Known commands.
const (
	CommandTypeOpen      CommandType = "Open"
	CommandTypeClose     CommandType = "Close"
	CommandTypeMinimize  CommandType = "Minimize"
	CommandTypeMaximize  CommandType = "Maximize"
	CommandTypeFocus     CommandType = "Focus"
	CommandTypeMove      CommandType = "Move"
	CommandTypeStartMenu CommandType = "StartMenu"
	CommandTypeType      CommandType = "Type"
	CommandTypeEnter     CommandType = "Enter"
	CommandTypeSleep     CommandType = "Sleep"
	CommandTypeNotify    CommandType = "Notify"
)

// arity is the accepted argument count range per command.
type arity struct{ min, max int }

var commandArity = map[CommandType]arity{
	CommandTypeOpen:      {1, 1},
	CommandTypeClose:     {0, 1},
	CommandTypeMinimize:  {0, 1},
	CommandTypeMaximize:  {0, 1},
	CommandTypeFocus:     {1, 1},
	CommandTypeMove:      {3, 3},
	CommandTypeStartMenu: {0, 0},
	CommandTypeType:      {1, 1},
	CommandTypeEnter:     {0, 0},
	CommandTypeSleep:     {1, 1},
	CommandTypeNotify:    {1, 1},
}

// lookupType resolves a command name case-insensitively.
func lookupType(name string) (CommandType, bool) {
	for t := range commandArity {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return "", false
}

// Command is one parsed script step.
type Command struct {
	Type  CommandType
	Args  []string
	Delay time.Duration // Sleep only
	X, Y  int           // Move only
	Line  int
}

// Target returns the window reference of commands that take one, or "".
func (c Command) Target() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// String renders the command back in .tape syntax.
func (c Command) String() string {
	parts := []string{string(c.Type)}
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\"#") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
