package tape

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownCommand is returned for a command name the language lacks.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrArguments is returned when a command gets the wrong arguments.
	ErrArguments = errors.New("bad arguments")
	// ErrUnterminatedQuote is returned for a string missing its closing quote.
	ErrUnterminatedQuote = errors.New("unterminated quote")
)

// ParseError locates a failure in the script source.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a .tape script. Each non-blank line holds one command; text
// after an unquoted # is a comment.
func Parse(src string) ([]Command, error) {
	var cmds []Command
	for i, raw := range strings.Split(src, "\n") {
		line := i + 1
		fields, err := tokenize(raw)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		if len(fields) == 0 {
			continue
		}
		cmd, err := build(fields[0], fields[1:], line)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// tokenize splits a line on whitespace. Double-quoted strings are single
// tokens and may use \" \\ \n \t escapes.
func tokenize(line string) ([]string, error) {
	var (
		out     []string
		cur     strings.Builder
		inQuote bool
		hasTok  bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuote && r == '\\' && i+1 < len(runes):
			i++
			switch runes[i] {
			case 'n':
				cur.WriteRune('\n')
			case 't':
				cur.WriteRune('\t')
			default:
				cur.WriteRune(runes[i])
			}
		case r == '"':
			inQuote = !inQuote
			hasTok = true
		case inQuote:
			cur.WriteRune(r)
		case r == '#':
			i = len(runes)
		case r == ' ' || r == '\t' || r == '\r':
			if hasTok {
				out = append(out, cur.String())
				cur.Reset()
				hasTok = false
			}
		default:
			cur.WriteRune(r)
			hasTok = true
		}
	}
	if inQuote {
		return nil, ErrUnterminatedQuote
	}
	if hasTok {
		out = append(out, cur.String())
	}
	return out, nil
}

// build validates name and args and returns the command.
func build(name string, args []string, line int) (Command, error) {
	t, ok := lookupType(name)
	if !ok {
		return Command{}, &ParseError{Line: line, Err: fmt.Errorf("%w: %q", ErrUnknownCommand, name)}
	}
	want := commandArity[t]
	if len(args) < want.min || len(args) > want.max {
		return Command{}, &ParseError{Line: line, Err: fmt.Errorf("%w: %s takes %s, got %d", ErrArguments, t, want, len(args))}
	}

	cmd := Command{Type: t, Args: args, Line: line}
	switch t {
	case CommandTypeSleep:
		d, err := parseDelay(args[0])
		if err != nil {
			return Command{}, &ParseError{Line: line, Err: fmt.Errorf("%w: %v", ErrArguments, err)}
		}
		cmd.Delay = d
	case CommandTypeMove:
		x, errX := strconv.Atoi(args[1])
		y, errY := strconv.Atoi(args[2])
		if err := errors.Join(errX, errY); err != nil {
			return Command{}, &ParseError{Line: line, Err: fmt.Errorf("%w: Move coordinates: %v", ErrArguments, err)}
		}
		cmd.X, cmd.Y = x, y
	}
	return cmd, nil
}

func (a arity) String() string {
	switch {
	case a.min == a.max && a.min == 1:
		return "1 argument"
	case a.min == a.max:
		return fmt.Sprintf("%d arguments", a.min)
	default:
		return fmt.Sprintf("%d to %d arguments", a.min, a.max)
	}
}

// parseDelay accepts Go durations ("500ms", "2s") and bare seconds ("1.5").
func parseDelay(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("negative delay %q", s)
		}
		return d, nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("invalid delay %q", s)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// ParseYAML reads a step list where each item maps one command name to its
// arguments: nothing, a scalar, or a sequence of scalars.
//
//	- open: terminal
//	- move: [Terminal, 10, 4]
//	- enter:
func ParseYAML(data []byte) ([]Command, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, &ParseError{Line: root.Line, Err: errors.New("expected a list of steps")}
	}

	cmds := make([]Command, 0, len(root.Content))
	for _, step := range root.Content {
		if step.Kind != yaml.MappingNode || len(step.Content) != 2 {
			return nil, &ParseError{Line: step.Line, Err: errors.New("each step must have exactly one command")}
		}
		key, val := step.Content[0], step.Content[1]

		var args []string
		switch val.Kind {
		case yaml.ScalarNode:
			if val.Tag != "!!null" {
				args = []string{val.Value}
			}
		case yaml.SequenceNode:
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, &ParseError{Line: item.Line, Err: fmt.Errorf("%w: arguments must be scalars", ErrArguments)}
				}
				args = append(args, item.Value)
			}
		default:
			return nil, &ParseError{Line: val.Line, Err: fmt.Errorf("%w: arguments must be a scalar or a list", ErrArguments)}
		}

		cmd, err := build(key.Value, args, key.Line)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// Load parses the script at path. Files ending in .yaml or .yml are read as
// step lists; anything else as .tape.
func Load(path string) ([]Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var cmds []Command
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cmds, err = ParseYAML(data)
	default:
		cmds, err = Parse(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cmds, nil
}

// Validate checks that the script at path parses, without running it.
func Validate(path string) error {
	_, err := Load(path)
	return err
}
