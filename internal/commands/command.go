package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeGoto     Type = "goto"
	TypeGenerate Type = "generate"
	TypeStyle    Type = "style"
	TypeToggle   Type = "toggle"
	TypeAutogen  Type = "autogen"
	TypeHistory  Type = "history"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type GotoArgs struct {
	Day string
}

type StyleArgs struct {
	Style string
}

type ToggleArgs struct {
	Section string
}

type AutogenArgs struct {
	Enabled bool
}

type Command struct {
	Type    Type
	Raw     string
	Goto    *GotoArgs
	Style   *StyleArgs
	Toggle  *ToggleArgs
	Autogen *AutogenArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeGoto:
		return parseGoto(input, args)
	case TypeGenerate:
		return Command{Type: TypeGenerate, Raw: input}, nil
	case TypeStyle:
		return parseStyle(input, args)
	case TypeToggle:
		return parseToggle(input, args)
	case TypeAutogen:
		return parseAutogen(input, args)
	case TypeHistory:
		return Command{Type: TypeHistory, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a date (YYYY-MM-DD, today, yesterday)"}
	}
	day := strings.ToLower(strings.TrimSpace(args[0]))
	if day == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a date"}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Day: day}}, nil
}

func parseStyle(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "style requires a coaching style name"}
	}
	return Command{Type: TypeStyle, Raw: raw, Style: &StyleArgs{Style: strings.ToLower(args[0])}}, nil
}

func parseToggle(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "toggle requires a section name"}
	}
	return Command{Type: TypeToggle, Raw: raw, Toggle: &ToggleArgs{Section: strings.ToLower(args[0])}}, nil
}

func parseAutogen(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "autogen requires on or off"}
	}
	switch strings.ToLower(args[0]) {
	case "on", "1", "true":
		return Command{Type: TypeAutogen, Raw: raw, Autogen: &AutogenArgs{Enabled: true}}, nil
	case "off", "0", "false":
		return Command{Type: TypeAutogen, Raw: raw, Autogen: &AutogenArgs{Enabled: false}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("autogen accepts on or off, got %q", args[0])}
	}
}
