package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Goto     func(GotoArgs) (Result, error)
	Generate func() (Result, error)
	Style    func(StyleArgs) (Result, error)
	Toggle   func(ToggleArgs) (Result, error)
	Autogen  func(AutogenArgs) (Result, error)
	History  func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goto handler not configured"}
		}
		return handlers.Goto(*cmd.Goto)
	case TypeGenerate:
		if handlers.Generate == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "generate handler not configured"}
		}
		return handlers.Generate()
	case TypeStyle:
		if handlers.Style == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "style handler not configured"}
		}
		return handlers.Style(*cmd.Style)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "toggle handler not configured"}
		}
		return handlers.Toggle(*cmd.Toggle)
	case TypeAutogen:
		if handlers.Autogen == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "autogen handler not configured"}
		}
		return handlers.Autogen(*cmd.Autogen)
	case TypeHistory:
		if handlers.History == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "history handler not configured"}
		}
		return handlers.History()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
