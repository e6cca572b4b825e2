package commands

import "fmt"

type Result struct {
	Message string
}

// Handlers binds parsed commands to the application. Status verbs share
// one handler; the command type carries which status to write.
type Handlers struct {
	Show    func(ShowArgs) (Result, error)
	User    func(UserArgs) (Result, error)
	Status  func(Type, StatusArgs) (Result, error)
	Comment func(CommentArgs) (Result, error)
	Export  func(ExportArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	case TypeUser:
		if handlers.User == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "user handler not configured"}
		}
		return handlers.User(*cmd.User)
	case TypeClose, TypeNotDone, TypeSkip:
		if handlers.Status == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "status handler not configured"}
		}
		return handlers.Status(cmd.Type, *cmd.Status)
	case TypeComment:
		if handlers.Comment == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "comment handler not configured"}
		}
		return handlers.Comment(*cmd.Comment)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "export handler not configured"}
		}
		return handlers.Export(*cmd.Export)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
