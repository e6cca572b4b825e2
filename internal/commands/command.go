package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeShow    Type = "show"
	TypeUser    Type = "user"
	TypeClose   Type = "close"
	TypeNotDone Type = "notdone"
	TypeSkip    Type = "skip"
	TypeComment Type = "comment"
	TypeExport  Type = "export"
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

// ShowArgs selects the report date. Date accepts "today", "yesterday",
// "tomorrow" or an explicit YYYY-MM-DD; the executor resolves it.
type ShowArgs struct {
	Date string
}

// UserArgs switches whose report is shown. "all" clears the filter.
type UserArgs struct {
	UserID string
}

// StatusArgs closes a report row. Key is the row's comment key
// ("tmpl:<id>:<date>" or "task:<id>"); Note is an optional remark stored
// alongside the status change.
type StatusArgs struct {
	Key  string
	Note string
}

type CommentArgs struct {
	Key  string
	Text string
}

type ExportArgs struct {
	Path string
}

type Command struct {
	Type    Type
	Raw     string
	Show    *ShowArgs
	User    *UserArgs
	Status  *StatusArgs
	Comment *CommentArgs
	Export  *ExportArgs
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
	case TypeShow:
		return parseShow(input, args)
	case TypeUser:
		return parseUser(input, args)
	case TypeClose, TypeNotDone, TypeSkip:
		return parseStatus(Type(head), input, args)
	case TypeComment:
		return parseComment(input, args)
	case TypeExport:
		return parseExport(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseShow(raw string, args []string) (Command, error) {
	date := "today"
	if len(args) > 0 {
		date = strings.ToLower(args[0])
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Date: date}}, nil
}

func parseUser(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "user requires an id or 'all'"}
	}
	id := args[0]
	if strings.EqualFold(id, "all") {
		id = ""
	}
	return Command{Type: TypeUser, Raw: raw, User: &UserArgs{UserID: id}}, nil
}

func parseStatus(typ Type, raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a row key", typ)}
	}
	key := args[0]
	if !strings.Contains(key, ":") {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("malformed row key: %s", key)}
	}
	note := strings.TrimSpace(strings.Join(args[1:], " "))
	return Command{Type: typ, Raw: raw, Status: &StatusArgs{Key: key, Note: note}}, nil
}

func parseComment(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "comment requires a row key and text"}
	}
	key := args[0]
	if !strings.Contains(key, ":") {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("malformed row key: %s", key)}
	}
	return Command{Type: TypeComment, Raw: raw, Comment: &CommentArgs{Key: key, Text: strings.Join(args[1:], " ")}}, nil
}

func parseExport(raw string, args []string) (Command, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	return Command{Type: TypeExport, Raw: raw, Export: &ExportArgs{Path: path}}, nil
}
