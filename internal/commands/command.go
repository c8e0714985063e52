package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeSearch  Type = "search"
	TypePage    Type = "page"
	TypeNew     Type = "new"
	TypeOpen    Type = "open"
	TypeRefresh Type = "refresh"
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

// SearchArgs.Term is empty when the search should be cleared.
type SearchArgs struct {
	Term string
}

type PageArgs struct {
	Number int
}

type OpenArgs struct {
	ID int
}

type Command struct {
	Type   Type
	Raw    string
	Search *SearchArgs
	Page   *PageArgs
	Open   *OpenArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, ":") || strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(raw[1:])
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Term: strings.Join(args, " ")}}, nil
	case TypePage:
		return parsePage(input, args)
	case TypeNew:
		return parseBare(input, TypeNew, args)
	case TypeOpen:
		return parseOpen(input, args)
	case TypeRefresh:
		return parseBare(input, TypeRefresh, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parsePage(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "page requires a page number"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid page number: %s", args[0])}
	}
	return Command{Type: TypePage, Raw: raw, Page: &PageArgs{Number: n}}, nil
}

func parseOpen(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "open requires a task id"}
	}
	id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || id < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task id: %s", args[0])}
	}
	return Command{Type: TypeOpen, Raw: raw, Open: &OpenArgs{ID: id}}, nil
}

func parseBare(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", typ)}
	}
	return Command{Type: typ, Raw: raw}, nil
}
