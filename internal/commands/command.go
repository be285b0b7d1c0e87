package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeEdit    Type = "edit"
	TypeDone    Type = "done"
	TypeDelete  Type = "del"
	TypeMove    Type = "move"
	TypeMantra  Type = "mantra"
	TypePomo    Type = "pomo"
	TypeArchive Type = "archive"
	TypeOpen    Type = "open"
	TypeTheme   Type = "theme"
)

// Names lists every palette command in help order.
var Names = []Type{TypeAdd, TypeEdit, TypeDone, TypeDelete, TypeMove, TypeMantra, TypePomo, TypeArchive, TypeOpen, TypeTheme}

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

type AddArgs struct {
	Text string
}

// IndexArgs carries a zero-based position parsed from a one-based argument.
type IndexArgs struct {
	Index int
}

type EditArgs struct {
	Index int
	Text  string
}

type MoveArgs struct {
	From int
	To   int
}

type MantraArgs struct {
	Seconds int
}

type PomoArgs struct {
	Delta int
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Index  *IndexArgs
	Edit   *EditArgs
	Move   *MoveArgs
	Mantra *MantraArgs
	Pomo   *PomoArgs
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
	case TypeAdd:
		return parseAdd(input, args)
	case TypeEdit:
		return parseEdit(input, args)
	case TypeDone, TypeDelete, TypeOpen:
		return parseIndex(input, Type(head), args)
	case TypeMove:
		return parseMove(input, args)
	case TypeMantra:
		return parseMantra(input, args)
	case TypePomo:
		return parsePomo(input, args)
	case TypeArchive, TypeTheme:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a task"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires a task number and text"}
	}
	i, err := position(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Index: i, Text: strings.Join(args[1:], " ")}}, nil
}

func parseIndex(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one number", typ)}
	}
	i, err := position(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Index: &IndexArgs{Index: i}}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "move requires from and to"}
	}
	from, err := position(args[0])
	if err != nil {
		return Command{}, err
	}
	to, err := position(args[1])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{From: from, To: to}}, nil
}

func parseMantra(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "mantra requires seconds"}
	}
	secs, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(args[0]), "s"))
	if err != nil || secs <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid seconds: %s", args[0])}
	}
	return Command{Type: TypeMantra, Raw: raw, Mantra: &MantraArgs{Seconds: secs}}, nil
}

func parsePomo(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "pomo requires +n or -n minutes"}
	}
	arg := args[0]
	if !strings.HasPrefix(arg, "+") && !strings.HasPrefix(arg, "-") {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("pomo adjustment needs a sign: %s", arg)}
	}
	delta, err := strconv.Atoi(arg)
	if err != nil || delta == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid minutes: %s", arg)}
	}
	return Command{Type: TypePomo, Raw: raw, Pomo: &PomoArgs{Delta: delta}}, nil
}

func position(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid number: %s", arg)}
	}
	return n - 1, nil
}
