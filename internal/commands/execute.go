package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Edit    func(EditArgs) (Result, error)
	Done    func(IndexArgs) (Result, error)
	Delete  func(IndexArgs) (Result, error)
	Move    func(MoveArgs) (Result, error)
	Mantra  func(MantraArgs) (Result, error)
	Pomo    func(PomoArgs) (Result, error)
	Archive func() (Result, error)
	Open    func(IndexArgs) (Result, error)
	Theme   func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Edit(*cmd.Edit)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done(*cmd.Index)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Delete(*cmd.Index)
	case TypeMove:
		if handlers.Move == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Move(*cmd.Move)
	case TypeMantra:
		if handlers.Mantra == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Mantra(*cmd.Mantra)
	case TypePomo:
		if handlers.Pomo == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Pomo(*cmd.Pomo)
	case TypeArchive:
		if handlers.Archive == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Archive()
	case TypeOpen:
		if handlers.Open == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Open(*cmd.Index)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Theme()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
