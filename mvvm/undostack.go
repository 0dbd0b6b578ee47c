package mvvm

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// UndoStack records executed commands. Commands before Index are executed;
// commands from Index on have been undone and can be redone until a new
// command is pushed.
type UndoStack struct {
	commands []Command
	index    int
	limit    int
	macros   []*MacroCommand
	log      *zap.Logger
}

// NewUndoStack creates a stack keeping at most limit commands; 0 means no
// limit.
func NewUndoStack(limit int, log *zap.Logger) *UndoStack {
	if log == nil {
		log = zap.NewNop()
	}
	return &UndoStack{limit: limit, log: log}
}

// Push executes cmd and records it. A command that is obsolete after
// executing is not recorded. While a macro is open, cmd is recorded in it
// instead.
func (s *UndoStack) Push(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	if cmd.IsObsolete() {
		s.log.Debug("discarding obsolete command", zap.String("command", cmd.Description()))
		return nil
	}

	if n := len(s.macros); n > 0 {
		s.macros[n-1].add(cmd)
		return nil
	}
	s.record(cmd)
	return nil
}

func (s *UndoStack) record(cmd Command) {
	s.commands = append(s.commands[:s.index], cmd)
	s.index++
	s.trim()
}

func (s *UndoStack) trim() {
	if s.limit <= 0 {
		return
	}
	if excess := len(s.commands) - s.limit; excess > 0 {
		s.commands = append([]Command(nil), s.commands[excess:]...)
		s.index -= excess
		if s.index < 0 {
			s.index = 0
		}
	}
}

func (s *UndoStack) CanUndo() bool {
	return s.index > 0 && len(s.macros) == 0
}

func (s *UndoStack) CanRedo() bool {
	return s.index < len(s.commands) && len(s.macros) == 0
}

// Undo undoes the command before Index. Nothing happens if there is none.
func (s *UndoStack) Undo() error {
	if !s.CanUndo() {
		return nil
	}
	cmd := s.commands[s.index-1]
	if err := cmd.Undo(); err != nil {
		s.dropBroken(s.index-1, err)
		return err
	}
	s.index--
	if cmd.IsObsolete() {
		s.remove(s.index)
	}
	return nil
}

// Redo executes the command at Index again. Nothing happens if there is
// none.
func (s *UndoStack) Redo() error {
	if !s.CanRedo() {
		return nil
	}
	cmd := s.commands[s.index]
	if err := cmd.Execute(); err != nil {
		s.dropBroken(s.index, err)
		return err
	}
	if cmd.IsObsolete() {
		s.remove(s.index)
		return nil
	}
	s.index++
	return nil
}

// dropBroken removes a command whose target can no longer be resolved
func (s *UndoStack) dropBroken(i int, err error) {
	if !errors.Is(err, ErrResolution) {
		return
	}
	s.log.Warn("dropping command", zap.String("command", s.commands[i].Description()), zap.Error(err))
	s.remove(i)
	if i < s.index {
		s.index--
	}
}

func (s *UndoStack) remove(i int) {
	s.commands = append(s.commands[:i], s.commands[i+1:]...)
}

// Index returns the number of commands currently executed
func (s *UndoStack) Index() int {
	return s.index
}

// Count returns the number of recorded commands
func (s *UndoStack) Count() int {
	return len(s.commands)
}

// Clear drops the history, including open macros
func (s *UndoStack) Clear() {
	s.commands = nil
	s.index = 0
	s.macros = nil
}

// SetUndoLimit changes the limit, dropping the oldest commands if needed
func (s *UndoStack) SetUndoLimit(limit int) {
	s.limit = limit
	s.trim()
}

func (s *UndoStack) UndoLimit() int {
	return s.limit
}

// Description returns the description of the command at row i
func (s *UndoStack) Description(i int) string {
	if i < 0 || i >= len(s.commands) {
		return ""
	}
	return s.commands[i].Description()
}

// BeginMacro opens a macro; commands pushed until the matching EndMacro
// are undone and redone as one. Macros nest.
func (s *UndoStack) BeginMacro(name string) {
	s.macros = append(s.macros, NewMacroCommand(name))
}

// EndMacro closes the innermost macro. An empty macro is not recorded.
func (s *UndoStack) EndMacro() error {
	n := len(s.macros)
	if n == 0 {
		return fmt.Errorf("%w: EndMacro without BeginMacro", ErrCommandState)
	}
	macro := s.macros[n-1]
	s.macros = s.macros[:n-1]
	if macro.Count() == 0 {
		return nil
	}

	// Its commands have run already
	macro.status = statusExecuted
	if n > 1 {
		s.macros[n-2].add(macro)
	} else {
		s.record(macro)
	}
	return nil
}
