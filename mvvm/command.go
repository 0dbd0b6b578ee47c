package mvvm

import (
	"errors"
	"fmt"
)

// Command is one undoable change of a model.
//
// A command runs Unexecuted -> Executed <-> Undone. Execute is valid from
// Unexecuted or Undone, Undo only from Executed. A command may mark itself
// obsolete while executing (e.g. an insertion refused by the tag); the
// UndoStack drops obsolete commands from its history.
type Command interface {
	Execute() error
	Undo() error
	IsObsolete() bool
	Description() string
}

type commandStatus int

const (
	statusUnexecuted commandStatus = iota
	statusExecuted
	statusUndone
)

func (s commandStatus) String() string {
	switch s {
	case statusExecuted:
		return "executed"
	case statusUndone:
		return "undone"
	default:
		return "unexecuted"
	}
}

// itemCommand is implemented by concrete commands for the base to drive
type itemCommand interface {
	executeCommand() error
	undoCommand() error
}

// abstractItemCommand holds the state machine shared by item commands.
// Concrete commands embed it and set impl to themselves.
type abstractItemCommand struct {
	model       *SessionModel
	impl        itemCommand
	status      commandStatus
	obsolete    bool
	description string
}

func (c *abstractItemCommand) Execute() error {
	if c.status == statusExecuted {
		return fmt.Errorf("%w: '%s' is already executed", ErrCommandState, c.description)
	}
	if err := c.impl.executeCommand(); err != nil {
		return err
	}
	c.status = statusExecuted
	return nil
}

func (c *abstractItemCommand) Undo() error {
	if c.status != statusExecuted {
		return fmt.Errorf("%w: can't undo '%s', it is %s", ErrCommandState, c.description, c.status)
	}
	if err := c.impl.undoCommand(); err != nil {
		return err
	}
	c.status = statusUndone
	return nil
}

func (c *abstractItemCommand) IsObsolete() bool {
	return c.obsolete
}

func (c *abstractItemCommand) SetObsolete(value bool) {
	c.obsolete = value
}

func (c *abstractItemCommand) Description() string {
	return c.description
}

func (c *abstractItemCommand) IsExecuted() bool {
	return c.status == statusExecuted
}

func (c *abstractItemCommand) Model() *SessionModel {
	return c.model
}

func (c *abstractItemCommand) resolve(path Path) (*SessionItem, error) {
	item, err := ItemFromPath(c.model, path)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", c.description, err)
	}
	return item, nil
}

// MacroCommand groups commands that are undone and redone together
type MacroCommand struct {
	abstractItemCommand
	commands []Command
}

func NewMacroCommand(description string) *MacroCommand {
	c := &MacroCommand{}
	c.impl = c
	c.description = description
	return c
}

func (c *MacroCommand) add(cmd Command) {
	c.commands = append(c.commands, cmd)
}

// Count returns the number of grouped commands
func (c *MacroCommand) Count() int {
	return len(c.commands)
}

func (c *MacroCommand) executeCommand() error {
	for i, cmd := range c.commands {
		if err := cmd.Execute(); err != nil {
			// Roll back what was redone so far
			for j := i - 1; j >= 0; j-- {
				if rerr := c.commands[j].Undo(); rerr != nil {
					err = errors.Join(err, fmt.Errorf("rollback of '%s': %w", c.commands[j].Description(), rerr))
				}
			}
			return err
		}
	}
	return nil
}

func (c *MacroCommand) undoCommand() error {
	for i := len(c.commands) - 1; i >= 0; i-- {
		if err := c.commands[i].Undo(); err != nil {
			for j := i + 1; j < len(c.commands); j++ {
				if rerr := c.commands[j].Execute(); rerr != nil {
					err = errors.Join(err, fmt.Errorf("rollback of '%s': %w", c.commands[j].Description(), rerr))
				}
			}
			return err
		}
	}
	return nil
}
