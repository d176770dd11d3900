package ports

import (
	"context"
	"image"
)

// Command is a discrete user input in interactive mode.
type Command int

const (
	CommandNone Command = iota
	// CommandWidthUp widens the composite by one width increment.
	CommandWidthUp
	// CommandWidthDown narrows the composite by one width increment.
	CommandWidthDown
	// CommandStepUp increases the stride through the sequence.
	CommandStepUp
	// CommandStepDown decreases the stride through the sequence.
	CommandStepDown
	// CommandIncrementUp multiplies the width increment by ten.
	CommandIncrementUp
	// CommandIncrementDown divides the width increment by ten.
	CommandIncrementDown
	// CommandQuery reports the current width and step.
	CommandQuery
	// CommandExport writes the current composite to the output file.
	CommandExport
	// CommandQuit leaves the interactive loop.
	CommandQuit
)

// String returns the string representation of the command.
func (c Command) String() string {
	switch c {
	case CommandWidthUp:
		return "width+"
	case CommandWidthDown:
		return "width-"
	case CommandStepUp:
		return "step+"
	case CommandStepDown:
		return "step-"
	case CommandIncrementUp:
		return "increment+"
	case CommandIncrementDown:
		return "increment-"
	case CommandQuery:
		return "query"
	case CommandExport:
		return "export"
	case CommandQuit:
		return "quit"
	default:
		return "none"
	}
}

// Mutates reports whether the command changes width or step.
func (c Command) Mutates() bool {
	switch c {
	case CommandWidthUp, CommandWidthDown, CommandStepUp, CommandStepDown:
		return true
	default:
		return false
	}
}

// Status is shown next to the preview.
type Status struct {
	Width     float64
	Step      float64
	Increment float64
	Columns   int // length of the canonical sequence
	FullScale bool
	Message   string
}

// Display shows composites and reads user commands.
type Display interface {
	// Show displays an image with a status line.
	Show(img image.Image, status Status) error

	// Poll blocks until input arrives and returns every command read in one
	// polling cycle, in order.
	Poll(ctx context.Context) ([]Command, error)

	// Close restores the display.
	Close() error
}
