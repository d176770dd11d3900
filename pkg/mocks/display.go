package mocks

import (
	"context"
	"image"

	"github.com/user/framestrip/pkg/ports"
)

// Display is a mock implementation of ports.Display that replays scripted
// command batches. When the script runs out Poll returns CommandQuit.
type Display struct {
	Batches [][]ports.Command

	ShowFunc func(img image.Image, status ports.Status) error
	PollFunc func(ctx context.Context) ([]ports.Command, error)

	Shown    []image.Image
	Statuses []ports.Status
	Closed   bool
}

func (m *Display) Show(img image.Image, status ports.Status) error {
	m.Shown = append(m.Shown, img)
	m.Statuses = append(m.Statuses, status)
	if m.ShowFunc != nil {
		return m.ShowFunc(img, status)
	}
	return nil
}

func (m *Display) Poll(ctx context.Context) ([]ports.Command, error) {
	if m.PollFunc != nil {
		return m.PollFunc(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.Batches) == 0 {
		return []ports.Command{ports.CommandQuit}, nil
	}
	batch := m.Batches[0]
	m.Batches = m.Batches[1:]
	return batch, nil
}

func (m *Display) Close() error {
	m.Closed = true
	return nil
}

var _ ports.Display = (*Display)(nil)
