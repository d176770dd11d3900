package mocks

import (
	"image"
	"sync"

	"github.com/user/framestrip/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Sequence   image.Image
	ParamsJSON []byte
	Renders    map[int]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Renders: make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveSequence(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sequence = img
	return nil
}

func (m *DebugSink) SaveParamsJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ParamsJSON = data
	return nil
}

func (m *DebugSink) SaveRender(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Renders[index] = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
