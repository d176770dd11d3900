package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestBar_Lifecycle(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf)

	b.Start(10, "Reducing frames")
	for i := 0; i < 10; i++ {
		b.Add(1)
	}
	b.Finish()

	if !strings.Contains(buf.String(), "Reducing frames") {
		t.Errorf("expected description in output, got %q", buf.String())
	}
	if b.bar != nil {
		t.Error("expected bar to be released after Finish")
	}
}

func TestBar_UnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf)

	b.Start(0, "Reducing frames")
	b.Add(3)
	b.Finish()
}

func TestBar_AddWithoutStart(t *testing.T) {
	b := NewBar(&bytes.Buffer{})
	b.Add(1)
	b.Finish()
}
