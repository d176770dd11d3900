package termdisplay

import (
	"reflect"
	"testing"

	"github.com/user/framestrip/pkg/ports"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ports.Command
	}{
		{name: "letters", input: "adws", want: []ports.Command{
			ports.CommandWidthDown, ports.CommandWidthUp, ports.CommandStepUp, ports.CommandStepDown,
		}},
		{name: "upper case", input: "DA", want: []ports.Command{ports.CommandWidthUp, ports.CommandWidthDown}},
		{name: "arrows", input: "\x1b[A\x1b[B\x1b[C\x1b[D", want: []ports.Command{
			ports.CommandStepUp, ports.CommandStepDown, ports.CommandWidthUp, ports.CommandWidthDown,
		}},
		{name: "application arrows", input: "\x1bOC", want: []ports.Command{ports.CommandWidthUp}},
		{name: "increment", input: "[]", want: []ports.Command{ports.CommandIncrementDown, ports.CommandIncrementUp}},
		{name: "query and export", input: "q\r", want: []ports.Command{ports.CommandQuery, ports.CommandExport}},
		{name: "lone escape", input: "\x1b", want: []ports.Command{ports.CommandQuit}},
		{name: "ctrl-c", input: "d\x03", want: []ports.Command{ports.CommandWidthUp, ports.CommandQuit}},
		{name: "unknown csi ignored", input: "\x1b[1;5Hd", want: []ports.Command{ports.CommandWidthUp}},
		{name: "modified arrow", input: "\x1b[1;2C", want: []ports.Command{ports.CommandWidthUp}},
		{name: "escape then key", input: "\x1bd", want: []ports.Command{ports.CommandQuit, ports.CommandWidthUp}},
		{name: "noise", input: "xyz 1", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseKeys([]byte(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
