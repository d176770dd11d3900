package termdisplay

import "github.com/user/framestrip/pkg/ports"

const (
	keyEsc   = 0x1b
	keyCtrlC = 0x03
	keyCtrlD = 0x04
)

// ParseKeys translates raw terminal input into commands, in order.
// Unknown keys and escape sequences are ignored.
func ParseKeys(data []byte) []ports.Command {
	var cmds []ports.Command
	for i := 0; i < len(data); i++ {
		b := data[i]

		if b == keyEsc {
			if i+1 >= len(data) || (data[i+1] != '[' && data[i+1] != 'O') {
				cmds = append(cmds, ports.CommandQuit)
				continue
			}
			// CSI or SS3: parameters up to a final byte in 0x40..0x7e.
			j := i + 2
			for j < len(data) && (data[j] < 0x40 || data[j] > 0x7e) {
				j++
			}
			if j < len(data) {
				if cmd := arrow(data[j]); cmd != ports.CommandNone {
					cmds = append(cmds, cmd)
				}
			}
			i = j
			continue
		}

		if cmd := key(b); cmd != ports.CommandNone {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func arrow(final byte) ports.Command {
	switch final {
	case 'A':
		return ports.CommandStepUp
	case 'B':
		return ports.CommandStepDown
	case 'C':
		return ports.CommandWidthUp
	case 'D':
		return ports.CommandWidthDown
	}
	return ports.CommandNone
}

func key(b byte) ports.Command {
	switch b {
	case 'a', 'A':
		return ports.CommandWidthDown
	case 'd', 'D':
		return ports.CommandWidthUp
	case 'w', 'W':
		return ports.CommandStepUp
	case 's', 'S':
		return ports.CommandStepDown
	case '[':
		return ports.CommandIncrementDown
	case ']':
		return ports.CommandIncrementUp
	case 'q', 'Q':
		return ports.CommandQuery
	case '\r', '\n':
		return ports.CommandExport
	case keyCtrlC, keyCtrlD:
		return ports.CommandQuit
	}
	return ports.CommandNone
}
