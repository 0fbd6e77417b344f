package term

import "bytes"

// HandleOsc implements the parser Handler for OSC payloads. Only the
// title-set commands are acted on; everything else is ignored, which
// is conformant behavior.
func (t *Terminal) HandleOsc(data []byte) {
	parts := bytes.SplitN(data, []byte{';'}, 2)
	if len(parts) != 2 {
		return
	}

	switch string(parts[0]) {
	case "0", "1", "2": // set icon name and/or window title
		t.title = string(parts[1])
		if t.onTitle != nil {
			t.onTitle(t.title)
		}
	}
}
