package input

import "encoding/binary"

const (
	evKey = 0x01

	// Linux input-event-codes.h
	keyF2 = 60
	keyF4 = 62
)

// keyBindings maps function keys to button events.
var keyBindings = map[uint16]Kind{
	keyF2: Export,
	keyF4: Quit,
}

// decodeKeyPresses parses a buffer of input_event records and returns the
// bound events for key-down transitions. tvSize is the size of the leading
// timeval on this architecture.
func decodeKeyPresses(buf []byte, tvSize int) []Event {
	eventSize := tvSize + 2 + 2 + 4
	var out []Event
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ != evKey || value != 1 {
			continue
		}
		if kind, ok := keyBindings[code]; ok {
			out = append(out, Event{Kind: kind})
		}
	}
	return out
}
