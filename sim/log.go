package sim

import (
	"fmt"
	"io"
)

// EventLog is the per-agent entry/exit CSV sink described in spec §6: one
// line per component boundary crossing, written to an injectable io.Writer
// so callers can point it at a file, stdout, or (in tests) a bytes.Buffer.
type EventLog struct {
	w io.Writer
}

// NewEventLog wraps w as an EventLog.
func NewEventLog(w io.Writer) *EventLog {
	return &EventLog{w: w}
}

// Entry records a train arriving at a component: "<now>,<train>,IN,<uid>,<type>".
func (l *EventLog) Entry(now int64, train, component, componentType string) {
	l.write(now, train, "IN", component, componentType)
}

// Exit records a train leaving a component: "<now>,<train>,OUT,<uid>,<type>".
func (l *EventLog) Exit(now int64, train, component, componentType string) {
	l.write(now, train, "OUT", component, componentType)
}

func (l *EventLog) write(now int64, train, direction, component, componentType string) {
	fmt.Fprintf(l.w, "%d,%s,%s,%s,%s\n", now, train, direction, component, componentType)
}
