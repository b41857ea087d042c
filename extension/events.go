// events.go defines the event types for extension notifications.
//
// Design: Events are fire-and-forget notifications sent after a change is
// committed. Extensions observe; they cannot veto an upload or a delete.

package extension

// EventType identifies the kind of event.
type EventType string

const (
	EventNetlistUpload EventType = "netlist:upload"
	EventNetlistDelete EventType = "netlist:delete"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	EventOwner() string
	EventFilename() string
}

// NetlistUploadEvent is fired after a netlist is stored, valid or not.
type NetlistUploadEvent struct {
	User     string
	Filename string
	Valid    bool
	Errors   []string
}

func (e NetlistUploadEvent) EventType() EventType  { return EventNetlistUpload }
func (e NetlistUploadEvent) EventOwner() string    { return e.User }
func (e NetlistUploadEvent) EventFilename() string { return e.Filename }

// NetlistDeleteEvent is fired after a netlist is removed.
type NetlistDeleteEvent struct {
	User     string
	Filename string
}

func (e NetlistDeleteEvent) EventType() EventType  { return EventNetlistDelete }
func (e NetlistDeleteEvent) EventOwner() string    { return e.User }
func (e NetlistDeleteEvent) EventFilename() string { return e.Filename }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}
