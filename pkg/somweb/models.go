package somweb

// DoorState represents the reported position of a door.
//
// The gateway has no notion of a door in motion: a door being closed is
// reported as open until it has fully closed, and vice versa.
type DoorState int

const (
	StateOpen DoorState = iota + 1
	StateClosed
	StateUnknown
)

// String returns a human readable name for the state.
func (s DoorState) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// DoorAction represents an action to perform on a door.
type DoorAction int

const (
	ActionClose DoorAction = iota
	ActionOpen
)

// String returns a human readable name for the action.
func (a DoorAction) String() string {
	if a == ActionOpen {
		return "OPEN"
	}
	return "CLOSE"
}

// TargetState returns the state the door ends up in after the action.
func (a DoorAction) TargetState() DoorState {
	if a == ActionOpen {
		return StateOpen
	}
	return StateClosed
}

// Door describes a door operator attached to the gateway.
// Immutable once parsed; state is never cached on it.
type Door struct {
	ID   int
	Name string
}

// DoorStatus pairs a door id with its reported state.
type DoorStatus struct {
	ID    int
	State DoorState
}

// AuthResult is the outcome of an authentication attempt.
//
// On success Token holds the webtoken required by door commands and Page
// holds the raw logged-in page body, from which the door list and device
// details can be parsed. A rejected login yields Success false with no
// usable token; it is not an error.
type AuthResult struct {
	Success bool
	Token   string
	Page    string
}

// DeviceInfo holds gateway details scraped from the device info page.
// Only available to administrator accounts.
type DeviceInfo struct {
	RemoteAccessEnabled bool
	FirmwareVersion     string
	IPAddress           string
	WifiSignalQuality   int
	WifiSignalLevel     int
	WifiSignalUnit      string
	TimeZone            string
}
