package editor

// Mode is the editing mode.
type Mode int

const (
	// ModeNormal is for movement and structural edits.
	ModeNormal Mode = iota
	// ModeInsert types text.
	ModeInsert
)

// String returns the status-line label.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}
