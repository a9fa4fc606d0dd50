package slowness

// WaveType selects the P or S velocity of a layer.
type WaveType int

const (
	P WaveType = iota
	S
)

// Waves lists both wave types in the order they are processed.
var Waves = [...]WaveType{P, S}

func (w WaveType) String() string {
	switch w {
	case P:
		return "P"
	case S:
		return "S"
	default:
		return "unknown"
	}
}

// ParseWave accepts "P"/"p" or "S"/"s".
func ParseWave(s string) (WaveType, bool) {
	switch s {
	case "P", "p":
		return P, true
	case "S", "s":
		return S, true
	}
	return P, false
}
