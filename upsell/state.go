package upsell

// FetchState is the offer computation lifecycle: Idle → Fetching → {Ready, Failed}.
// A new cart change moves any state back to Fetching (or Idle for an empty cart).
type FetchState int

const (
	FetchIdle FetchState = iota
	Fetching
	FetchReady
	FetchFailed
)

func (s FetchState) String() string {
	switch s {
	case FetchIdle:
		return "idle"
	case Fetching:
		return "fetching"
	case FetchReady:
		return "ready"
	case FetchFailed:
		return "failed"
	}
	return "unknown"
}

// AddState is the add-to-cart lifecycle: Idle → Adding → {Idle, ErrorShown → Idle}.
// ErrorShown auto-dismisses after the banner TTL. Adding guards re-entrancy;
// the flag drops as soon as the mutation resolves, success or not.
type AddState int

const (
	AddIdle AddState = iota
	Adding
	AddErrorShown
)

func (s AddState) String() string {
	switch s {
	case AddIdle:
		return "idle"
	case Adding:
		return "adding"
	case AddErrorShown:
		return "error"
	}
	return "unknown"
}
