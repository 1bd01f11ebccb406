package ai

// ActionKind enumerates the primitive actions a policy can emit.
type ActionKind uint8

const (
	ActWait ActionKind = iota
	ActMove
	ActMelee
	ActPurify
)

func (k ActionKind) String() string {
	switch k {
	case ActWait:
		return "wait"
	case ActMove:
		return "move"
	case ActMelee:
		return "melee"
	case ActPurify:
		return "purify"
	}
	return "unknown"
}

// Action is the single decision a policy returns for one turn. DX/DY carry
// the relative offset for move and melee; they are zero otherwise.
type Action struct {
	Kind   ActionKind
	DX, DY int
}

func Wait() Action { return Action{Kind: ActWait} }

func Move(dx, dy int) Action { return Action{Kind: ActMove, DX: dx, DY: dy} }

func Melee(dx, dy int) Action { return Action{Kind: ActMelee, DX: dx, DY: dy} }

func Purify() Action { return Action{Kind: ActPurify} }
