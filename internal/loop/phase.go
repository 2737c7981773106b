package loop

// Phase is the state machine position within a level attempt. Playing
// is the only phase in which collisions resolve and points accrue; the
// other two are timed holding states whose exit either switches the
// level or ends the session.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseLevelingUp
	PhaseDying
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseLevelingUp:
		return "leveling-up"
	case PhaseDying:
		return "dying"
	}
	return "unknown"
}

// Outcome is the terminal result of a session. A game with OutcomeNone
// is still in progress.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "in-progress"
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	}
	return "unknown"
}
