package schedule

import "time"

// Phase is the interview commit state of a panel: Idle, Picking or
// Committed. The variant carries only the data valid in that phase, so a
// picker without a record, or a commit without a time, cannot be expressed.
type Phase interface {
	phase()
	String() string
}

// Idle means no scheduler is open.
type Idle struct{}

// Picking means the scheduler is open for RecordID.
type Picking struct {
	RecordID string
	Pick     Pick
}

// Committed means a concrete time was confirmed for RecordID and the
// update is in flight. Pick is kept so a failed commit can reopen the
// picker with the same choices.
type Committed struct {
	RecordID string
	At       time.Time
	Pick     Pick
}

func (Idle) phase()      {}
func (Picking) phase()   {}
func (Committed) phase() {}

func (Idle) String() string      { return "idle" }
func (Picking) String() string   { return "picking" }
func (Committed) String() string { return "committed" }
