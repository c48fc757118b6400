package domain

// Energy is the user's stated energy level for one recommendation request.
type Energy string

const (
	EnergyLow  Energy = "low"
	EnergyMed  Energy = "med"
	EnergyHigh Energy = "high"
)

// Urgency is the user's stated urgency for the deterministic path.
type Urgency string

const (
	UrgencyLow  Urgency = "low"
	UrgencyMed  Urgency = "med"
	UrgencyHigh Urgency = "high"
)

// Uniqueness is the novelty dial for the generative path. It controls how
// aggressively the similarity guard rejects suggestions that overlap with
// existing tasks and prior suggestions.
type Uniqueness string

const (
	UniquenessFamiliar Uniqueness = "familiar"
	UniquenessRelated  Uniqueness = "related"
	UniquenessNovel    Uniqueness = "novel"
)

// Confidence is the model's self-reported confidence in a suggestion.
type Confidence string

const (
	ConfidenceLow  Confidence = "low"
	ConfidenceMed  Confidence = "med"
	ConfidenceHigh Confidence = "high"
)

type TaskStatus string

const (
	TaskTodo     TaskStatus = "todo"
	TaskArchived TaskStatus = "archived"
)

type GoalStatus string

const (
	GoalActive   GoalStatus = "active"
	GoalArchived GoalStatus = "archived"
)

// Decision is the lifecycle state of a suggestion or recommendation event.
// Transitions exactly once, and only out of pending.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionAccepted Decision = "accepted"
	DecisionSkipped  Decision = "skipped"
)

// ValidEnergies is the canonical set of accepted energy strings.
var ValidEnergies = map[string]bool{
	"low": true, "med": true, "high": true,
}

// ValidUrgencies is the canonical set of accepted urgency strings.
var ValidUrgencies = map[string]bool{
	"low": true, "med": true, "high": true,
}

// ValidUniqueness is the canonical set of accepted uniqueness strings.
var ValidUniqueness = map[string]bool{
	"familiar": true, "related": true, "novel": true,
}

// ValidConfidences is the canonical set of accepted confidence strings.
var ValidConfidences = map[string]bool{
	"low": true, "med": true, "high": true,
}
