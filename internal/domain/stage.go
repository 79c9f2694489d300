package domain

// Stage is the narrative progression of a trip.
type Stage string

const (
	StageDaydream Stage = "daydream"
	StageQuest    Stage = "quest"
	StageTale     Stage = "tale"
)

// Stages lists every stage in progression order.
var Stages = []Stage{StageDaydream, StageQuest, StageTale}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	switch s {
	case StageDaydream, StageQuest, StageTale:
		return true
	}
	return false
}

// Next returns the stage that follows s. Tale is terminal and returns itself.
// Unknown stages are returned unchanged.
func (s Stage) Next() Stage {
	switch s {
	case StageDaydream:
		return StageQuest
	case StageQuest:
		return StageTale
	default:
		return s
	}
}
