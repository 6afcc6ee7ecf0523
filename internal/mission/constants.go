package mission

// Success roll
const (
	SuccessPerStatPoint = 0.02
	MinSuccessRate      = 0.05
	MaxSuccessRate      = 0.95
)

// Success extras
const (
	StatGainChance         = 0.25
	EquipmentBaseChance    = 0.10
	EquipmentChancePerLuck = 0.005
	EquipmentChanceCap     = 0.40
)

// ConsolationShare is the fraction of EXP and gold paid on failure
const ConsolationShare = 0.25

// Log messages
const (
	LogMsgMissionStarted  = "Mission started"
	LogMsgMissionResolved = "Mission resolved"
)
