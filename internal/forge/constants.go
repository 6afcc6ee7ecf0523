package forge

// Perfect salvage returns extra materials from a disassembled item
const (
	// PerfectSalvageChance is the probability of a perfect salvage (10% = 1 in 10)
	PerfectSalvageChance = 0.10

	// PerfectSalvageMultiplier is applied to the material yield when it procs
	PerfectSalvageMultiplier = 1.5
)

// Log messages
const (
	LogMsgEnhanceAttempted = "Enhancement attempted"
	LogMsgItemSalvaged     = "Item salvaged"
)
