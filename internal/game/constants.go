package game

// Event sources recorded on level-up events
const (
	SourceTask    = "task"
	SourceMission = "mission"
	SourceDungeon = "dungeon"
)

// Span names
const (
	spanCompleteTask   = "game.CompleteTask"
	spanConfirmTask    = "game.ConfirmTask"
	spanDisputeTask    = "game.DisputeTask"
	spanStartMission   = "game.StartMission"
	spanCheckMission   = "game.CheckMission"
	spanStartDungeon   = "game.StartDungeon"
	spanResolveDungeon = "game.ResolveDungeon"
	spanEnhance        = "game.EnhanceEquipment"
	spanSalvage        = "game.SalvageEquipment"
	spanResearch       = "game.PurchaseResearch"
	spanSweepEscrow    = "game.SweepEscrow"
	spanResetRecurring = "game.ResetRecurring"
	spanCheckStreaks   = "game.CheckStreaks"
)

// Log messages
const (
	LogMsgCharacterCreated   = "Character created"
	LogMsgTaskCreated        = "Task created"
	LogMsgBondCreated        = "Bond created"
	LogMsgAchievementUnlock  = "Achievement unlocked"
	LogMsgEscrowSweepDone    = "Escrow sweep finished"
	LogMsgEscrowSweepFailed  = "Failed to auto-confirm escrowed task"
	LogMsgRecurringResetDone = "Recurring task reset finished"
	LogMsgStreakCheckDone    = "Streak check finished"
	LogMsgSnapshotFailed     = "Failed to capture sync snapshot"
	LogMsgBuffActivated      = "Buff activated"
)
