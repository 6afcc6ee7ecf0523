package task

// SystemActor confirms escrowed tasks on timeout
const SystemActor = "system"

// Log messages
const (
	LogMsgTaskCompleted     = "Task completed"
	LogMsgTaskEscrowed      = "Task completion held for partner confirmation"
	LogMsgTaskConfirmed     = "Task confirmed by partner"
	LogMsgTaskAutoConfirmed = "Escrowed task auto-confirmed after timeout"
	LogMsgTaskDisputed      = "Task disputed"
	LogMsgTaskReset         = "Recurring task reset"
)
