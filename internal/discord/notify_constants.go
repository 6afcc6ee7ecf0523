package discord

// Embed colors
const (
	colorGold    = 0xFFD700
	colorGreen   = 0x2ECC71
	colorRed     = 0xE74C3C
	colorBlurple = 0x5865F2
	colorOrange  = 0xE67E22
)

// CollaboratorName labels notification failures in metrics
const CollaboratorName = "discord"

const (
	notifyLogMsgParseError = "Failed to decode event payload for notification"
	notifyLogMsgSendError  = "Failed to send Discord notification"
	notifyLogMsgSent       = "Discord notification sent"
	notifyLogMsgDropped    = "Notification dropped, queue full"
	notifyLogMsgLogged     = "Notification"
)

const footerText = "QuestForge"
