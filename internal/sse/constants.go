package sse

import "time"

// Buffer sizes
const (
	BroadcastBufferSize = 100
	ClientEventBuffer   = 50
	ClientChannelBuffer = 10
)

// KeepaliveInterval is how often idle streams get a ping
const KeepaliveInterval = 30 * time.Second

// Stream-only event types
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Query parameters
const (
	QueryParamTypes     = "types"
	QueryParamCharacter = "character"
)

// Payload keys used to route events to character-scoped streams
const (
	payloadKeyCharacterID = "character_id"
	payloadKeyPartyIDs    = "party_ids"
)

// Log messages
const (
	LogMsgClientConnected    = "Stream client connected"
	LogMsgClientDisconnected = "Stream client disconnected"
	LogMsgEventBroadcast     = "Broadcasting stream event"
	LogMsgEventDropped       = "Stream broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgSubscribed         = "Stream subscriber registered"
)
