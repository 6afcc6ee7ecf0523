package content

const (
	cacheKey = "tables"

	// MaxPayloadBytes bounds the remote content document
	MaxPayloadBytes = 4 << 20

	// SchemaName is the embedded JSON schema every fetched document must satisfy
	SchemaName = "schema/content.schema.json"
)

// Log messages
const (
	LogMsgContentFallback  = "Content source unavailable, using fallback tables"
	LogMsgContentRefreshed = "Content tables refreshed"
)
