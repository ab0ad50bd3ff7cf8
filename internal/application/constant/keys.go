package constant

// Ключи атрибутов для slog
const (
	Error    = "error"
	UserID   = "user_id"
	UserName = "user_name"
	RoomID   = "room_id"
	StreamID = "stream_id"
	Event    = "event"
)
