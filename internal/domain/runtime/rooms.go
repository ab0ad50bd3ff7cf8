package runtime

// Имена broadcast-комнат. Ключи совпадают с тем, что ожидают клиенты.

func GroupRoom(groupID string) string {
	return "group_" + groupID
}

func DMRoom(userID string) string {
	return "user_" + userID
}

func GroupCallRoom(roomID string) string {
	return "group_call_" + roomID
}

func StreamRoom(streamID string) string {
	return "stream_" + streamID
}
