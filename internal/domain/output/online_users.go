package output

// OnlineUsersResponse - ответ эндпоинта онлайн пользователей
type OnlineUsersResponse struct {
	OnlineUsers []string `json:"onlineUsers"`
	Count       int      `json:"count"`
}
