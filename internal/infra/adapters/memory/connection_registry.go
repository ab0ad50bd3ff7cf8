package memory

import (
	"log/slog"
	"sync"

	"github.com/stuchat/backend/internal/application/constant"
	"github.com/stuchat/backend/internal/application/metric"
	"github.com/stuchat/backend/internal/domain/runtime"
)

// ConnectionRegistry хранит живые соединения и отображение
// userID -> соединение. Идентичность появляется только после user_online;
// повторный анонс того же userID перезаписывает прошлую запись.
type ConnectionRegistry interface {
	AddConn(c runtime.Conn)

	// RemoveConn убирает соединение; если оно было анонсировано,
	// возвращает userID. Поиск линейный - обратного индекса нет.
	RemoveConn(c runtime.Conn) (string, bool)

	Announce(c runtime.Conn, userID string)
	Lookup(userID string) (runtime.Conn, bool)

	// Write пишет анонсированному пользователю; false - получатель не подключен
	Write(userID string, payload any) bool

	// Broadcast пишет всем живым соединениям, включая неанонсированные
	Broadcast(payload any)

	OnlineUsers() []string
}

type connectionRegistry struct {
	// все живые соединения
	conns map[runtime.Conn]struct{}

	// users хранит map[user_id]conn
	users map[string]runtime.Conn

	mu sync.RWMutex
}

func NewConnectionRegistry() ConnectionRegistry {
	return &connectionRegistry{
		conns: make(map[runtime.Conn]struct{}, 10),
		users: make(map[string]runtime.Conn, 10),
	}
}

func (r *connectionRegistry) AddConn(c runtime.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[c] = struct{}{}

	metric.IncrementWSActiveConnections()
}

func (r *connectionRegistry) RemoveConn(c runtime.Conn) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conns[c]; exists {
		delete(r.conns, c)

		metric.DecrementWSActiveConnections()
	}

	for userID, conn := range r.users {
		if conn == c {
			delete(r.users, userID)
			return userID, true
		}
	}

	return "", false
}

func (r *connectionRegistry) Announce(c runtime.Conn, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Соединение могло прийти в обход AddConn (тесты), подстрахуемся
	if _, exists := r.conns[c]; !exists {
		r.conns[c] = struct{}{}

		metric.IncrementWSActiveConnections()
	}

	r.users[userID] = c
}

func (r *connectionRegistry) Lookup(userID string) (runtime.Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.users[userID]
	return conn, ok
}

func (r *connectionRegistry) Write(userID string, payload any) bool {
	conn, ok := r.Lookup(userID)
	if !ok {
		return false
	}

	if err := conn.WriteJSON(payload); err != nil {
		slog.Error(
			"write to websocket",
			slog.Any(constant.Error, err),
			slog.String(constant.UserID, userID),
		)
	}

	return true
}

func (r *connectionRegistry) Broadcast(payload any) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for conn := range r.conns {
		if err := conn.WriteJSON(payload); err != nil {
			slog.Error("broadcast to websocket", slog.Any(constant.Error, err))
		}
	}
}

func (r *connectionRegistry) OnlineUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userIDs := make([]string, 0, len(r.users))

	for userID := range r.users {
		userIDs = append(userIDs, userID)
	}

	return userIDs
}
