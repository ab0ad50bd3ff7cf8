package memory

import (
	"log/slog"
	"sync"

	"github.com/stuchat/backend/internal/application/constant"
	"github.com/stuchat/backend/internal/domain/runtime"
)

// RoomRepository - именованные broadcast-комнаты (чаты, звонки, трансляции).
// Комната создается при первом входе. Пустые комнаты не удаляются:
// они дешевые, ключ детерминированный и в них возвращаются.
type RoomRepository interface {
	Join(roomID string, c runtime.Conn)
	Leave(roomID string, c runtime.Conn)

	// LeaveAll выписывает соединение из всех комнат (дисконнект)
	LeaveAll(c runtime.Conn)

	// Broadcast пишет всем подписчикам комнаты кроме exclude (может быть nil)
	Broadcast(roomID string, payload any, exclude runtime.Conn)

	Members(roomID string) []runtime.Conn
}

type roomRepository struct {
	// rooms хранит map[room_id]set[conn]
	rooms map[string]map[runtime.Conn]struct{}

	mu sync.RWMutex
}

func NewRoomRepository() RoomRepository {
	return &roomRepository{
		rooms: make(map[string]map[runtime.Conn]struct{}, 10),
	}
}

func (r *roomRepository) Join(roomID string, c runtime.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[roomID]; !ok {
		r.rooms[roomID] = make(map[runtime.Conn]struct{})
	}

	r.rooms[roomID][c] = struct{}{}
}

func (r *roomRepository) Leave(roomID string, c runtime.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[roomID]; !ok {
		return
	}

	delete(r.rooms[roomID], c)
}

func (r *roomRepository) LeaveAll(c runtime.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, members := range r.rooms {
		delete(members, c)
	}
}

func (r *roomRepository) Broadcast(roomID string, payload any, exclude runtime.Conn) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[roomID]
	if !ok {
		return
	}

	for conn := range members {
		if conn == exclude {
			continue
		}

		if err := conn.WriteJSON(payload); err != nil {
			slog.Error(
				"broadcast to room",
				slog.Any(constant.Error, err),
				slog.String(constant.RoomID, roomID),
			)
		}
	}
}

func (r *roomRepository) Members(roomID string) []runtime.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]runtime.Conn, 0, len(r.rooms[roomID]))

	for conn := range r.rooms[roomID] {
		members = append(members, conn)
	}

	return members
}
