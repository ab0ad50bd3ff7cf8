package memory

import (
	"sync"
	"time"

	"github.com/stuchat/backend/internal/domain/runtime"
)

// CallRoomRepository - комнаты групповых звонков. В отличие от обычных
// комнат здесь есть хост и упорядоченный список участников, а пустая
// комната удаляется.
type CallRoomRepository interface {
	Create(roomID, hostID, hostName string, c runtime.Conn)

	// Join добавляет участника; false - комнаты не существует.
	// Повторный вход той же идентичности - no-op.
	Join(roomID, userID, userName string, c runtime.Conn) bool

	// Leave убирает участника по идентичности; ended=true, когда
	// список опустел и комната удалена
	Leave(roomID, userID string) (ended bool)

	Participant(roomID, userID string) (runtime.Participant, bool)
	Participants(roomID string) []runtime.Participant
}

type callRoomRepository struct {
	// rooms хранит map[room_id]*CallRoom
	rooms map[string]*runtime.CallRoom

	mu sync.RWMutex
}

func NewCallRoomRepository() CallRoomRepository {
	return &callRoomRepository{
		rooms: make(map[string]*runtime.CallRoom, 10),
	}
}

func (r *callRoomRepository) Create(roomID, hostID, hostName string, c runtime.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms[roomID] = &runtime.CallRoom{
		ID:   roomID,
		Host: hostID,
		Participants: []runtime.Participant{
			{UserID: hostID, UserName: hostName, Conn: c},
		},
		CreatedAt: time.Now(),
	}
}

func (r *callRoomRepository) Join(roomID, userID, userName string, c runtime.Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return false
	}

	for _, p := range room.Participants {
		if p.UserID == userID {
			return true
		}
	}

	room.Participants = append(room.Participants, runtime.Participant{
		UserID:   userID,
		UserName: userName,
		Conn:     c,
	})

	return true
}

func (r *callRoomRepository) Leave(roomID, userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return false
	}

	for i, p := range room.Participants {
		if p.UserID == userID {
			room.Participants = append(room.Participants[:i], room.Participants[i+1:]...)
			break
		}
	}

	if len(room.Participants) == 0 {
		delete(r.rooms, roomID)
		return true
	}

	return false
}

func (r *callRoomRepository) Participant(roomID, userID string) (runtime.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return runtime.Participant{}, false
	}

	for _, p := range room.Participants {
		if p.UserID == userID {
			return p, true
		}
	}

	return runtime.Participant{}, false
}

func (r *callRoomRepository) Participants(roomID string) []runtime.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}

	participants := make([]runtime.Participant, len(room.Participants))
	copy(participants, room.Participants)

	return participants
}
