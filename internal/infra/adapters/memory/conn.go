package memory

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/stuchat/backend/internal/domain/runtime"
)

// safeConn оборачивает websocket.Conn мьютексом на запись:
// gorilla не разрешает конкурентные WriteJSON
type safeConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewSafeConn(conn *websocket.Conn) runtime.Conn {
	return &safeConn{conn: conn}
}

func (s *safeConn) WriteJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteJSON(v)
}

func (s *safeConn) Close() error {
	return s.conn.Close()
}
