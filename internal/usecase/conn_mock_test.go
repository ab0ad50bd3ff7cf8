package usecase

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stuchat/backend/internal/domain/events"
)

type mockConn struct {
	mu       sync.Mutex
	messages []events.Message
}

func (m *mockConn) WriteJSON(v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if msg, ok := v.(events.Message); ok {
		m.messages = append(m.messages, msg)
	}
	return nil
}

func (m *mockConn) Close() error {
	return nil
}

func (m *mockConn) received() []events.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]events.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// ofType возвращает события заданного типа
func (m *mockConn) ofType(eventType string) []events.Message {
	var out []events.Message

	for _, msg := range m.received() {
		if msg.Type == eventType {
			out = append(out, msg)
		}
	}
	return out
}

// lastPayload декодирует нагрузку последнего события заданного типа
func lastPayload[T any](t *testing.T, conn *mockConn, eventType string) T {
	t.Helper()

	msgs := conn.ofType(eventType)
	require.NotEmpty(t, msgs, "expected at least one %q event", eventType)

	var payload T
	require.NoError(t, json.Unmarshal(msgs[len(msgs)-1].Data, &payload))
	return payload
}
