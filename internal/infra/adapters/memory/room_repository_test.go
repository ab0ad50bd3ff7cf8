package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRepository_BroadcastWithExclude(t *testing.T) {
	rooms := NewRoomRepository()
	sender := &mockConn{}
	listener := &mockConn{}

	rooms.Join("group_1", sender)
	rooms.Join("group_1", listener)

	rooms.Broadcast("group_1", "hello", sender)

	assert.Empty(t, sender.received(), "excluded connection must not receive the broadcast")
	assert.Len(t, listener.received(), 1)
}

func TestRoomRepository_BroadcastToUnknownRoom(t *testing.T) {
	rooms := NewRoomRepository()

	// Не должно паниковать
	rooms.Broadcast("group_missing", "hello", nil)
}

func TestRoomRepository_EmptyRoomPersists(t *testing.T) {
	rooms := NewRoomRepository()
	conn := &mockConn{}

	rooms.Join("group_1", conn)
	rooms.Leave("group_1", conn)

	require.Empty(t, rooms.Members("group_1"))

	// Возврат в опустевшую комнату работает как обычный вход
	rooms.Join("group_1", conn)
	assert.Len(t, rooms.Members("group_1"), 1)
}

func TestRoomRepository_LeaveAll(t *testing.T) {
	rooms := NewRoomRepository()
	conn := &mockConn{}
	other := &mockConn{}

	rooms.Join("group_1", conn)
	rooms.Join("user_42", conn)
	rooms.Join("group_1", other)

	rooms.LeaveAll(conn)

	assert.Len(t, rooms.Members("group_1"), 1)
	assert.Empty(t, rooms.Members("user_42"))
}

func TestRoomRepository_NoCrossRoomLeak(t *testing.T) {
	rooms := NewRoomRepository()
	first := &mockConn{}
	second := &mockConn{}

	rooms.Join("group_1", first)
	rooms.Join("group_2", second)

	rooms.Broadcast("group_1", "hello", nil)

	assert.Len(t, first.received(), 1)
	assert.Empty(t, second.received())
}
