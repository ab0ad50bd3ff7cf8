package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallRoomRepository_CreateAndJoin(t *testing.T) {
	callRooms := NewCallRoomRepository()
	host := &mockConn{}
	guest := &mockConn{}

	callRooms.Create("room1", "1", "alice", host)

	require.True(t, callRooms.Join("room1", "2", "bob", guest))

	participants := callRooms.Participants("room1")
	require.Len(t, participants, 2)
	assert.Equal(t, "1", participants[0].UserID)
	assert.Equal(t, "2", participants[1].UserID)
}

func TestCallRoomRepository_JoinUnknownRoom(t *testing.T) {
	callRooms := NewCallRoomRepository()

	assert.False(t, callRooms.Join("room_missing", "2", "bob", &mockConn{}))
}

func TestCallRoomRepository_DuplicateJoinIsNoop(t *testing.T) {
	callRooms := NewCallRoomRepository()

	callRooms.Create("room1", "1", "alice", &mockConn{})

	require.True(t, callRooms.Join("room1", "2", "bob", &mockConn{}))
	require.True(t, callRooms.Join("room1", "2", "bob", &mockConn{}))

	assert.Len(t, callRooms.Participants("room1"), 2)
}

func TestCallRoomRepository_LeaveDeletesEmptyRoom(t *testing.T) {
	callRooms := NewCallRoomRepository()

	callRooms.Create("room1", "1", "alice", &mockConn{})
	callRooms.Join("room1", "2", "bob", &mockConn{})

	assert.False(t, callRooms.Leave("room1", "1"), "room with remaining participants is not ended")
	assert.True(t, callRooms.Leave("room1", "2"), "last participant leaving ends the room")

	// Комната удалена, вход в нее больше невозможен
	assert.False(t, callRooms.Join("room1", "3", "carol", &mockConn{}))
	assert.Nil(t, callRooms.Participants("room1"))
}

func TestCallRoomRepository_LeaveUnknown(t *testing.T) {
	callRooms := NewCallRoomRepository()

	assert.False(t, callRooms.Leave("room_missing", "1"))

	callRooms.Create("room1", "1", "alice", &mockConn{})
	assert.False(t, callRooms.Leave("room1", "99"), "leaving by an unknown identity changes nothing")
	assert.Len(t, callRooms.Participants("room1"), 1)
}

func TestCallRoomRepository_Participant(t *testing.T) {
	callRooms := NewCallRoomRepository()
	host := &mockConn{}

	callRooms.Create("room1", "1", "alice", host)

	p, ok := callRooms.Participant("room1", "1")
	require.True(t, ok)
	assert.Equal(t, "alice", p.UserName)
	assert.Same(t, host, p.Conn)

	_, ok = callRooms.Participant("room1", "2")
	assert.False(t, ok)
}
