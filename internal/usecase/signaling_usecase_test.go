package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stuchat/backend/internal/domain/events"
	"github.com/stuchat/backend/internal/infra/adapters/memory"
)

type signalingFixture struct {
	signaling SignalingUsecase
	registry  memory.ConnectionRegistry
	rooms     memory.RoomRepository
	callRooms memory.CallRoomRepository
}

func newSignalingFixture() *signalingFixture {
	registry := memory.NewConnectionRegistry()
	rooms := memory.NewRoomRepository()
	callRooms := memory.NewCallRoomRepository()

	return &signalingFixture{
		signaling: NewSignalingUsecase(registry, rooms, callRooms),
		registry:  registry,
		rooms:     rooms,
		callRooms: callRooms,
	}
}

func (f *signalingFixture) announce(userID string) *mockConn {
	conn := &mockConn{}
	f.registry.AddConn(conn)
	f.registry.Announce(conn, userID)
	return conn
}

func TestSignalingUsecase_CallUserDeliversIncomingCall(t *testing.T) {
	ctx := context.Background()
	f := newSignalingFixture()

	f.announce("42")
	callee := f.announce("7")

	f.signaling.HandleCallUser(ctx, events.CallUserEvent{
		From:   "42",
		To:     "7",
		CallID: "c1",
		Signal: json.RawMessage(`{"sdp":"offer"}`),
	})

	incoming := lastPayload[events.IncomingCallEvent](t, callee, events.TypeIncomingCall)
	assert.Equal(t, "42", incoming.From)
	assert.Equal(t, "c1", incoming.CallID)
	assert.JSONEq(t, `{"sdp":"offer"}`, string(incoming.Signal))

	require.Len(t, callee.ofType(events.TypeIncomingCall), 1, "relay is at-most-once")
}

func TestSignalingUsecase_RelayToOfflineUserIsDropped(t *testing.T) {
	ctx := context.Background()
	f := newSignalingFixture()

	bystander := f.announce("42")

	// Получатель не подключен: событие молча отбрасывается
	f.signaling.HandleCallUser(ctx, events.CallUserEvent{From: "42", To: "7"})

	assert.Empty(t, bystander.ofType(events.TypeIncomingCall))
}

func TestSignalingUsecase_SelfCallIsAllowed(t *testing.T) {
	ctx := context.Background()
	f := newSignalingFixture()

	conn := f.announce("7")

	f.signaling.HandleCallUser(ctx, events.CallUserEvent{From: "7", To: "7"})

	incoming := lastPayload[events.IncomingCallEvent](t, conn, events.TypeIncomingCall)
	assert.Equal(t, "7", incoming.From)
}

func TestSignalingUsecase_DirectMessage(t *testing.T) {
	ctx := context.Background()
	f := newSignalingFixture()

	receiver := f.announce("7")

	f.signaling.HandleDirectMessage(ctx, events.DirectMessageEvent{
		SenderID:   "42",
		ReceiverID: "7",
		Content:    "hi",
	})

	msg := lastPayload[events.DirectMessageEvent](t, receiver, events.TypeNewMessage)
	assert.Equal(t, "42", msg.SenderID)
	assert.Equal(t, "hi", msg.Content)
}

func TestSignalingUsecase_TypingFallsBackToConnectionIdentity(t *testing.T) {
	ctx := context.Background()
	f := newSignalingFixture()

	receiver := f.announce("7")

	f.signaling.HandleTyping(ctx, "42", events.TypingEvent{ReceiverID: "7", IsTyping: true})

	typing := lastPayload[events.UserTypingEvent](t, receiver, events.TypeUserTyping)
	assert.Equal(t, "42", typing.UserID)
	assert.True(t, typing.IsTyping)
}

func TestSignalingUsecase_WebRTCSignalTagsSender(t *testing.T) {
	ctx := context.Background()
	f := newSignalingFixture()

	peer := f.announce("7")

	f.signaling.HandleWebRTCSignal(ctx, events.TypeWebRTCOffer, "42", events.WebRTCSignalEvent{
		To:    "7",
		Offer: json.RawMessage(`{"type":"offer"}`),
	})

	forwarded := lastPayload[events.WebRTCSignalForwardEvent](t, peer, events.TypeWebRTCOffer)
	assert.Equal(t, "42", forwarded.From)
	assert.JSONEq(t, `{"type":"offer"}`, string(forwarded.Offer))
}

func TestSignalingUsecase_GroupMessageBroadcast(t *testing.T) {
	ctx := context.Background()
	f := newSignalingFixture()

	sender := f.announce("42")
	member := f.announce("7")
	outsider := f.announce("9")

	f.signaling.HandleJoinGroup(ctx, sender, events.JoinGroupEvent{GroupID: "1"})
	f.signaling.HandleJoinGroup(ctx, member, events.JoinGroupEvent{GroupID: "1"})

	f.signaling.HandleGroupMessage(ctx, events.GroupMessageEvent{GroupID: "1", SenderID: "42", Content: "hi"})

	// Отправитель тоже в комнате и получает свое сообщение
	assert.Len(t, sender.ofType(events.TypeReceiveMessage), 1)
	assert.Len(t, member.ofType(events.TypeReceiveMessage), 1)
	assert.Empty(t, outsider.ofType(events.TypeReceiveMessage))
}

func TestSignalingUsecase_GroupCallLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newSignalingFixture()

	host := f.announce("1")
	second := f.announce("2")
	third := f.announce("3")

	f.signaling.HandleCreateGroupCall(ctx, host, events.CreateGroupCallEvent{RoomID: "room1", UserID: "1", UserName: "alice"})

	created := lastPayload[events.GroupCallCreatedEvent](t, second, events.TypeGroupCallCreated)
	assert.Equal(t, "room1", created.RoomID)
	assert.Equal(t, "1", created.UserID)

	f.signaling.HandleJoinGroupCall(ctx, second, events.JoinGroupCallEvent{RoomID: "room1", UserID: "2", UserName: "bob"})

	// Вошедший не получает собственный user_joined_group_call
	assert.Empty(t, second.ofType(events.TypeUserJoinedGroupCall))
	assert.Len(t, host.ofType(events.TypeUserJoinedGroupCall), 1)

	f.signaling.HandleJoinGroupCall(ctx, third, events.JoinGroupCallEvent{RoomID: "room1", UserID: "3", UserName: "carol"})

	assert.Len(t, host.ofType(events.TypeUserJoinedGroupCall), 2)

	f.signaling.HandleLeaveGroupCall(ctx, second, events.LeaveGroupCallEvent{RoomID: "room1", UserID: "2"})

	left := lastPayload[events.GroupCallMemberEvent](t, host, events.TypeUserLeftGroupCall)
	assert.Equal(t, "2", left.UserID)

	participants := f.callRooms.Participants("room1")
	require.Len(t, participants, 2)
	assert.Equal(t, "1", participants[0].UserID)
	assert.Equal(t, "3", participants[1].UserID)

	// Комната еще не пуста - завершения нет
	assert.Empty(t, host.ofType(events.TypeGroupCallEnded))

	f.signaling.HandleLeaveGroupCall(ctx, host, events.LeaveGroupCallEvent{RoomID: "room1", UserID: "1"})
	f.signaling.HandleLeaveGroupCall(ctx, third, events.LeaveGroupCallEvent{RoomID: "room1", UserID: "3"})

	// group_call_ended уходит ровно один раз, когда уходит последний
	for _, conn := range []*mockConn{host, second, third} {
		assert.Len(t, conn.ofType(events.TypeGroupCallEnded), 1)
	}
}

func TestSignalingUsecase_JoinUnknownGroupCallIsSilent(t *testing.T) {
	ctx := context.Background()
	f := newSignalingFixture()

	watcher := f.announce("1")
	joiner := f.announce("2")

	f.signaling.HandleJoinGroupCall(ctx, joiner, events.JoinGroupCallEvent{RoomID: "room_missing", UserID: "2"})

	assert.Empty(t, watcher.ofType(events.TypeUserJoinedGroupCall))
	assert.Nil(t, f.callRooms.Participants("room_missing"))
}

func TestSignalingUsecase_GroupCallSignalTargetsParticipant(t *testing.T) {
	ctx := context.Background()
	f := newSignalingFixture()

	host := f.announce("1")
	peer := f.announce("2")

	f.signaling.HandleCreateGroupCall(ctx, host, events.CreateGroupCallEvent{RoomID: "room1", UserID: "1"})
	f.signaling.HandleJoinGroupCall(ctx, peer, events.JoinGroupCallEvent{RoomID: "room1", UserID: "2"})

	f.signaling.HandleGroupCallSignal(ctx, events.TypeGroupCallOffer, "1", events.GroupCallSignalEvent{
		RoomID: "room1",
		To:     "2",
		Offer:  json.RawMessage(`{"type":"offer"}`),
	})

	forwarded := lastPayload[events.GroupCallSignalForwardEvent](t, peer, events.TypeGroupCallOffer)
	assert.Equal(t, "1", forwarded.From)
	assert.Equal(t, "room1", forwarded.RoomID)

	// Сигнал вне списка участников не доставляется никому
	f.signaling.HandleGroupCallSignal(ctx, events.TypeGroupCallOffer, "1", events.GroupCallSignalEvent{
		RoomID: "room1",
		To:     "99",
	})
	assert.Len(t, peer.ofType(events.TypeGroupCallOffer), 1)
}

func TestSignalingUsecase_StreamLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newSignalingFixture()

	streamer := f.announce("42")
	viewer := f.announce("7")

	f.signaling.HandleStartStream(ctx, streamer, events.StartStreamEvent{StreamID: "s1", UserID: "42", Title: "live"})

	// Анонс трансляции получают все подключенные
	announced := lastPayload[events.NewStreamEvent](t, viewer, events.TypeNewStream)
	assert.Equal(t, "s1", announced.StreamID)

	f.signaling.HandleJoinStream(ctx, viewer, events.StreamViewerEvent{StreamID: "s1", UserID: "7"})

	joined := lastPayload[events.StreamViewerEvent](t, streamer, events.TypeViewerJoined)
	assert.Equal(t, "7", joined.UserID)

	f.signaling.HandleStreamComment(ctx, events.StreamCommentEvent{
		StreamID: "s1",
		Comment:  json.RawMessage(`{"text":"nice"}`),
	})

	// Комментарий пересылается без изменений
	comments := viewer.ofType(events.TypeNewStreamComment)
	require.Len(t, comments, 1)
	assert.JSONEq(t, `{"text":"nice"}`, string(comments[0].Data))

	f.signaling.HandleEndStream(ctx, events.EndStreamEvent{StreamID: "s1"})

	assert.Len(t, viewer.ofType(events.TypeStreamEnded), 1)
}
