package usecase

import (
	"context"
	"log/slog"

	"github.com/stuchat/backend/internal/application/constant"
	"github.com/stuchat/backend/internal/application/metric"
	"github.com/stuchat/backend/internal/domain/events"
	"github.com/stuchat/backend/internal/domain/runtime"
	"github.com/stuchat/backend/internal/infra/adapters/memory"
)

// SignalingUsecase - ретранслятор realtime событий. Доставка
// best-effort и at-most-once: если получатель не подключен, сигнал
// молча отбрасывается, отправитель подтверждений не получает.
type SignalingUsecase interface {
	HandleJoinGroup(ctx context.Context, c runtime.Conn, event events.JoinGroupEvent)
	HandleJoinDM(ctx context.Context, c runtime.Conn, event events.JoinDMEvent)

	HandleDirectMessage(ctx context.Context, event events.DirectMessageEvent)
	HandleTyping(ctx context.Context, fromUserID string, event events.TypingEvent)
	HandleMessageRead(ctx context.Context, event events.MessageReadEvent)
	HandleGroupMessage(ctx context.Context, event events.GroupMessageEvent)

	HandlePostReaction(ctx context.Context, event events.PostReactionEvent)
	HandleStoryView(ctx context.Context, event events.StoryViewEvent)

	HandleCallUser(ctx context.Context, event events.CallUserEvent)
	HandleAnswerCall(ctx context.Context, event events.AnswerCallEvent)
	HandleRejectCall(ctx context.Context, event events.CallTargetEvent)
	HandleEndCall(ctx context.Context, event events.CallTargetEvent)

	HandleWebRTCSignal(ctx context.Context, eventType, fromUserID string, event events.WebRTCSignalEvent)

	HandleCreateGroupCall(ctx context.Context, c runtime.Conn, event events.CreateGroupCallEvent)
	HandleJoinGroupCall(ctx context.Context, c runtime.Conn, event events.JoinGroupCallEvent)
	HandleLeaveGroupCall(ctx context.Context, c runtime.Conn, event events.LeaveGroupCallEvent)
	HandleGroupCallSignal(ctx context.Context, eventType, fromUserID string, event events.GroupCallSignalEvent)

	HandleStartStream(ctx context.Context, c runtime.Conn, event events.StartStreamEvent)
	HandleJoinStream(ctx context.Context, c runtime.Conn, event events.StreamViewerEvent)
	HandleLeaveStream(ctx context.Context, c runtime.Conn, event events.StreamViewerEvent)
	HandleStreamComment(ctx context.Context, event events.StreamCommentEvent)
	HandleStreamGift(ctx context.Context, event events.StreamGiftEvent)
	HandleEndStream(ctx context.Context, event events.EndStreamEvent)
}

type signalingUsecase struct {
	registry  memory.ConnectionRegistry
	rooms     memory.RoomRepository
	callRooms memory.CallRoomRepository
}

func NewSignalingUsecase(
	registry memory.ConnectionRegistry,
	rooms memory.RoomRepository,
	callRooms memory.CallRoomRepository,
) SignalingUsecase {
	return &signalingUsecase{
		registry:  registry,
		rooms:     rooms,
		callRooms: callRooms,
	}
}

// relay ищет живое соединение получателя и пишет событие.
// Отсутствие получателя - валидный исход, не ошибка.
func (s *signalingUsecase) relay(eventType, toUserID string, payload any) {
	msg, err := events.NewMessage(eventType, payload)
	if err != nil {
		slog.Error("marshal relay payload", slog.Any(constant.Error, err), slog.String(constant.Event, eventType))
		return
	}

	if delivered := s.registry.Write(toUserID, msg); !delivered {
		metric.RecordRelayDropped()
	}
}

func (s *signalingUsecase) HandleJoinGroup(ctx context.Context, c runtime.Conn, event events.JoinGroupEvent) {
	s.rooms.Join(runtime.GroupRoom(event.GroupID), c)
}

func (s *signalingUsecase) HandleJoinDM(ctx context.Context, c runtime.Conn, event events.JoinDMEvent) {
	s.rooms.Join(runtime.DMRoom(event.UserID), c)
}

func (s *signalingUsecase) HandleDirectMessage(ctx context.Context, event events.DirectMessageEvent) {
	s.relay(events.TypeNewMessage, event.ReceiverID, event)
}

func (s *signalingUsecase) HandleTyping(ctx context.Context, fromUserID string, event events.TypingEvent) {
	userID := event.SenderID
	if userID == "" {
		userID = fromUserID
	}

	s.relay(events.TypeUserTyping, event.ReceiverID, events.UserTypingEvent{
		UserID:   userID,
		IsTyping: event.IsTyping,
	})
}

func (s *signalingUsecase) HandleMessageRead(ctx context.Context, event events.MessageReadEvent) {
	s.relay(events.TypeMessageRead, event.SenderID, event)
}

func (s *signalingUsecase) HandleGroupMessage(ctx context.Context, event events.GroupMessageEvent) {
	msg, err := events.NewMessage(events.TypeReceiveMessage, event)
	if err != nil {
		slog.Error("marshal group message", slog.Any(constant.Error, err))
		return
	}

	s.rooms.Broadcast(runtime.GroupRoom(event.GroupID), msg, nil)
}

func (s *signalingUsecase) HandlePostReaction(ctx context.Context, event events.PostReactionEvent) {
	msg, err := events.NewMessage(events.TypePostReaction, event)
	if err != nil {
		slog.Error("marshal post reaction", slog.Any(constant.Error, err))
		return
	}

	s.registry.Broadcast(msg)
}

func (s *signalingUsecase) HandleStoryView(ctx context.Context, event events.StoryViewEvent) {
	s.relay(events.TypeStoryViewed, event.StoryOwnerID, event)
}

// HandleCallUser доставляет приглашение на звонок. Самозвонок не
// запрещается - ограничение, если нужно, живет уровнем выше.
func (s *signalingUsecase) HandleCallUser(ctx context.Context, event events.CallUserEvent) {
	s.relay(events.TypeIncomingCall, event.To, events.IncomingCallEvent{
		From:     event.From,
		CallType: event.CallType,
		Signal:   event.Signal,
		CallID:   event.CallID,
	})
}

func (s *signalingUsecase) HandleAnswerCall(ctx context.Context, event events.AnswerCallEvent) {
	s.relay(events.TypeCallAnswered, event.To, events.CallAnsweredEvent{
		Signal: event.Signal,
	})
}

func (s *signalingUsecase) HandleRejectCall(ctx context.Context, event events.CallTargetEvent) {
	s.relay(events.TypeCallRejected, event.To, struct{}{})
}

func (s *signalingUsecase) HandleEndCall(ctx context.Context, event events.CallTargetEvent) {
	s.relay(events.TypeCallEnded, event.To, struct{}{})
}

// HandleWebRTCSignal пересылает offer/answer/candidate как есть,
// помечая отправителя. Содержимое не разбирается.
func (s *signalingUsecase) HandleWebRTCSignal(ctx context.Context, eventType, fromUserID string, event events.WebRTCSignalEvent) {
	s.relay(eventType, event.To, events.WebRTCSignalForwardEvent{
		From:      fromUserID,
		Offer:     event.Offer,
		Answer:    event.Answer,
		Candidate: event.Candidate,
	})
}

func (s *signalingUsecase) HandleCreateGroupCall(ctx context.Context, c runtime.Conn, event events.CreateGroupCallEvent) {
	s.callRooms.Create(event.RoomID, event.UserID, event.UserName, c)
	s.rooms.Join(runtime.GroupCallRoom(event.RoomID), c)

	msg, err := events.NewMessage(events.TypeGroupCallCreated, events.GroupCallCreatedEvent{
		RoomID: event.RoomID,
		UserID: event.UserID,
	})
	if err != nil {
		slog.Error("marshal group call created", slog.Any(constant.Error, err))
		return
	}

	s.registry.Broadcast(msg)

	slog.Info(
		"group call created",
		slog.String(constant.RoomID, event.RoomID),
		slog.String(constant.UserID, event.UserID),
	)
}

// HandleJoinGroupCall - вход в несуществующую комнату молча игнорируется
func (s *signalingUsecase) HandleJoinGroupCall(ctx context.Context, c runtime.Conn, event events.JoinGroupCallEvent) {
	if ok := s.callRooms.Join(event.RoomID, event.UserID, event.UserName, c); !ok {
		return
	}

	roomName := runtime.GroupCallRoom(event.RoomID)
	s.rooms.Join(roomName, c)

	msg, err := events.NewMessage(events.TypeUserJoinedGroupCall, events.GroupCallMemberEvent{
		RoomID:   event.RoomID,
		UserID:   event.UserID,
		UserName: event.UserName,
	})
	if err != nil {
		slog.Error("marshal group call join", slog.Any(constant.Error, err))
		return
	}

	s.rooms.Broadcast(roomName, msg, c)
}

func (s *signalingUsecase) HandleLeaveGroupCall(ctx context.Context, c runtime.Conn, event events.LeaveGroupCallEvent) {
	ended := s.callRooms.Leave(event.RoomID, event.UserID)

	roomName := runtime.GroupCallRoom(event.RoomID)
	s.rooms.Leave(roomName, c)

	msg, err := events.NewMessage(events.TypeUserLeftGroupCall, events.GroupCallMemberEvent{
		RoomID: event.RoomID,
		UserID: event.UserID,
	})
	if err != nil {
		slog.Error("marshal group call leave", slog.Any(constant.Error, err))
		return
	}

	s.rooms.Broadcast(roomName, msg, c)

	if ended {
		endedMsg, err := events.NewMessage(events.TypeGroupCallEnded, events.GroupCallEndedEvent{
			RoomID: event.RoomID,
		})
		if err != nil {
			slog.Error("marshal group call ended", slog.Any(constant.Error, err))
			return
		}

		s.registry.Broadcast(endedMsg)

		slog.Info("group call ended", slog.String(constant.RoomID, event.RoomID))
	}
}

// HandleGroupCallSignal ищет адресата в списке участников комнаты,
// а не в глобальном реестре
func (s *signalingUsecase) HandleGroupCallSignal(ctx context.Context, eventType, fromUserID string, event events.GroupCallSignalEvent) {
	participant, ok := s.callRooms.Participant(event.RoomID, event.To)
	if !ok {
		metric.RecordRelayDropped()
		return
	}

	msg, err := events.NewMessage(eventType, events.GroupCallSignalForwardEvent{
		RoomID:    event.RoomID,
		From:      fromUserID,
		Offer:     event.Offer,
		Answer:    event.Answer,
		Candidate: event.Candidate,
	})
	if err != nil {
		slog.Error("marshal group call signal", slog.Any(constant.Error, err))
		return
	}

	if err := participant.Conn.WriteJSON(msg); err != nil {
		slog.Error(
			"forward group call signal",
			slog.Any(constant.Error, err),
			slog.String(constant.RoomID, event.RoomID),
			slog.String(constant.UserID, event.To),
		)
	}
}

func (s *signalingUsecase) HandleStartStream(ctx context.Context, c runtime.Conn, event events.StartStreamEvent) {
	s.rooms.Join(runtime.StreamRoom(event.StreamID), c)

	msg, err := events.NewMessage(events.TypeNewStream, events.NewStreamEvent{
		StreamID: event.StreamID,
		UserID:   event.UserID,
		Title:    event.Title,
	})
	if err != nil {
		slog.Error("marshal new stream", slog.Any(constant.Error, err))
		return
	}

	s.registry.Broadcast(msg)

	slog.Info(
		"stream started",
		slog.String(constant.StreamID, event.StreamID),
		slog.String(constant.UserID, event.UserID),
	)
}

func (s *signalingUsecase) HandleJoinStream(ctx context.Context, c runtime.Conn, event events.StreamViewerEvent) {
	roomName := runtime.StreamRoom(event.StreamID)
	s.rooms.Join(roomName, c)

	msg, err := events.NewMessage(events.TypeViewerJoined, event)
	if err != nil {
		slog.Error("marshal viewer joined", slog.Any(constant.Error, err))
		return
	}

	s.rooms.Broadcast(roomName, msg, nil)
}

func (s *signalingUsecase) HandleLeaveStream(ctx context.Context, c runtime.Conn, event events.StreamViewerEvent) {
	roomName := runtime.StreamRoom(event.StreamID)
	s.rooms.Leave(roomName, c)

	msg, err := events.NewMessage(events.TypeViewerLeft, event)
	if err != nil {
		slog.Error("marshal viewer left", slog.Any(constant.Error, err))
		return
	}

	s.rooms.Broadcast(roomName, msg, nil)
}

func (s *signalingUsecase) HandleStreamComment(ctx context.Context, event events.StreamCommentEvent) {
	// Комментарий пересылается как есть
	msg := events.Message{Type: events.TypeNewStreamComment, Data: event.Comment}

	s.rooms.Broadcast(runtime.StreamRoom(event.StreamID), msg, nil)
}

func (s *signalingUsecase) HandleStreamGift(ctx context.Context, event events.StreamGiftEvent) {
	msg := events.Message{Type: events.TypeNewStreamGift, Data: event.Gift}

	s.rooms.Broadcast(runtime.StreamRoom(event.StreamID), msg, nil)
}

func (s *signalingUsecase) HandleEndStream(ctx context.Context, event events.EndStreamEvent) {
	msg := events.Message{Type: events.TypeStreamEnded}

	s.rooms.Broadcast(runtime.StreamRoom(event.StreamID), msg, nil)

	slog.Info("stream ended", slog.String(constant.StreamID, event.StreamID))
}
