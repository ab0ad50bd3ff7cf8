package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/stuchat/backend/internal/application/config"
	"github.com/stuchat/backend/internal/application/constant"
	"github.com/stuchat/backend/internal/application/metric"
	"github.com/stuchat/backend/internal/domain/events"
	"github.com/stuchat/backend/internal/domain/runtime"
	"github.com/stuchat/backend/internal/infra/adapters/memory"
	"github.com/stuchat/backend/internal/usecase"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

type WebSocketHandler struct {
	upgrader websocket.Upgrader

	presenceUsecase     usecase.PresenceUsecase
	signalingUsecase    usecase.SignalingUsecase
	notificationUsecase usecase.NotificationUsecase
}

func NewWebSocketHandler(
	cfg *config.Config,
	presenceUsecase usecase.PresenceUsecase,
	signalingUsecase usecase.SignalingUsecase,
	notificationUsecase usecase.NotificationUsecase,
) *WebSocketHandler {
	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if cfg.Debug {
					return true
				}
				return r.Header.Get("Origin") == cfg.Domain
			},
		},
		presenceUsecase:     presenceUsecase,
		signalingUsecase:    signalingUsecase,
		notificationUsecase: notificationUsecase,
	}
}

func (h *WebSocketHandler) Serve(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("websocket upgrade failed", slog.Any(constant.Error, err))
		return err
	}

	conn := memory.NewSafeConn(ws)
	ctx := c.Request().Context()

	h.presenceUsecase.HandleConnect(ctx, conn)
	defer func() {
		h.presenceUsecase.HandleDisconnect(ctx, conn)
		conn.Close()
	}()

	done := make(chan struct{})
	defer close(done)
	go keepalive(ws, done)

	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Идентичность соединения; заполняется после user_online
	var userID string

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("websocket read failed", slog.Any(constant.Error, err))
			}
			return nil
		}

		var msg events.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			slog.Error("malformed websocket message", slog.Any(constant.Error, err))
			continue
		}

		metric.RecordWSEvent(msg.Type)
		h.dispatch(ctx, conn, &userID, msg)
	}
}

// dispatch разбирает событие и передает его соответствующему usecase.
// Невалидные и неизвестные события логируются и пропускаются,
// соединение при этом не рвется.
func (h *WebSocketHandler) dispatch(ctx context.Context, conn runtime.Conn, userID *string, msg events.Message) {
	switch msg.Type {
	case events.TypeUserOnline:
		event, ok := decode[events.UserOnlineEvent](msg)
		if !ok {
			return
		}
		*userID = event.UserID
		h.presenceUsecase.HandleOnline(ctx, conn, event)

	case events.TypeJoinGroup:
		if event, ok := decode[events.JoinGroupEvent](msg); ok {
			h.signalingUsecase.HandleJoinGroup(ctx, conn, event)
		}

	case events.TypeJoinDM:
		if event, ok := decode[events.JoinDMEvent](msg); ok {
			h.signalingUsecase.HandleJoinDM(ctx, conn, event)
		}

	case events.TypeSendMessage:
		if event, ok := decode[events.DirectMessageEvent](msg); ok {
			h.signalingUsecase.HandleDirectMessage(ctx, event)
		}

	case events.TypeTyping:
		if event, ok := decode[events.TypingEvent](msg); ok {
			h.signalingUsecase.HandleTyping(ctx, *userID, event)
		}

	case events.TypeMessageRead:
		if event, ok := decode[events.MessageReadEvent](msg); ok {
			h.signalingUsecase.HandleMessageRead(ctx, event)
		}

	case events.TypeSendGroupMessage:
		if event, ok := decode[events.GroupMessageEvent](msg); ok {
			h.signalingUsecase.HandleGroupMessage(ctx, event)
		}

	case events.TypeSendNotification:
		if event, ok := decode[events.SendNotificationEvent](msg); ok {
			h.notificationUsecase.DeliverIfOnline(ctx, event.UserID, event.Payload)
		}

	case events.TypePostReaction:
		if event, ok := decode[events.PostReactionEvent](msg); ok {
			h.signalingUsecase.HandlePostReaction(ctx, event)
		}

	case events.TypeStoryView:
		if event, ok := decode[events.StoryViewEvent](msg); ok {
			h.signalingUsecase.HandleStoryView(ctx, event)
		}

	case events.TypeCallUser:
		if event, ok := decode[events.CallUserEvent](msg); ok {
			h.signalingUsecase.HandleCallUser(ctx, event)
		}

	case events.TypeAnswerCall:
		if event, ok := decode[events.AnswerCallEvent](msg); ok {
			h.signalingUsecase.HandleAnswerCall(ctx, event)
		}

	case events.TypeRejectCall:
		if event, ok := decode[events.CallTargetEvent](msg); ok {
			h.signalingUsecase.HandleRejectCall(ctx, event)
		}

	case events.TypeEndCall:
		if event, ok := decode[events.CallTargetEvent](msg); ok {
			h.signalingUsecase.HandleEndCall(ctx, event)
		}

	case events.TypeWebRTCOffer, events.TypeWebRTCAnswer, events.TypeWebRTCICECandidate:
		if event, ok := decode[events.WebRTCSignalEvent](msg); ok {
			h.signalingUsecase.HandleWebRTCSignal(ctx, msg.Type, *userID, event)
		}

	case events.TypeCreateGroupCall:
		if event, ok := decode[events.CreateGroupCallEvent](msg); ok {
			h.signalingUsecase.HandleCreateGroupCall(ctx, conn, event)
		}

	case events.TypeJoinGroupCall:
		if event, ok := decode[events.JoinGroupCallEvent](msg); ok {
			h.signalingUsecase.HandleJoinGroupCall(ctx, conn, event)
		}

	case events.TypeLeaveGroupCall:
		if event, ok := decode[events.LeaveGroupCallEvent](msg); ok {
			h.signalingUsecase.HandleLeaveGroupCall(ctx, conn, event)
		}

	case events.TypeGroupCallOffer, events.TypeGroupCallAnswer, events.TypeGroupCallICECandidate:
		if event, ok := decode[events.GroupCallSignalEvent](msg); ok {
			h.signalingUsecase.HandleGroupCallSignal(ctx, msg.Type, *userID, event)
		}

	case events.TypeStartStream:
		if event, ok := decode[events.StartStreamEvent](msg); ok {
			h.signalingUsecase.HandleStartStream(ctx, conn, event)
		}

	case events.TypeJoinStream:
		if event, ok := decode[events.StreamViewerEvent](msg); ok {
			h.signalingUsecase.HandleJoinStream(ctx, conn, event)
		}

	case events.TypeLeaveStream:
		if event, ok := decode[events.StreamViewerEvent](msg); ok {
			h.signalingUsecase.HandleLeaveStream(ctx, conn, event)
		}

	case events.TypeStreamComment:
		if event, ok := decode[events.StreamCommentEvent](msg); ok {
			h.signalingUsecase.HandleStreamComment(ctx, event)
		}

	case events.TypeStreamGift:
		if event, ok := decode[events.StreamGiftEvent](msg); ok {
			h.signalingUsecase.HandleStreamGift(ctx, event)
		}

	case events.TypeEndStream:
		if event, ok := decode[events.EndStreamEvent](msg); ok {
			h.signalingUsecase.HandleEndStream(ctx, event)
		}

	case events.TypeGetNotifications:
		if event, ok := decode[events.GetNotificationsEvent](msg); ok {
			h.notificationUsecase.HandleGetNotifications(ctx, conn, event)
		}

	default:
		slog.Warn("unknown websocket event", slog.String(constant.Event, msg.Type))
	}
}

type validator interface {
	Validate() error
}

func decode[T validator](msg events.Message) (T, bool) {
	var event T

	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.Error("decode websocket event", slog.Any(constant.Error, err), slog.String(constant.Event, msg.Type))
		return event, false
	}

	if err := event.Validate(); err != nil {
		slog.Error("invalid websocket event", slog.Any(constant.Error, err), slog.String(constant.Event, msg.Type))
		return event, false
	}

	return event, true
}

// keepalive пингует клиента, пока соединение живо
func keepalive(ws *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
