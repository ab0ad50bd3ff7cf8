package usecase

import (
	"context"
	"log/slog"

	"github.com/stuchat/backend/internal/application/constant"
	"github.com/stuchat/backend/internal/domain/events"
	"github.com/stuchat/backend/internal/domain/output"
	"github.com/stuchat/backend/internal/domain/runtime"
	"github.com/stuchat/backend/internal/infra/adapters/memory"
)

// PresenceUsecase отвечает за жизненный цикл соединения:
// регистрация, анонс идентичности, дисконнект и статусы онлайн/оффлайн.
type PresenceUsecase interface {
	HandleConnect(ctx context.Context, c runtime.Conn)
	HandleOnline(ctx context.Context, c runtime.Conn, event events.UserOnlineEvent)
	HandleDisconnect(ctx context.Context, c runtime.Conn)

	OnlineUsers(ctx context.Context) output.OnlineUsersResponse
}

type presenceUsecase struct {
	registry memory.ConnectionRegistry
	rooms    memory.RoomRepository
}

func NewPresenceUsecase(
	registry memory.ConnectionRegistry,
	rooms memory.RoomRepository,
) PresenceUsecase {
	return &presenceUsecase{
		registry: registry,
		rooms:    rooms,
	}
}

func (p *presenceUsecase) HandleConnect(ctx context.Context, c runtime.Conn) {
	p.registry.AddConn(c)
}

// HandleOnline регистрирует идентичность и сообщает всем о статусе.
// Повторный анонс с нового соединения перезаписывает старое (last-connect-wins).
func (p *presenceUsecase) HandleOnline(ctx context.Context, c runtime.Conn, event events.UserOnlineEvent) {
	p.registry.Announce(c, event.UserID)

	slog.Info("user online", slog.String(constant.UserID, event.UserID))

	p.broadcastStatus(event.UserID, true)
}

// HandleDisconnect линейно ищет идентичность отключившегося соединения.
// Если соединение так и не было анонсировано, оффлайн-статус не рассылается.
func (p *presenceUsecase) HandleDisconnect(ctx context.Context, c runtime.Conn) {
	p.rooms.LeaveAll(c)

	userID, ok := p.registry.RemoveConn(c)
	if !ok {
		return
	}

	slog.Info("user offline", slog.String(constant.UserID, userID))

	p.broadcastStatus(userID, false)
}

func (p *presenceUsecase) OnlineUsers(ctx context.Context) output.OnlineUsersResponse {
	userIDs := p.registry.OnlineUsers()

	return output.OnlineUsersResponse{
		OnlineUsers: userIDs,
		Count:       len(userIDs),
	}
}

func (p *presenceUsecase) broadcastStatus(userID string, isOnline bool) {
	msg, err := events.NewMessage(events.TypeUserStatus, events.UserStatusEvent{
		UserID:   userID,
		IsOnline: isOnline,
	})
	if err != nil {
		slog.Error("marshal user status", slog.Any(constant.Error, err))
		return
	}

	p.registry.Broadcast(msg)
}
