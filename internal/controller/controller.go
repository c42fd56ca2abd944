package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/watchsync/server/internal/service/sync"
	"github.com/watchsync/server/pkg/validator"
)

type iSyncService interface {
	HandleAction(context.Context, *sync.ActionParams) (sync.ActionResponse, error)
	JoinRoom(context.Context, *sync.JoinRoomParams) error
	LeaveRoom(context.Context, *sync.LeaveRoomParams) error
	Resync(ctx context.Context, roomId string) (sync.SyncState, error)
	Stats() (rooms, subscribers int)
}

type controller struct {
	syncService iSyncService
	upgrader    websocket.Upgrader
	validate    *validator.Validator
	logger      *slog.Logger
}

func NewController(syncService iSyncService, logger *slog.Logger) *controller {
	return &controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		syncService: syncService,
		validate:    validator.NewValidator(),
		logger:      logger,
	}
}
