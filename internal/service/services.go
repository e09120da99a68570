package service

import (
	"log/slog"

	"github.com/irynavol/seatmap-go/internal/remote"
	"github.com/irynavol/seatmap-go/internal/service/lifecycle"
	"github.com/irynavol/seatmap-go/internal/session"
	"github.com/irynavol/seatmap-go/internal/syncer"
)

type Services struct {
	Lifecycle *lifecycle.Service
	Sessions  *session.Manager
	Remote    *remote.Client
}

func NewServices(client *remote.Client, logger *slog.Logger, afterSave syncer.AfterSave) *Services {
	return &Services{
		Lifecycle: lifecycle.New(client),
		Sessions:  session.NewManager(client, logger, afterSave),
		Remote:    client,
	}
}
