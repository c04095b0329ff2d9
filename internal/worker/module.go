package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/palletworks/portal/internal/config"
	"github.com/palletworks/portal/internal/notify"
)

// Module wires the notification dispatcher into the fx graph.
var Module = fx.Provide(newDispatcher)

type dispatcherParams struct {
	fx.In

	Sender notify.Sender
	Config *config.Config
	Logger *slog.Logger
}

func newDispatcher(p dispatcherParams) *NotificationDispatcher {
	return NewNotificationDispatcher(
		p.Sender,
		p.Config.NotifyQueueSize,
		p.Config.NotifyWorkers,
		p.Config.NotifySendTimeout,
		p.Logger,
	)
}
