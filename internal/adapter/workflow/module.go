package workflow

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/palletworks/portal/internal/config"
)

// Module exposes the workflow relay client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.WebhookURL, p.Config.WebhookSecret, p.Config.WebhookTimeout, p.Logger)
}
