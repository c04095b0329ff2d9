package di

import (
	"go.uber.org/fx"

	"github.com/palletworks/portal/internal/adapter/workflow"
	"github.com/palletworks/portal/internal/app"
	"github.com/palletworks/portal/internal/config"
	"github.com/palletworks/portal/internal/logger"
	"github.com/palletworks/portal/internal/notify"
	"github.com/palletworks/portal/internal/pricing"
	"github.com/palletworks/portal/internal/ratelimit"
	"github.com/palletworks/portal/internal/server/http/handlers"
	"github.com/palletworks/portal/internal/server/http/middleware"
	"github.com/palletworks/portal/internal/server/http/router"
	"github.com/palletworks/portal/internal/storage/postgres"
	"github.com/palletworks/portal/internal/usecase"
	"github.com/palletworks/portal/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		ratelimit.Module,
		workflow.Module,
		notify.Module,
		worker.Module,
		usecase.Module,
		fx.Provide(
			pricing.DefaultPolicy,
			func(d *worker.NotificationDispatcher) usecase.Notifier { return d },
			func(f *app.PortalFacade) handlers.PortalFacade { return f },
			func() middleware.Provider { return middleware.HeaderProvider{} },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
