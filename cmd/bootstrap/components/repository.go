package components

import (
	"log/slog"

	"roombook/internal/infra/notification"
	"roombook/internal/infra/readstore"
	repo_impl "roombook/internal/infra/repository"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Write side
		fx.Annotate(
			repo_impl.NewAppointmentRepository,
			fx.As(new(commands.AppointmentRepository)),
		),
		fx.Annotate(
			repo_impl.NewAuditLogRepository,
			fx.As(new(commands.AuditLogRepository)),
		),
		fx.Annotate(
			repo_impl.NewRoomRepository,
			fx.As(new(commands.RoomRepository)),
		),
		fx.Annotate(
			repo_impl.NewLocationRepository,
			fx.As(new(commands.LocationRepository)),
		),
		// Outbound notifications
		fx.Annotate(
			func(logger *slog.Logger) *notification.LogDispatcher {
				return notification.NewLogDispatcher(logger)
			},
			fx.As(new(commands.NotificationDispatcher)),
		),
		// Read side
		fx.Annotate(
			readstore.NewAppointmentReadStore,
			fx.As(new(queries.AppointmentReadStore)),
		),
		fx.Annotate(
			readstore.NewRoomReadStore,
			fx.As(new(queries.RoomReadStore)),
		),
		fx.Annotate(
			readstore.NewStatsReadStore,
			fx.As(new(queries.StatsReadStore)),
		),
	),
)
