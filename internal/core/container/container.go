package container

import (
	"database/sql"

	auditLogRepo "commissary/internal/auditlog"
	"commissary/internal/items"
	"commissary/internal/itemtypes"
	"commissary/internal/ledger"
	"commissary/internal/locations"
	"commissary/internal/operations"
	"commissary/internal/reports"
	"commissary/internal/repository"
	"commissary/internal/reservations"
	"commissary/internal/stock"
	"commissary/internal/users"
	"commissary/pkg/auditlog"
	"commissary/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Repository         *repository.Repository
	AuditLog           *auditlog.Auditlog
	Tracker            *reservations.Tracker
	LoginHandler       *security.LoginHandler
	OperationsHandler  *operations.Handler
	ReservationHandler *reservations.Handler
	ItemHandler        *items.ItemHandler
	ItemTypeHandler    *itemtypes.ItemTypeHandler
	LocationHandler    *locations.LocationHandler
	ReportHandler      *reports.ReportHandler
	AuditLogHandler    *auditLogRepo.Handler
}

// NewAppContainer wires the object graph: the shared repository at the
// bottom, the ledger store and projector over it, then the services and
// handlers. The same KeyMutex instance guards both the operations service
// and the reservation tracker, so their availability checks serialize
// against each other.
func NewAppContainer(db *sql.DB, jwtSecret []byte, log *zap.Logger) *Container {
	repo := repository.NewRepository(db)

	auditRepo := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditRepo, log)

	ledgerStore := ledger.NewPostgresStore(repo)
	reservationRepo := reservations.NewPostgresRepository(repo)
	projector := stock.NewProjector(ledgerStore, reservationRepo)
	locks := ledger.NewKeyMutex()

	itemRepo := items.NewItemRepository(repo)
	itemTypeRepo := itemtypes.NewItemTypeRepository(repo)
	locationRepo := locations.NewLocationRepository(repo)
	userRepo := users.NewUserRepository(repo)
	reportRepo := reports.NewReportRepository(repo)

	tracker := reservations.NewTracker(reservationRepo, projector, locks, log)
	service := operations.NewService(ledgerStore, projector, itemRepo, locationRepo, locks, auditLog)

	return &Container{
		Repository:         repo,
		AuditLog:           auditLog,
		Tracker:            tracker,
		LoginHandler:       security.NewLoginHandler(userRepo, jwtSecret),
		OperationsHandler:  operations.NewHandler(service, projector, ledgerStore),
		ReservationHandler: reservations.NewHandler(tracker),
		ItemHandler:        items.NewItemHandler(itemRepo, auditLog),
		ItemTypeHandler:    itemtypes.NewItemTypeHandler(itemTypeRepo, auditLog),
		LocationHandler:    locations.NewLocationHandler(locationRepo, auditLog),
		ReportHandler:      reports.NewReportHandler(reportRepo),
		AuditLogHandler:    auditLogRepo.NewHandler(auditRepo),
	}
}
