package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	amenityModel "lodge/internal/domains/amenity/model"
	custModel "lodge/internal/domains/customer/model"
	"lodge/internal/domains/reservation/model"
	roomModel "lodge/internal/domains/room/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
	"lodge/shared/timezone"
)

type Reservation interface {
	CreateWithLog(ctx context.Context, reservation model.Reservation, entry model.Log) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateStatus(ctx context.Context, reservation model.Reservation, status, user string) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ListByCustomer(ctx context.Context, customerID string) ([]model.CustomerReservationRow, error)
	Overview(ctx context.Context) ([]model.OverviewRow, error)
	Upcoming(ctx context.Context) ([]model.OverviewRow, error)
	AddService(ctx context.Context, link model.ServiceLink) error
	ListServices(ctx context.Context, reservationID string) ([]model.ServiceLinkRow, error)
	ListLogs(ctx context.Context, reservationID string) ([]model.Log, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	logRepo  gRepo.Repository[model.Log]
	linkRepo gRepo.Repository[model.ServiceLink]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		logRepo:    gRepo.NewRepository[model.Log](model.LogEntityName, model.LogTableName, model.LogFieldID, db, otel),
		linkRepo:   gRepo.NewRepository[model.ServiceLink](model.ServiceLinkEntityName, model.ServiceLinkTableName, model.ServiceLinkFieldReservationID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CreateWithLog inserts the reservation and its audit log entry in one
// transaction. If the log insert fails the reservation insert is rolled back,
// so a reservation row never exists without its creation entry.
func (repo *repositoryImpl) CreateWithLog(ctx context.Context, reservation model.Reservation, entry model.Log) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CreateWithLog")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (reservation): %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	if err = repo.InsertTx(ctx, tx, reservation); err != nil {
		return err
	}

	if err = repo.logRepo.InsertTx(ctx, tx, entry); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit reservation create: %w", err)
	}

	return nil
}

// UpdateStatus applies a status transition. When the new status is Confirmed
// the referenced room is marked unavailable in the same transaction, so the
// reservation and the room's derived flag never disagree. No transition
// restores availability; RecomputeAvailability on the room side does that
// explicitly.
func (repo *repositoryImpl) UpdateStatus(ctx context.Context, reservation model.Reservation, status, user string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (reservation): %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	updatedFields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = repo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(reservation.ID, model.FieldID, model.TableName)); err != nil {
		return err
	}

	if status == constant.ReservationStatusConfirmed {
		query := fmt.Sprintf(
			"UPDATE %s SET %s = FALSE WHERE %s = $1",
			roomModel.TableName, roomModel.FieldIsAvailable, roomModel.FieldID,
		)
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)

		if _, err = tx.ExecContext(ctx, query, reservation.RoomID); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to update room availability: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit reservation status update: %w", err)
	}

	return nil
}

// ListByCustomer returns the customer's reservations in insertion order.
func (repo *repositoryImpl) ListByCustomer(ctx context.Context, customerID string) (rows []model.CustomerReservationRow, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ListByCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		`SELECT r.%s AS id, rm.%s AS room_number, r.%s AS check_in_date, r.%s AS check_out_date, r.%s AS status
		FROM %s r
		JOIN %s rm ON rm.%s = r.%s
		WHERE r.%s = $1
		ORDER BY r.created_at ASC`,
		model.FieldID, roomModel.FieldRoomNumber, model.FieldCheckInDate, model.FieldCheckOutDate, model.FieldStatus,
		model.TableName,
		roomModel.TableName, roomModel.FieldID, model.FieldRoomID,
		model.FieldCustomerID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows = []model.CustomerReservationRow{}
	if err = repo.db.Read.SelectContext(ctx, &rows, query, customerID); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list reservations by customer: %w", err)
	}

	return rows, nil
}

// Overview joins every reservation with its customer's full name and room
// number.
func (repo *repositoryImpl) Overview(ctx context.Context) (rows []model.OverviewRow, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Overview")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := repo.overviewQuery("")
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows = []model.OverviewRow{}
	if err = repo.db.Read.SelectContext(ctx, &rows, query); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list reservation overview: %w", err)
	}

	return rows, nil
}

// Upcoming returns reservations starting after the latest cancelled
// check-out date. When no cancelled reservation exists the bound is NULL and
// the comparison yields no rows.
func (repo *repositoryImpl) Upcoming(ctx context.Context) (rows []model.OverviewRow, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Upcoming")
	defer scope.End()
	defer scope.TraceIfError(err)

	bound := fmt.Sprintf(
		"r.%s > (SELECT MAX(%s) FROM %s WHERE %s = $1)",
		model.FieldCheckInDate, model.FieldCheckOutDate, model.TableName, model.FieldStatus,
	)
	query := repo.overviewQuery(bound)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows = []model.OverviewRow{}
	if err = repo.db.Read.SelectContext(ctx, &rows, query, constant.ReservationStatusCancelled); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list upcoming reservations: %w", err)
	}

	return rows, nil
}

func (repo *repositoryImpl) overviewQuery(where string) string {
	query := fmt.Sprintf(
		`SELECT r.%s AS id, c.%s || ' ' || c.%s AS customer_name, rm.%s AS room_number,
		r.%s AS check_in_date, r.%s AS check_out_date, r.%s AS status
		FROM %s r
		JOIN %s c ON c.%s = r.%s
		JOIN %s rm ON rm.%s = r.%s`,
		model.FieldID, custModel.FieldFirstName, custModel.FieldLastName, roomModel.FieldRoomNumber,
		model.FieldCheckInDate, model.FieldCheckOutDate, model.FieldStatus,
		model.TableName,
		custModel.TableName, custModel.FieldID, model.FieldCustomerID,
		roomModel.TableName, roomModel.FieldID, model.FieldRoomID,
	)

	if where != "" {
		query += " WHERE " + where
	}

	return query + fmt.Sprintf(" ORDER BY r.%s ASC", model.FieldCheckInDate)
}

func (repo *repositoryImpl) AddService(ctx context.Context, link model.ServiceLink) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.AddService")
	defer scope.End()
	defer scope.TraceIfError(err)

	return repo.linkRepo.Insert(ctx, link)
}

// ListServices returns the services attached to a reservation with their
// name and unit price.
func (repo *repositoryImpl) ListServices(ctx context.Context, reservationID string) (rows []model.ServiceLinkRow, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ListServices")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		`SELECT rs.%s AS service_id, s.%s AS name, s.%s AS price, rs.%s AS quantity
		FROM %s rs
		JOIN %s s ON s.%s = rs.%s
		WHERE rs.%s = $1
		ORDER BY s.%s ASC`,
		model.ServiceLinkFieldServiceID, amenityModel.FieldName, amenityModel.FieldPrice, model.ServiceLinkFieldQuantity,
		model.ServiceLinkTableName,
		amenityModel.TableName, amenityModel.FieldID, model.ServiceLinkFieldServiceID,
		model.ServiceLinkFieldReservationID,
		amenityModel.FieldName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows = []model.ServiceLinkRow{}
	if err = repo.db.Read.SelectContext(ctx, &rows, query, reservationID); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list reservation services: %w", err)
	}

	return rows, nil
}

// ListLogs returns the audit trail for a reservation, oldest first. The rows
// survive deletion of the reservation they describe.
func (repo *repositoryImpl) ListLogs(ctx context.Context, reservationID string) (logs []model.Log, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ListLogs")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE %s = $1 ORDER BY %s ASC",
		model.LogTableName, model.LogFieldReservationID, model.LogFieldLogDate,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	logs = []model.Log{}
	if err = repo.db.Read.SelectContext(ctx, &logs, query, reservationID); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list reservation logs: %w", err)
	}

	return logs, nil
}
