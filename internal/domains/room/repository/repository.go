package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	resModel "lodge/internal/domains/reservation/model"
	"lodge/internal/domains/room/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
)

// ErrHasReservations rejects room deletion while any reservation still
// references the room, whatever its status.
var ErrHasReservations = errors.New("room has existing reservations")

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	DeleteGuarded(ctx context.Context, ids []string) error
	RecomputeAvailability(ctx context.Context, roomID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// DeleteGuarded deletes the given rooms in a single transaction. The check and
// the delete run inside the same transaction so the whole batch is rejected if
// any targeted room is still referenced, and no partial delete is observable.
func (repo *repositoryImpl) DeleteGuarded(ctx context.Context, ids []string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.DeleteGuarded")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (room): %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	existQuery, args, err := sqlx.In(
		fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s IN (?))", resModel.TableName, resModel.FieldRoomID),
		ids,
	)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to build reservation check query: %w", err)
	}

	existQuery = tx.Rebind(existQuery)
	scope.SetAttribute(constant.OtelQueryAttributeKey, existQuery)

	referenced := false
	if err = tx.GetContext(ctx, &referenced, existQuery, args...); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to check room reservations: %w", err)
	}

	if referenced {
		err = ErrHasReservations

		return err
	}

	deleteQuery, args, err := sqlx.In(
		fmt.Sprintf("DELETE FROM %s WHERE %s IN (?)", model.TableName, model.FieldID),
		ids,
	)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to build room delete query: %w", err)
	}

	deleteQuery = tx.Rebind(deleteQuery)

	if _, err = tx.ExecContext(ctx, deleteQuery, args...); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to delete rooms: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit room delete: %w", err)
	}

	return nil
}

// RecomputeAvailability reconciles the derived is_available flag against the
// reservations table in one statement.
func (repo *repositoryImpl) RecomputeAvailability(ctx context.Context, roomID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.RecomputeAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"UPDATE %s SET %s = NOT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2) WHERE %s = $1",
		model.TableName, model.FieldIsAvailable,
		resModel.TableName, resModel.FieldRoomID, resModel.FieldStatus,
		model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = repo.db.Write.ExecContext(ctx, query, roomID, constant.ReservationStatusConfirmed); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to recompute room availability: %w", err)
	}

	return nil
}
