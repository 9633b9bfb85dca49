package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	amenityModel "lodge/internal/domains/amenity/model"
	amenityRepo "lodge/internal/domains/amenity/repository"
	custModel "lodge/internal/domains/customer/model"
	custRepo "lodge/internal/domains/customer/repository"
	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/internal/domains/reservation/repository"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	gRepo "lodge/shared/repository"
	"lodge/shared/timezone"
)

const (
	cacheGetReservation      = "reservation:get"
	cacheGetAllReservation   = "reservation:gets"
	cacheCountReservation    = "reservation:count"
	cacheCustomerReservation = "reservation:customer"
	cacheOverview            = "reservation:overview"
	cacheUpcoming            = "reservation:upcoming"

	// Room cache prefixes, invalidated when a confirmation flips availability.
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"

	eventCreated       = "reservation.created"
	eventStatusUpdated = "reservation.status_updated"
	eventDeleted       = "reservation.deleted"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateReservationStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
	ListByCustomer(ctx context.Context, customerID string) (dto.CustomerReservationsResponse, error)
	Overview(ctx context.Context) (dto.OverviewResponse, error)
	Upcoming(ctx context.Context) (dto.OverviewResponse, error)
	AddService(ctx context.Context, req dto.AddReservationServiceRequest, id string) error
	ListServices(ctx context.Context, id string) (dto.ReservationServicesResponse, error)
	ListLogs(ctx context.Context, id string) (dto.LogsResponse, error)
}

type serviceImpl struct {
	repo        repository.Reservation
	custRepo    custRepo.Customer
	roomRepo    roomRepo.Room
	amenityRepo amenityRepo.Amenity
	cfg         *config.Config
	cache       cache.RedisCache
	kafka       kafka.Client
	otel        otel.Otel
}

func New(
	repo repository.Reservation,
	custRepo custRepo.Customer,
	roomRepo roomRepo.Room,
	amenityRepo amenityRepo.Amenity,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:        repo,
		custRepo:    custRepo,
		roomRepo:    roomRepo,
		amenityRepo: amenityRepo,
		cfg:         cfg,
		cache:       cache,
		kafka:       kafka,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := req.ToModel(user)
	if err != nil {
		return "", failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	customerExist, err := s.custRepo.Exist(ctx, shared.FilterByID(req.CustomerID, custModel.FieldID, custModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return "", fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !customerExist {
		return "", failure.NotFound("customer not found") // nolint:wrapcheck
	}

	roomExist, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return "", fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !roomExist {
		return "", failure.NotFound("room not found") // nolint:wrapcheck
	}

	entry := model.Log{
		ID:            uuid.NewString(),
		ReservationID: reservation.ID,
		LogDate:       timezone.Now(),
		Action:        constant.ReservationLogCreated,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.repo.CreateWithLog(ctx, reservation, entry); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return "", fmt.Errorf("failed to create reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, eventCreated, reservation)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
		shared.InvalidateCaches(c, s.cache, cacheCustomerReservation)
		shared.InvalidateCaches(c, s.cache, cacheOverview)
		shared.InvalidateCaches(c, s.cache, cacheUpcoming)
	}()

	return reservation.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

// UpdateStatus applies a lifecycle transition. Confirming a reservation also
// marks the room unavailable, so the room read caches are flushed alongside
// the reservation ones.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateReservationStatusRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.UpdateStatus")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if err := s.repo.UpdateStatus(ctx, reservation, req.Status, user); err != nil {
		log.Error().Err(err).Msg("failed to update reservation status")

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	reservation.Status = req.Status

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, eventStatusUpdated, reservation)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCustomerReservation)
		shared.InvalidateCaches(c, s.cache, cacheOverview)
		shared.InvalidateCaches(c, s.cache, cacheUpcoming)

		if req.Status == constant.ReservationStatusConfirmed {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, reservation.RoomID)); err != nil {
				log.Error().Err(err).Msg("failed to delete room from cache")
			}

			shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		}
	}()

	return nil
}

// Delete removes the reservation row. Deleting an id that does not exist is
// a no-op, not an error. Audit log entries are kept.
func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Delete")
	defer scope.End()

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return failure.Conflict("cannot delete reservation with existing payments or services") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, eventDeleted, model.Reservation{ID: id})

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
		shared.InvalidateCaches(c, s.cache, cacheCustomerReservation)
		shared.InvalidateCaches(c, s.cache, cacheOverview)
		shared.InvalidateCaches(c, s.cache, cacheUpcoming)
	}()

	return nil
}

func (s *serviceImpl) ListByCustomer(ctx context.Context, customerID string) (res dto.CustomerReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.ListByCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheCustomerReservation, customerID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	exist, err := s.custRepo.Exist(ctx, shared.FilterByID(customerID, custModel.FieldID, custModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return res, fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservations by customer")

		return res, fmt.Errorf("failed to list reservations by customer: %w", err)
	}

	res.FromRows(rows)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Overview(ctx context.Context) (res dto.OverviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Overview")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheOverview, &res)
	if err == nil {
		return res, nil
	}

	rows, err := s.repo.Overview(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation overview")

		return res, fmt.Errorf("failed to get reservation overview: %w", err)
	}

	res.FromRows(rows)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheOverview, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation overview to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Upcoming(ctx context.Context) (res dto.OverviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Upcoming")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheUpcoming, &res)
	if err == nil {
		return res, nil
	}

	rows, err := s.repo.Upcoming(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get upcoming reservations")

		return res, fmt.Errorf("failed to get upcoming reservations: %w", err)
	}

	res.FromRows(rows)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheUpcoming, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save upcoming reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) AddService(ctx context.Context, req dto.AddReservationServiceRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.AddService")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservationExist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if reservation exists")

		return fmt.Errorf("failed to check if reservation exists: %w", err)
	}

	if !reservationExist {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	serviceExist, err := s.amenityRepo.Exist(ctx, shared.FilterByID(req.ServiceID, amenityModel.FieldID, amenityModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !serviceExist {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	if err := s.repo.AddService(ctx, req.ToModel(id, user)); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return failure.Conflict("service already attached to reservation") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to attach service to reservation")

		return fmt.Errorf("failed to attach service to reservation: %w", err)
	}

	return nil
}

func (s *serviceImpl) ListServices(ctx context.Context, id string) (res dto.ReservationServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.ListServices")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if reservation exists")

		return res, fmt.Errorf("failed to check if reservation exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	rows, err := s.repo.ListServices(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservation services")

		return res, fmt.Errorf("failed to list reservation services: %w", err)
	}

	res.FromRows(rows)

	return res, nil
}

// ListLogs reads the audit trail directly. Logs are never cached; they may
// refer to reservations that no longer exist, so no existence check either.
func (s *serviceImpl) ListLogs(ctx context.Context, id string) (res dto.LogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.ListLogs")
	defer scope.End()
	defer scope.TraceIfError(err)

	logs, err := s.repo.ListLogs(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservation logs")

		return res, fmt.Errorf("failed to list reservation logs: %w", err)
	}

	res.FromModels(logs)

	return res, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, reservation model.Reservation) {
	event := dto.ReservationEvent{
		Type:          eventType,
		ReservationID: reservation.ID,
		RoomID:        reservation.RoomID,
		Status:        reservation.Status,
		OccurredAt:    timezone.Now(),
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.ReservationEvents, kafka.Message{
		Key:   reservation.ID,
		Value: event,
	}); err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("failed to publish reservation event")
	}
}
