package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	kafkaMocks "lodge/infras/kafka/mocks"
	"lodge/infras/otel/mocks"
	amenityMocks "lodge/internal/domains/amenity/mocks"
	custMocks "lodge/internal/domains/customer/mocks"
	resMocks "lodge/internal/domains/reservation/mocks"
	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/internal/domains/reservation/service"
	roomMocks "lodge/internal/domains/room/mocks"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

func newFKViolation() error {
	return &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeFkViolation)}
}

func newUniqueViolation() error {
	return &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)}
}

type testMocks struct {
	repo    *resMocks.MockReservation
	cust    *custMocks.MockCustomer
	room    *roomMocks.MockRoom
	amenity *amenityMocks.MockAmenity
	cache   *cacheMocks.MockRedisCache
	kafka   *kafkaMocks.MockClient
}

func newService(ctrl *gomock.Controller) (service.Reservation, testMocks) {
	m := testMocks{
		repo:    resMocks.NewMockReservation(ctrl),
		cust:    custMocks.NewMockCustomer(ctrl),
		room:    roomMocks.NewMockRoom(ctrl),
		amenity: amenityMocks.NewMockAmenity(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.ReservationEvents = "reservation-events"

	svc := service.New(m.repo, m.cust, m.room, m.amenity, cfg, m.cache, m.kafka, mocks.NewOtel())

	return svc, m
}

// Mutations fan out to Kafka and the cache from a detached goroutine, so
// every expectation on that path is AnyTimes.
func allowAsyncSideEffects(m testMocks) {
	m.kafka.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	m.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	m.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	m.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func TestReservationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	allowAsyncSideEffects(m)

	validReq := dto.CreateReservationRequest{
		CustomerID:   "11111111-1111-1111-1111-111111111111",
		RoomID:       "22222222-2222-2222-2222-222222222222",
		CheckInDate:  "2026-10-01",
		CheckOutDate: "2026-10-05",
	}

	tests := []struct {
		name      string
		req       dto.CreateReservationRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation writes reservation and log together",
			req:  validReq,
			setupMock: func() {
				m.cust.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.room.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					CreateWithLog(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, reservation model.Reservation, entry model.Log) error {
						assert.Equal(t, constant.ReservationStatusPending, reservation.Status)
						assert.Equal(t, reservation.ID, entry.ReservationID)
						assert.Equal(t, constant.ReservationLogCreated, entry.Action)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "check-out before check-in is rejected",
			req: dto.CreateReservationRequest{
				CustomerID:   validReq.CustomerID,
				RoomID:       validReq.RoomID,
				CheckInDate:  "2026-10-05",
				CheckOutDate: "2026-10-01",
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "unknown customer",
			req:  validReq,
			setupMock: func() {
				m.cust.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "unknown room",
			req:  validReq,
			setupMock: func() {
				m.cust.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.room.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "log write failure aborts the whole creation",
			req:  validReq,
			setupMock: func() {
				m.cust.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.room.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					CreateWithLog(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("insert into reservation_logs failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
			id, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, id)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, id)
			}
		})
	}
}

func TestReservationService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	allowAsyncSideEffects(m)

	reservation := model.Reservation{
		ID:           "res-id",
		CustomerID:   "cust-id",
		RoomID:       "room-id",
		CheckInDate:  time.Now(),
		CheckOutDate: time.Now().AddDate(0, 0, 2),
		Status:       constant.ReservationStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	tests := []struct {
		name      string
		id        string
		status    string
		setupMock func()
		wantErr   bool
	}{
		{
			name:   "confirming passes the reservation through for room availability",
			id:     "res-id",
			status: constant.ReservationStatusConfirmed,
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.repo.EXPECT().
					UpdateStatus(gomock.Any(), gomock.Any(), constant.ReservationStatusConfirmed, "test-user").
					DoAndReturn(func(_ context.Context, r model.Reservation, _, _ string) error {
						assert.Equal(t, "room-id", r.RoomID)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:   "reservation not found",
			id:     "missing-id",
			status: constant.ReservationStatusConfirmed,
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr: true,
		},
		{
			name:   "repository error",
			id:     "res-id",
			status: constant.ReservationStatusCancelled,
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.repo.EXPECT().
					UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
			err := svc.UpdateStatus(ctx, dto.UpdateReservationStatusRequest{Status: tt.status}, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReservationService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	allowAsyncSideEffects(m)

	t.Run("deleting an unknown id is a silent no-op", func(t *testing.T) {
		m.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(context.Background(), "missing-id")

		assert.NoError(t, err)
	})

	t.Run("foreign key violation maps to conflict", func(t *testing.T) {
		m.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(newFKViolation())

		err := svc.Delete(context.Background(), "res-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestReservationService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	reservation := model.Reservation{
		ID:     "res-id",
		Status: constant.ReservationStatusPending,
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cache hit",
			id:   "res-id",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, found in db",
			id:   "res-id",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReservationService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	t.Run("cache miss, reads count and rows", func(t *testing.T) {
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Reservation{{ID: "res-id"}}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Reservations, 1)
	})

	t.Run("count error", func(t *testing.T) {
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("count error"))

		_, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestReservationService_ListByCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	t.Run("unknown customer", func(t *testing.T) {
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.cust.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := svc.ListByCustomer(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("returns rows joined with room numbers", func(t *testing.T) {
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.cust.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		m.repo.EXPECT().
			ListByCustomer(gomock.Any(), "cust-id").
			Return([]model.CustomerReservationRow{{RoomNumber: "101"}}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.ListByCustomer(context.Background(), "cust-id")

		assert.NoError(t, err)
		assert.Len(t, res.Reservations, 1)
	})
}

func TestReservationService_Upcoming(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	t.Run("empty result set is not an error", func(t *testing.T) {
		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Upcoming(gomock.Any()).
			Return([]model.OverviewRow{}, nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Upcoming(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, res.Reservations)
	})
}

func TestReservationService_AddService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	req := dto.AddReservationServiceRequest{
		ServiceID: "33333333-3333-3333-3333-333333333333",
		Quantity:  2,
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful attach",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.amenity.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					AddService(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "reservation not found",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "duplicate attach maps to conflict",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.amenity.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					AddService(gomock.Any(), gomock.Any()).
					Return(newUniqueViolation())
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
			err := svc.AddService(ctx, req, "res-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReservationService_ListLogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)

	t.Run("logs survive reservation deletion", func(t *testing.T) {
		m.repo.EXPECT().
			ListLogs(gomock.Any(), "deleted-res-id").
			Return([]model.Log{{
				ID:            "log-id",
				ReservationID: "deleted-res-id",
				Action:        constant.ReservationLogCreated,
			}}, nil)

		res, err := svc.ListLogs(context.Background(), "deleted-res-id")

		assert.NoError(t, err)
		assert.Len(t, res.Logs, 1)
	})
}
