package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	roomMocks "lodge/internal/domains/room/mocks"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/model/dto"
	"lodge/internal/domains/room/repository"
	"lodge/internal/domains/room/service"
	rtMocks "lodge/internal/domains/roomtype/mocks"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
)

func newUniqueViolation() error {
	return &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)}
}

func newService(ctrl *gomock.Controller) (service.Room, *roomMocks.MockRoom, *rtMocks.MockRoomType, *cacheMocks.MockRedisCache) {
	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockTypeRepo := rtMocks.NewMockRoomType(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockTypeRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockTypeRepo, mockCache
}

func allowAsyncCacheOps(mockCache *cacheMocks.MockRedisCache) {
	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func TestRoomService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockTypeRepo, mockCache := newService(ctrl)
	allowAsyncCacheOps(mockCache)

	req := dto.CreateRoomRequest{
		RoomNumber:    "101",
		Floor:         1,
		PricePerNight: 120.0,
		RoomTypeID:    "11111111-1111-1111-1111-111111111111",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation starts available",
			setupMock: func() {
				mockTypeRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.True(t, room.IsAvailable)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "unknown room type",
			setupMock: func() {
				mockTypeRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "duplicate room number maps to conflict",
			setupMock: func() {
				mockTypeRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
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
			id, err := svc.Create(ctx, req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, id)
			}
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newService(ctrl)
	allowAsyncCacheOps(mockCache)

	ids := []string{"room-1", "room-2"}

	t.Run("successful batch delete", func(t *testing.T) {
		mockRepo.EXPECT().
			DeleteGuarded(gomock.Any(), ids).
			Return(nil)

		err := svc.Delete(context.Background(), ids)

		assert.NoError(t, err)
	})

	t.Run("any referenced room rejects the whole batch", func(t *testing.T) {
		mockRepo.EXPECT().
			DeleteGuarded(gomock.Any(), ids).
			Return(repository.ErrHasReservations)

		err := svc.Delete(context.Background(), ids)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			DeleteGuarded(gomock.Any(), ids).
			Return(errors.New("database error"))

		err := svc.Delete(context.Background(), ids)

		assert.Error(t, err)
	})
}

func TestRoomService_RecomputeAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newService(ctrl)
	allowAsyncCacheOps(mockCache)

	t.Run("recomputes for an existing room", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			RecomputeAvailability(gomock.Any(), "room-id").
			Return(nil)

		err := svc.RecomputeAvailability(context.Background(), "room-id")

		assert.NoError(t, err)
	})

	t.Run("unknown room", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.RecomputeAvailability(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockTypeRepo, mockCache := newService(ctrl)
	allowAsyncCacheOps(mockCache)

	t.Run("empty update is rejected", func(t *testing.T) {
		err := svc.Update(context.Background(), dto.UpdateRoomRequest{}, "room-id")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("room type is validated when changed", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockTypeRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateRoomRequest{
			RoomTypeID: "22222222-2222-2222-2222-222222222222",
		}, "room-id")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("successful update", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Update(context.Background(), dto.UpdateRoomRequest{Floor: 3}, "room-id")

		assert.NoError(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newService(ctrl)

	t.Run("not found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		_, err := svc.Get(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("cache miss, found in db", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "room-id", RoomNumber: "101"}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "room-id")

		assert.NoError(t, err)
		assert.Equal(t, "room-id", res.ID)
	})
}
