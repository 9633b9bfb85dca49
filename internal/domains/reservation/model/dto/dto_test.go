package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/shared/constant"
	"lodge/shared/timezone"
)

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		CustomerID:   "11111111-1111-1111-1111-111111111111",
		RoomID:       "22222222-2222-2222-2222-222222222222",
		CheckInDate:  "2026-10-01",
		CheckOutDate: "2026-10-05",
	}

	userID := "test-user-id"
	reservation, err := req.ToModel(userID)

	assert.NoError(t, err)
	assert.NotEmpty(t, reservation.ID, "expected ID to be generated")
	assert.Equal(t, req.CustomerID, reservation.CustomerID)
	assert.Equal(t, req.RoomID, reservation.RoomID)
	assert.Equal(t, constant.ReservationStatusPending, reservation.Status)
	assert.Equal(t, userID, reservation.CreatedBy)
	assert.True(t, reservation.CheckOutDate.After(reservation.CheckInDate))
}

func TestCreateReservationRequest_ToModel_InvalidDates(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateReservationRequest
	}{
		{
			name: "unparseable check-in date",
			req: dto.CreateReservationRequest{
				CheckInDate:  "01/10/2026",
				CheckOutDate: "2026-10-05",
			},
		},
		{
			name: "unparseable check-out date",
			req: dto.CreateReservationRequest{
				CheckInDate:  "2026-10-01",
				CheckOutDate: "next friday",
			},
		},
		{
			name: "check-out equal to check-in",
			req: dto.CreateReservationRequest{
				CheckInDate:  "2026-10-01",
				CheckOutDate: "2026-10-01",
			},
		},
		{
			name: "check-out before check-in",
			req: dto.CreateReservationRequest{
				CheckInDate:  "2026-10-05",
				CheckOutDate: "2026-10-01",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.ToModel("test-user-id")

			assert.Error(t, err)
		})
	}
}

func TestAddReservationServiceRequest_ToModel(t *testing.T) {
	t.Run("quantity defaults to one", func(t *testing.T) {
		req := dto.AddReservationServiceRequest{
			ServiceID: "33333333-3333-3333-3333-333333333333",
		}

		link := req.ToModel("res-id", "test-user-id")

		assert.Equal(t, "res-id", link.ReservationID)
		assert.Equal(t, req.ServiceID, link.ServiceID)
		assert.Equal(t, 1, link.Quantity)
	})

	t.Run("explicit quantity is kept", func(t *testing.T) {
		req := dto.AddReservationServiceRequest{
			ServiceID: "33333333-3333-3333-3333-333333333333",
			Quantity:  3,
		}

		link := req.ToModel("res-id", "test-user-id")

		assert.Equal(t, 3, link.Quantity)
	})
}

func TestLogsResponse_FromModels(t *testing.T) {
	now := timezone.Now()

	var res dto.LogsResponse
	res.FromModels([]model.Log{
		{
			ID:            "log-id",
			ReservationID: "res-id",
			LogDate:       now,
			Action:        constant.ReservationLogCreated,
		},
	})

	assert.Len(t, res.Logs, 1)
	assert.Equal(t, "log-id", res.Logs[0].ID)
	assert.Equal(t, constant.ReservationLogCreated, res.Logs[0].Action)
}
