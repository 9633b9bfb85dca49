package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"lodge/internal/domains/reservation/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

var errCheckOutNotAfterCheckIn = errors.New("check_out_date must be after check_in_date")

type CreateReservationRequest struct {
	CustomerID   string `json:"customer_id"    validate:"required,uuid"`
	RoomID       string `json:"room_id"        validate:"required,uuid"`
	CheckInDate  string `json:"check_in_date"  validate:"required"`
	CheckOutDate string `json:"check_out_date" validate:"required"`
}

func (c *CreateReservationRequest) ToModel(user string) (model.Reservation, error) {
	checkIn, err := timezone.Parse(constant.ReservationLayout, c.CheckInDate)
	if err != nil {
		return model.Reservation{}, err
	}

	checkOut, err := timezone.Parse(constant.ReservationLayout, c.CheckOutDate)
	if err != nil {
		return model.Reservation{}, err
	}

	if !checkOut.After(checkIn) {
		return model.Reservation{}, errCheckOutNotAfterCheckIn
	}

	return model.Reservation{
		ID:           uuid.NewString(),
		CustomerID:   c.CustomerID,
		RoomID:       c.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       constant.ReservationStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Confirmed Cancelled CheckedIn CheckedOut"`
}

type AddReservationServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"omitempty,gte=1"`
}

func (c *AddReservationServiceRequest) ToModel(reservationID, user string) model.ServiceLink {
	quantity := c.Quantity
	if quantity == 0 {
		quantity = 1
	}

	return model.ServiceLink{
		ReservationID: reservationID,
		ServiceID:     c.ServiceID,
		Quantity:      quantity,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ReservationResponse struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customer_id"`
	RoomID       string `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Status       string `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(mod model.Reservation) {
	r.ID = mod.ID
	r.CustomerID = mod.CustomerID
	r.RoomID = mod.RoomID
	r.CheckInDate = mod.CheckInDate.Format(constant.ReservationLayout)
	r.CheckOutDate = mod.CheckOutDate.Format(constant.ReservationLayout)
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

type CreateReservationResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type CustomerReservationResponse struct {
	ID           string `json:"id"`
	RoomNumber   string `json:"room_number"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Status       string `json:"status"`
}

type CustomerReservationsResponse struct {
	Reservations []CustomerReservationResponse `json:"reservations"`
}

func (r *CustomerReservationsResponse) FromRows(rows []model.CustomerReservationRow) {
	r.Reservations = make([]CustomerReservationResponse, len(rows))
	for i, row := range rows {
		r.Reservations[i] = CustomerReservationResponse{
			ID:           row.ID,
			RoomNumber:   row.RoomNumber,
			CheckInDate:  row.CheckInDate.Format(constant.ReservationLayout),
			CheckOutDate: row.CheckOutDate.Format(constant.ReservationLayout),
			Status:       row.Status,
		}
	}
}

type OverviewEntry struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	RoomNumber   string `json:"room_number"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Status       string `json:"status"`
}

type OverviewResponse struct {
	Reservations []OverviewEntry `json:"reservations"`
}

func (r *OverviewResponse) FromRows(rows []model.OverviewRow) {
	r.Reservations = make([]OverviewEntry, len(rows))
	for i, row := range rows {
		r.Reservations[i] = OverviewEntry{
			ID:           row.ID,
			CustomerName: row.CustomerName,
			RoomNumber:   row.RoomNumber,
			CheckInDate:  row.CheckInDate.Format(constant.ReservationLayout),
			CheckOutDate: row.CheckOutDate.Format(constant.ReservationLayout),
			Status:       row.Status,
		}
	}
}

type ReservationServiceResponse struct {
	ServiceID string  `json:"service_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type ReservationServicesResponse struct {
	Services []ReservationServiceResponse `json:"services"`
}

func (r *ReservationServicesResponse) FromRows(rows []model.ServiceLinkRow) {
	r.Services = make([]ReservationServiceResponse, len(rows))
	for i, row := range rows {
		r.Services[i] = ReservationServiceResponse{
			ServiceID: row.ServiceID,
			Name:      row.Name,
			Price:     row.Price,
			Quantity:  row.Quantity,
		}
	}
}

type LogResponse struct {
	ID            string `json:"id"`
	ReservationID string `json:"reservation_id"`
	LogDate       string `json:"log_date"`
	Action        string `json:"action"`
}

type LogsResponse struct {
	Logs []LogResponse `json:"logs"`
}

func (r *LogsResponse) FromModels(models []model.Log) {
	r.Logs = make([]LogResponse, len(models))
	for i, mod := range models {
		r.Logs[i] = LogResponse{
			ID:            mod.ID,
			ReservationID: mod.ReservationID,
			LogDate:       timezone.Format(mod.LogDate, constant.DateFormat),
			Action:        mod.Action,
		}
	}
}

// ReservationEvent is the post-commit notification payload published to the
// reservation events topic.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	RoomID        string    `json:"room_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
