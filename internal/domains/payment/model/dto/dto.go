package dto

import (
	"github.com/google/uuid"

	"lodge/internal/domains/payment/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreatePaymentRequest struct {
	ReservationID string  `json:"reservation_id" validate:"required,uuid"`
	Amount        float64 `json:"amount"         validate:"required,gt=0"`
	Method        string  `json:"method"         validate:"required,max=30"`
}

func (c *CreatePaymentRequest) ToModel(user string) model.Payment {
	return model.Payment{
		ID:            uuid.NewString(),
		ReservationID: c.ReservationID,
		Amount:        c.Amount,
		PaymentDate:   timezone.Now(),
		Method:        c.Method,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePaymentRequest struct {
	Amount float64 `db:"amount" json:"amount" validate:"omitempty,gt=0"`
	Method string  `db:"method" json:"method" validate:"omitempty,max=30"`
}

type PaymentResponse struct {
	ID            string  `json:"id"`
	ReservationID string  `json:"reservation_id"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"payment_date"`
	Method        string  `json:"method"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(mod model.Payment) {
	r.ID = mod.ID
	r.ReservationID = mod.ReservationID
	r.Amount = mod.Amount
	r.PaymentDate = timezone.Format(mod.PaymentDate, constant.DateFormat)
	r.Method = mod.Method
	r.Metadata.FromModel(mod.Metadata)
}

type CreatePaymentResponse struct {
	ID string `json:"id"`
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}
