package dto

import (
	"github.com/google/uuid"

	"lodge/internal/domains/customer/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreateCustomerRequest struct {
	FirstName  string `json:"first_name"  validate:"required,max=50"`
	LastName   string `json:"last_name"   validate:"required,max=50"`
	Email      string `json:"email"       validate:"omitempty,email,max=100"`
	Phone      string `json:"phone"       validate:"omitempty,max=20"`
	NationalID string `json:"national_id" validate:"omitempty,max=20"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	customer := model.Customer{
		ID:        uuid.NewString(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if c.Email != "" {
		customer.Email = &c.Email
	}

	if c.Phone != "" {
		customer.Phone = &c.Phone
	}

	if c.NationalID != "" {
		customer.NationalID = &c.NationalID
	}

	return customer
}

type UpdateCustomerRequest struct {
	FirstName string `db:"first_name" json:"first_name" validate:"omitempty,max=50"`
	LastName  string `db:"last_name"  json:"last_name"  validate:"omitempty,max=50"`
	Email     string `db:"email"      json:"email"      validate:"omitempty,email,max=100"`
	Phone     string `db:"phone"      json:"phone"      validate:"omitempty,max=20"`
}

type CustomerResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"national_id,omitempty"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(mod model.Customer) {
	r.ID = mod.ID
	r.FirstName = mod.FirstName
	r.LastName = mod.LastName

	if mod.Email != nil {
		r.Email = *mod.Email
	}

	if mod.Phone != nil {
		r.Phone = *mod.Phone
	}

	if mod.NationalID != nil {
		r.NationalID = *mod.NationalID
	}

	r.Metadata.FromModel(mod.Metadata)
}

type CreateCustomerResponse struct {
	ID string `json:"id"`
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}

// RosterEntry keeps the three-column shape of the roster listing;
// Email is null for customers without one.
type RosterEntry struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
}

type RosterResponse struct {
	Customers []RosterEntry `json:"customers"`
}

func (r *RosterResponse) FromRows(rows []model.RosterRow) {
	r.Customers = make([]RosterEntry, len(rows))
	for i, row := range rows {
		r.Customers[i] = RosterEntry{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
		}
	}
}
