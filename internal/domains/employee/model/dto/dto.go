package dto

import (
	"github.com/google/uuid"

	"lodge/internal/domains/employee/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreateEmployeeRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=50"`
	LastName  string  `json:"last_name"  validate:"required,max=50"`
	Role      string  `json:"role"       validate:"required,oneof=Admin Manager Receptionist"`
	Phone     *string `json:"phone"      validate:"omitempty,max=20"`
	Email     string  `json:"email"      validate:"required,email,max=100"`
	Password  string  `json:"password"   validate:"required,min=8"`
}

func (c *CreateEmployeeRequest) ToModel(user, hashedPassword string) model.Employee {
	return model.Employee{
		ID:           uuid.NewString(),
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Role:         c.Role,
		Phone:        c.Phone,
		Email:        c.Email,
		PasswordHash: hashedPassword,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateEmployeeRequest struct {
	FirstName string `db:"first_name" json:"first_name" validate:"omitempty,max=50"`
	LastName  string `db:"last_name"  json:"last_name"  validate:"omitempty,max=50"`
	Role      string `db:"role"       json:"role"       validate:"omitempty,oneof=Admin Manager Receptionist"`
	Phone     string `db:"phone"      json:"phone"      validate:"omitempty,max=20"`
}

type EmployeeResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      string  `json:"role"`
	Phone     *string `json:"phone,omitempty"`
	Email     string  `json:"email"`
	gDto.Metadata
}

func (r *EmployeeResponse) FromModel(mod model.Employee) {
	r.ID = mod.ID
	r.FirstName = mod.FirstName
	r.LastName = mod.LastName
	r.Role = mod.Role
	r.Phone = mod.Phone
	r.Email = mod.Email
	r.Metadata.FromModel(mod.Metadata)
}

type CreateEmployeeResponse struct {
	ID string `json:"id"`
}

type GetEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetEmployeesResponse) FromModels(models []model.Employee, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Employees = make([]EmployeeResponse, len(models))
	for i, mod := range models {
		r.Employees[i].FromModel(mod)
	}
}
