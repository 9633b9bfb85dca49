package dto

import (
	"github.com/google/uuid"

	"lodge/internal/domains/room/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreateRoomRequest struct {
	RoomNumber    string  `json:"room_number"     validate:"required,max=10"`
	Floor         int     `json:"floor"           validate:"omitempty,gte=0"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
	RoomTypeID    string  `json:"room_type_id"    validate:"required,uuid"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:            uuid.NewString(),
		RoomNumber:    c.RoomNumber,
		Floor:         c.Floor,
		PricePerNight: c.PricePerNight,
		IsAvailable:   true,
		RoomTypeID:    c.RoomTypeID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber    string  `db:"room_number"     json:"room_number"     validate:"omitempty,max=10"`
	Floor         int     `db:"floor"           json:"floor"           validate:"omitempty,gte=0"`
	PricePerNight float64 `db:"price_per_night" json:"price_per_night" validate:"omitempty,gt=0"`
	RoomTypeID    string  `db:"room_type_id"    json:"room_type_id"    validate:"omitempty,uuid"`
}

type DeleteRoomsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

type RoomResponse struct {
	ID            string  `json:"id"`
	RoomNumber    string  `json:"room_number"`
	Floor         int     `json:"floor"`
	PricePerNight float64 `json:"price_per_night"`
	IsAvailable   bool    `json:"is_available"`
	RoomTypeID    string  `json:"room_type_id"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(mod model.Room) {
	r.ID = mod.ID
	r.RoomNumber = mod.RoomNumber
	r.Floor = mod.Floor
	r.PricePerNight = mod.PricePerNight
	r.IsAvailable = mod.IsAvailable
	r.RoomTypeID = mod.RoomTypeID
	r.Metadata.FromModel(mod.Metadata)
}

type CreateRoomResponse struct {
	ID string `json:"id"`
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
