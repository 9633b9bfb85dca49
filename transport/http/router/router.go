package router

import (
	"github.com/go-chi/chi/v5"

	"lodge/internal/handlers/amenity"
	"lodge/internal/handlers/auth"
	"lodge/internal/handlers/customer"
	"lodge/internal/handlers/employee"
	"lodge/internal/handlers/payment"
	"lodge/internal/handlers/reservation"
	"lodge/internal/handlers/room"
	"lodge/internal/handlers/roomtype"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Customer    customer.Handler
	RoomType    roomtype.Handler
	Room        room.Handler
	Reservation reservation.Handler
	Payment     payment.Handler
	Amenity     amenity.Handler
	Employee    employee.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.RoomType.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Amenity.Router(routerGroup)
		r.DomainHandlers.Employee.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
