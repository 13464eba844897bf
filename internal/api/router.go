package api

import (
	"net/http"

	"parkingportal/internal/auth"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Catalog      *CatalogHandler
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Reservations *UserReservationHandler
	Account      *AccountHandler
	Admin        *AdminHandler
}

func NewRouter(h Handlers, sessions auth.SessionLoader) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	a := r.PathPrefix("/api").Subrouter()
	a.Use(auth.SessionMiddleware(sessions))

	// Public endpoints
	a.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	a.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	a.HandleFunc("/auth/admin/login", h.Auth.AdminLogin).Methods("POST")
	a.HandleFunc("/auth/logout", h.Auth.Logout).Methods("POST")
	a.HandleFunc("/auth/me", h.Auth.Me).Methods("GET")
	a.HandleFunc("/catalog/locations", h.Catalog.Locations).Methods("GET")
	a.HandleFunc("/catalog/options", h.Catalog.Options).Methods("GET")
	a.HandleFunc("/payments/callback", h.Payment.Callback).Methods("GET")

	// Admin endpoints (protected)
	admin := a.PathPrefix("/admin").Subrouter()
	admin.Use(auth.RequireSuperAdmin)
	admin.HandleFunc("/reservations", h.Admin.ListReservations).Methods("GET")
	admin.HandleFunc("/reservations/{id:[0-9]+}/{action}", h.Admin.Act).Methods("POST")
	admin.HandleFunc("/dashboard", h.Admin.Dashboard).Methods("GET")
	admin.HandleFunc("/locations", h.Catalog.Locations).Methods("GET")
	admin.HandleFunc("/locations", h.Catalog.CreateLocation).Methods("POST")
	admin.HandleFunc("/locations/{id:[0-9]+}", h.Catalog.UpdateLocation).Methods("PUT")
	admin.HandleFunc("/locations/{id:[0-9]+}", h.Catalog.DeleteLocation).Methods("DELETE")
	admin.HandleFunc("/users", h.Admin.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}/{op:activate|deactivate}", h.Admin.SetUserActive).Methods("POST")

	// Signed-in users
	u := a.NewRoute().Subrouter()
	u.Use(auth.RequireUser)
	u.HandleFunc("/bookings", h.Booking.Create).Methods("POST")
	u.HandleFunc("/bookings/{id}", h.Booking.Get).Methods("GET")
	u.HandleFunc("/bookings/{id}", h.Booking.Discard).Methods("DELETE")
	u.HandleFunc("/bookings/{id}/slots/refresh", h.Booking.RefreshSlots).Methods("POST")
	u.HandleFunc("/bookings/{id}/slot", h.Booking.SelectSlot).Methods("PUT")
	u.HandleFunc("/bookings/{id}/vehicle", h.Booking.SetVehicle).Methods("PUT")
	u.HandleFunc("/bookings/{id}/payment", h.Booking.SetPayment).Methods("PUT")
	u.HandleFunc("/bookings/{id}/next", h.Booking.Next).Methods("POST")
	u.HandleFunc("/bookings/{id}/previous", h.Booking.Previous).Methods("POST")
	u.HandleFunc("/bookings/{id}/submit", h.Booking.Submit).Methods("POST")
	u.HandleFunc("/reservations", h.Reservations.List).Methods("GET")
	u.HandleFunc("/reservations/{id:[0-9]+}/cancel", h.Reservations.Cancel).Methods("POST")
	u.HandleFunc("/reservations/{id:[0-9]+}/receipt", h.Reservations.Receipt).Methods("GET")
	u.HandleFunc("/account/profile", h.Account.Profile).Methods("GET")
	u.HandleFunc("/account/profile", h.Account.UpdateProfile).Methods("PUT")
	u.HandleFunc("/account/password", h.Account.ChangePassword).Methods("PUT")
	u.HandleFunc("/account/notifications", h.Account.Notifications).Methods("GET")
	u.HandleFunc("/account/notifications/count", h.Account.UnreadCount).Methods("GET")
	u.HandleFunc("/account/notifications/read", h.Account.MarkAllRead).Methods("POST")

	return r
}
