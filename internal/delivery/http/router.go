package http

import (
	"net/http"

	"clinicflow/internal/delivery/http/handler"
	"clinicflow/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	doctorHandler         *handler.DoctorHandler
	doctorScheduleHandler *handler.DoctorScheduleHandler
	slotHandler           *handler.SlotHandler
	bookingHandler        *handler.BookingHandler
	patientHandler        *handler.PatientHandler
	prescriptionHandler   *handler.PrescriptionHandler
	reviewHandler         *handler.ReviewHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	rateLimitMiddleware   *middleware.RateLimitMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	doctorScheduleHandler *handler.DoctorScheduleHandler,
	slotHandler *handler.SlotHandler,
	bookingHandler *handler.BookingHandler,
	patientHandler *handler.PatientHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		doctorHandler:         doctorHandler,
		doctorScheduleHandler: doctorScheduleHandler,
		slotHandler:           slotHandler,
		bookingHandler:        bookingHandler,
		patientHandler:        patientHandler,
		prescriptionHandler:   prescriptionHandler,
		reviewHandler:         reviewHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
		rateLimitMiddleware:   rateLimitMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor routes. Registered before the public /doctors/{id} routes so
	// the "me" paths are not swallowed by the {id} matcher.
	doctor := api.PathPrefix("").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/appointments", r.bookingHandler.ListAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/confirm", r.bookingHandler.ConfirmBooking).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id}/complete", r.bookingHandler.CompleteBooking).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id}/no-show", r.bookingHandler.MarkNoShow).Methods(http.MethodPost)
	doctor.HandleFunc("/doctors/me/schedule", r.doctorScheduleHandler.SaveWeekdayHours).Methods(http.MethodPost)
	doctor.HandleFunc("/doctors/me/schedule", r.doctorScheduleHandler.GetMySchedule).Methods(http.MethodGet)
	doctor.HandleFunc("/doctors/me/schedule/windows/{id}", r.doctorScheduleHandler.SetWindowActive).Methods(http.MethodPatch)
	doctor.HandleFunc("/doctors/me/profile", r.doctorHandler.UpdateProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/prescriptions", r.prescriptionHandler.CreatePrescription).Methods(http.MethodPost)
	doctor.HandleFunc("/prescriptions/issued", r.prescriptionHandler.ListIssued).Methods(http.MethodGet)

	// Doctor discovery (public)
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/schedule", r.doctorScheduleHandler.GetDoctorSchedule).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/reviews", r.reviewHandler.ListDoctorReviews).Methods(http.MethodGet)

	// Slot listings (any authenticated user)
	slots := api.PathPrefix("/doctors/{id}").Subrouter()
	slots.Use(r.authMiddleware.Authenticate)
	slots.HandleFunc("/slots", r.slotHandler.GetAvailableSlots).Methods(http.MethodGet)
	slots.HandleFunc("/booking-page", r.slotHandler.GetBookingPage).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	// Booking creation is rate limited per user.
	patient.Handle("/bookings",
		r.rateLimitMiddleware.Handle(http.HandlerFunc(r.bookingHandler.CreateBooking))).Methods(http.MethodPost)
	patient.HandleFunc("/bookings", r.bookingHandler.ListMyBookings).Methods(http.MethodGet)
	patient.HandleFunc("/reviews", r.reviewHandler.CreateReview).Methods(http.MethodPost)
	patient.HandleFunc("/prescriptions/my", r.prescriptionHandler.ListMine).Methods(http.MethodGet)
	patient.HandleFunc("/patients/me/profile", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patient.HandleFunc("/patients/me/profile", r.patientHandler.UpdateProfile).Methods(http.MethodPut)

	// Cancellation is open to the booking's patient or doctor
	cancel := api.PathPrefix("/bookings").Subrouter()
	cancel.Use(r.authMiddleware.Authenticate)
	cancel.HandleFunc("/{id}/cancel", r.bookingHandler.CancelBooking).Methods(http.MethodPost)
	cancel.HandleFunc("/{id}/prescription", r.prescriptionHandler.GetByBooking).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
