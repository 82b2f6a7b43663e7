package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/handlers"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/middleware"
)

// SetupRouter wires every endpoint. databaseMode describes the active
// persistence backend ("mongodb" or "file") and is reported by /health.
func SetupRouter(studentHandler *handlers.StudentHandler, contactHandler *handlers.ContactHandler, databaseMode string) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "OK",
			"database":  databaseMode,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}).Methods("GET")

	router.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "American College of Nursing API",
			"endpoints": map[string]string{
				"students": "/api/students",
				"contact":  "/api/contact",
				"health":   "/health",
			},
		})
	}).Methods("GET")

	// Public student endpoints
	router.HandleFunc("/api/students/apply", studentHandler.Apply).Methods("POST")
	router.HandleFunc("/api/students/application/{id}", studentHandler.GetApplication).Methods("GET")
	router.HandleFunc("/api/students/check-email/{email}", studentHandler.CheckEmail).Methods("GET")
	router.HandleFunc("/api/students/programs", studentHandler.Programs).Methods("GET")
	router.HandleFunc("/api/students/stats", studentHandler.Stats).Methods("GET")

	// Admin student endpoints
	router.HandleFunc("/api/students/admin/all", studentHandler.AdminList).Methods("GET")
	router.HandleFunc("/api/students/admin/{id}", studentHandler.AdminGet).Methods("GET")
	router.HandleFunc("/api/students/admin/{id}/status", studentHandler.AdminUpdateStatus).Methods("PUT")

	// Public contact endpoints
	router.HandleFunc("/api/contact/submit", contactHandler.Submit).Methods("POST")
	router.HandleFunc("/api/contact/inquiry-types", contactHandler.InquiryTypes).Methods("GET")
	router.HandleFunc("/api/contact/stats", contactHandler.Stats).Methods("GET")

	// Admin contact endpoints
	router.HandleFunc("/api/contact/admin/all", contactHandler.AdminList).Methods("GET")
	router.HandleFunc("/api/contact/admin/follow-ups", contactHandler.AdminFollowUps).Methods("GET")
	router.HandleFunc("/api/contact/admin/{id}", contactHandler.AdminGet).Methods("GET")
	router.HandleFunc("/api/contact/admin/{id}/status", contactHandler.AdminUpdateStatus).Methods("PUT")
	router.HandleFunc("/api/contact/admin/{id}/respond", contactHandler.AdminRespond).Methods("PUT")
	router.HandleFunc("/api/contact/admin/{id}", contactHandler.AdminDelete).Methods("DELETE")

	return router
}
