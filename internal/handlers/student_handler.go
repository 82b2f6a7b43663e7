package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/repository"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/service"
)

const requestTimeout = 5 * time.Second

type StudentHandler struct {
	service     *service.StudentService
	development bool
}

func NewStudentHandler(svc *service.StudentService, development bool) *StudentHandler {
	return &StudentHandler{service: svc, development: development}
}

// Apply handles public admission application submissions.
func (h *StudentHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var input models.StudentApplicationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "Invalid request payload"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	receipt, err := h.service.SubmitApplication(ctx, &input)
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeMessage(w, http.StatusCreated, "Application submitted successfully", receipt)
}

// GetApplication returns the limited public view of one application.
func (h *StudentHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	view, err := h.service.GetApplicationStatus(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeData(w, http.StatusOK, view)
}

// CheckEmail reports whether an email is already registered.
func (h *StudentHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	exists, err := h.service.CheckEmailExists(ctx, mux.Vars(r)["email"])
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]bool{"exists": exists}})
}

// Programs serves the program catalog.
func (h *StudentHandler) Programs(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, h.service.Programs())
}

// Stats serves the application overview and program distribution.
func (h *StudentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stats, err := h.service.Statistics(ctx)
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeData(w, http.StatusOK, stats)
}

// AdminList serves the paginated admin listing with filters and search.
func (h *StudentHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	listQuery := repository.StudentListQuery{
		Status:  query.Get("status"),
		Program: query.Get("program"),
		Search:  query.Get("search"),
		SortBy:  query.Get("sort"),
		Order:   query.Get("order"),
		Page:    intParam(query.Get("page"), 1),
		Limit:   intParam(query.Get("limit"), 10),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	page, err := h.service.ListApplications(ctx, listQuery)
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeData(w, http.StatusOK, page)
}

// AdminGet serves the full student record with derived fields.
func (h *StudentHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	detail, err := h.service.GetStudent(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeData(w, http.StatusOK, detail)
}

// AdminUpdateStatus applies an admin status change.
func (h *StudentHandler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input models.StatusUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "Invalid request payload"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := h.service.UpdateApplicationStatus(ctx, mux.Vars(r)["id"], &input)
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeMessage(w, http.StatusOK, "Student status updated successfully", summary)
}

func intParam(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
