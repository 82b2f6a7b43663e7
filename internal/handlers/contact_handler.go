package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/repository"
	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/service"
)

type ContactHandler struct {
	service     *service.ContactService
	development bool
}

func NewContactHandler(svc *service.ContactService, development bool) *ContactHandler {
	return &ContactHandler{service: svc, development: development}
}

// Submit handles public contact form submissions, capturing request
// attribution for the record.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input models.ContactInquiryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "Invalid request payload"})
		return
	}

	meta := models.RequestMeta{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	receipt, err := h.service.SubmitInquiry(ctx, &input, meta)
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeMessage(w, http.StatusCreated, "Your message has been sent successfully. We will get back to you soon!", receipt)
}

// InquiryTypes serves the inquiry-type catalog.
func (h *ContactHandler) InquiryTypes(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, h.service.InquiryTypes())
}

// Stats serves the inquiry overview and type distribution.
func (h *ContactHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stats, err := h.service.Statistics(ctx)
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeData(w, http.StatusOK, stats)
}

// AdminList serves the paginated admin listing, active inquiries only.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	listQuery := repository.ContactListQuery{
		Status:      query.Get("status"),
		InquiryType: query.Get("inquiryType"),
		Priority:    query.Get("priority"),
		Search:      query.Get("search"),
		SortBy:      query.Get("sort"),
		Order:       query.Get("order"),
		Page:        intParam(query.Get("page"), 1),
		Limit:       intParam(query.Get("limit"), 10),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	page, err := h.service.ListInquiries(ctx, listQuery)
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeData(w, http.StatusOK, page)
}

// AdminFollowUps serves the follow-up worklist.
func (h *ContactHandler) AdminFollowUps(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := h.service.FollowUps(ctx)
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeData(w, http.StatusOK, items)
}

// AdminGet serves the full inquiry record with derived fields.
func (h *ContactHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	detail, err := h.service.GetInquiry(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeData(w, http.StatusOK, detail)
}

// AdminUpdateStatus applies an admin status change with optional priority
// override and internal note.
func (h *ContactHandler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input models.ContactStatusUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "Invalid request payload"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := h.service.UpdateInquiryStatus(ctx, mux.Vars(r)["id"], &input)
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeMessage(w, http.StatusOK, "Contact status updated successfully", summary)
}

// AdminRespond records the staff response to an inquiry.
func (h *ContactHandler) AdminRespond(w http.ResponseWriter, r *http.Request) {
	var input models.RespondInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "Invalid request payload"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := h.service.Respond(ctx, mux.Vars(r)["id"], &input)
	if err != nil {
		writeError(w, err, h.development)
		return
	}
	writeMessage(w, http.StatusOK, "Response added successfully", summary)
}

// AdminDelete soft-deletes an inquiry.
func (h *ContactHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.service.SoftDelete(ctx, mux.Vars(r)["id"]); err != nil {
		writeError(w, err, h.development)
		return
	}
	writeMessage(w, http.StatusOK, "Contact deleted successfully", nil)
}
