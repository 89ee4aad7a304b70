// Package handler provides HTTP request handlers for the application.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/ykuzmenko/smartsend/internal/middleware"
	"github.com/ykuzmenko/smartsend/internal/routing"
	"github.com/ykuzmenko/smartsend/internal/service"
)

const (
	errorCodeInvalidRequest = "INVALID_REQUEST"

	errorMessageInvalidBody = "Invalid request body"

	// Policy rejections are success-shaped responses, never protocol
	// errors; the strings are part of the API contract.
	rejectionNotOptedIn      = "User not opted in or profile not found"
	rejectionNoActiveChannel = "No active channels available"
	rejectionNoCartItems     = "No cart items found"
)

type Handler struct {
	service *service.Service
	logger  *zap.Logger
}

// NewHandler creates a new handler instance.
func NewHandler(service *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Root handles GET /api/.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, RootResponse{Message: "Smart Business Messaging API"})
}

// ListProducts handles GET /api/products, seeding the catalog when empty.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Product.List(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to list products", err)
		return
	}

	render.JSON(w, r, products)
}

// UpsertProfile handles POST /api/profile.
func (h *Handler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AnonID == "" {
		h.sendError(w, r, http.StatusBadRequest, errorCodeInvalidRequest, errorMessageInvalidBody)
		return
	}

	profile, err := h.service.Profile.Upsert(r.Context(), service.ProfileUpsert{
		AnonID:      req.AnonID,
		PhoneNumber: req.PhoneNumber,
		OptIn:       req.OptIn,
		Channel:     req.Channel,
	})
	if err != nil {
		h.internalError(w, r, "Failed to update profile", err)
		return
	}

	render.JSON(w, r, profile)
}

// GetProfile handles GET /api/profile/{anonID} with fetch-or-create
// semantics.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	anonID := chi.URLParam(r, "anonID")

	profile, err := h.service.Profile.GetOrCreate(r.Context(), anonID)
	if err != nil {
		h.internalError(w, r, "Failed to get profile", err)
		return
	}

	render.JSON(w, r, profile)
}

// DeleteProfile handles DELETE /api/profile/{anonID}, cascading to the
// user's events and messages.
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	anonID := chi.URLParam(r, "anonID")

	if err := h.service.Profile.DeleteCascade(r.Context(), anonID); err != nil {
		h.internalError(w, r, "Failed to delete profile", err)
		return
	}

	render.JSON(w, r, DeleteResponse{Success: true, Message: "All data deleted"})
}

// CreateEvent handles POST /api/events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AnonID == "" || req.Type == "" {
		h.sendError(w, r, http.StatusBadRequest, errorCodeInvalidRequest, errorMessageInvalidBody)
		return
	}

	eventID, err := h.service.Event.Append(r.Context(), req.AnonID, req.Type, req.Payload)
	if err != nil {
		h.internalError(w, r, "Failed to create event", err)
		return
	}

	render.JSON(w, r, EventResponse{Success: true, EventID: eventID})
}

// ListEvents handles GET /api/events/{anonID}.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	anonID := chi.URLParam(r, "anonID")

	events, err := h.service.Event.List(r.Context(), anonID)
	if err != nil {
		h.internalError(w, r, "Failed to list events", err)
		return
	}

	render.JSON(w, r, events)
}

// SendMessage handles POST /api/messages/send.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AnonID == "" || req.Template == "" {
		h.sendError(w, r, http.StatusBadRequest, errorCodeInvalidRequest, errorMessageInvalidBody)
		return
	}

	result, err := h.service.Message.Send(r.Context(), service.SendRequest{
		AnonID:       req.AnonID,
		Template:     req.Template,
		ProductInfo:  req.ProductInfo,
		ForceChannel: req.ForceChannel,
	})
	if err != nil {
		h.renderSendOutcome(w, r, nil, err)
		return
	}

	h.renderSendOutcome(w, r, result, nil)
}

// ListMessages handles GET /api/messages/{anonID}.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	anonID := chi.URLParam(r, "anonID")

	messages, err := h.service.Message.List(r.Context(), anonID)
	if err != nil {
		h.internalError(w, r, "Failed to list messages", err)
		return
	}

	render.JSON(w, r, messages)
}

// ConvertMessage handles POST /api/messages/{messageID}/convert. An
// unknown id yields success=false, not an error status.
func (h *Handler) ConvertMessage(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "messageID")

	converted, err := h.service.Message.TrackConversion(r.Context(), messageID)
	if err != nil {
		h.internalError(w, r, "Failed to track conversion", err)
		return
	}

	render.JSON(w, r, ConvertResponse{Success: converted})
}

// GetAnalytics handles GET /api/analytics.
func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.Analytics.Summary(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to compute analytics", err)
		return
	}

	render.JSON(w, r, analytics)
}

// GetAnalyticsLogs handles GET /api/analytics/logs.
func (h *Handler) GetAnalyticsLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.Analytics.RecentActivity(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to build activity log", err)
		return
	}

	render.JSON(w, r, logs)
}

// GetAdminSettings handles GET /api/admin/settings.
func (h *Handler) GetAdminSettings(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Admin.Settings())
}

// UpdateAdminSettings handles POST /api/admin/settings.
func (h *Handler) UpdateAdminSettings(w http.ResponseWriter, r *http.Request) {
	var req AdminSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeInvalidRequest, errorMessageInvalidBody)
		return
	}

	render.JSON(w, r, h.service.Admin.UpdateSettings(req))
}

// TriggerAbandonedCart handles POST /api/admin/trigger-abandoned/{anonID}.
func (h *Handler) TriggerAbandonedCart(w http.ResponseWriter, r *http.Request) {
	anonID := chi.URLParam(r, "anonID")

	result, err := h.service.Message.TriggerAbandonedCart(r.Context(), anonID)
	if err != nil {
		h.renderSendOutcome(w, r, nil, err)
		return
	}

	h.renderSendOutcome(w, r, result, nil)
}

// HealthCheck handles GET /api/health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health.GetHealth()

	if health.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	render.JSON(w, r, health)
}

// renderSendOutcome maps a send result or policy rejection onto the
// success-shaped response of the messaging endpoints.
func (h *Handler) renderSendOutcome(w http.ResponseWriter, r *http.Request, result *service.SendResult, err error) {
	if err == nil {
		render.JSON(w, r, SendMessageResponse{
			Success:   true,
			MessageID: result.MessageID,
			Channel:   result.Channel,
		})
		return
	}

	var reason string
	switch {
	case errors.Is(err, routing.ErrNotOptedIn):
		reason = rejectionNotOptedIn
	case errors.Is(err, routing.ErrNoActiveChannel):
		reason = rejectionNoActiveChannel
	case errors.Is(err, service.ErrNoCartEvents):
		reason = rejectionNoCartItems
	default:
		h.internalError(w, r, "Failed to send message", err)
		return
	}

	render.JSON(w, r, SendMessageResponse{Success: false, Error: reason})
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	requestID := middleware.GetRequestID(r.Context())
	h.logger.Error(message,
		zap.String("request_id", requestID),
		zap.Error(err))
	h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, message)
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error:     errorCode,
		Message:   message,
		Timestamp: time.Now(),
	})
}
