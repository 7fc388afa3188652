package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/senyabanana/tender-lifecycle/internal/models"
	"github.com/senyabanana/tender-lifecycle/internal/services"
	"github.com/senyabanana/tender-lifecycle/internal/utils"

	"github.com/rs/zerolog"
)

// TenderHandler - структура для обработки HTTP-запросов.
type TenderHandler struct {
	Service *services.TenderService
	Timeout time.Duration
}

// NewTenderHandler создаёт новый экземпляр TenderHandler.
func NewTenderHandler(service *services.TenderService, timeout time.Duration) *TenderHandler {
	return &TenderHandler{
		Service: service,
		Timeout: timeout,
	}
}

// CreateTender обрабатывает запросы для создания тендера.
func (h *TenderHandler) CreateTender(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var tenderReq models.TenderRequest
	if err := json.NewDecoder(r.Body).Decode(&tenderReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tender, err := h.Service.CreateTender(ctx, tenderReq)
	if err != nil {
		h.sendError(ctx, w, err, "failed to create tender")
		return
	}

	zerolog.Ctx(ctx).Info().Str("tender_id", tender.ID).Msg("tender created")
	utils.SendJSONResponse(w, http.StatusOK, tender)
}

// GetTenderStatus обрабатывает запросы для получения статуса тендера.
func (h *TenderHandler) GetTenderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	tenderId := r.PathValue("tenderId")
	username := r.URL.Query().Get("username")

	status, err := h.Service.GetTenderStatus(ctx, tenderId, username)
	if err != nil {
		h.sendError(ctx, w, err, "failed to fetch tender status")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, status)
}

// UpdateTenderStatus обрабатывает запросы для изменения статуса тендера.
func (h *TenderHandler) UpdateTenderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	tenderId := r.PathValue("tenderId")
	status := r.URL.Query().Get("status")
	username := r.URL.Query().Get("username")

	tender, err := h.Service.UpdateTenderStatus(ctx, tenderId, status, username)
	if err != nil {
		h.sendError(ctx, w, err, "failed to update tender status")
		return
	}

	zerolog.Ctx(ctx).Info().Str("tender_id", tender.ID).Str("status", string(tender.Status)).Msg("tender status changed")
	utils.SendJSONResponse(w, http.StatusOK, tender)
}

// EditTender обрабатывает запросы для изменения тендера.
func (h *TenderHandler) EditTender(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	tenderId := r.PathValue("tenderId")
	username := r.URL.Query().Get("username")

	var patch models.TenderPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updatedTender, err := h.Service.EditTender(ctx, tenderId, username, patch)
	if err != nil {
		h.sendError(ctx, w, err, "failed to update tender")
		return
	}

	zerolog.Ctx(ctx).Info().Str("tender_id", updatedTender.ID).Int32("version", updatedTender.Version).Msg("tender edited")
	utils.SendJSONResponse(w, http.StatusOK, updatedTender)
}

// sendError пишет ошибку в лог и отвечает клиенту кодом, соответствующим её виду.
func (h *TenderHandler) sendError(ctx context.Context, w http.ResponseWriter, err error, action string) {
	errorResponse := models.ErrorResponseFrom(err)

	event := zerolog.Ctx(ctx).Warn()
	if errorResponse.StatusCode >= http.StatusInternalServerError {
		event = zerolog.Ctx(ctx).Error()
	}
	event.Err(err).Int("status", errorResponse.StatusCode).Msg(action)
	utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
}
