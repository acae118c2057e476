package handlers

import (
	"io"
	"net/http"

	"planpilot-backend/internal/services"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	maxUploadBytes  int64
}

func NewScheduleHandler(scheduleService *services.ScheduleService, maxUploadMB int) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		maxUploadBytes:  int64(maxUploadMB) * 1024 * 1024,
	}
}

func (h *ScheduleHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "Schedule file exceeds the upload limit", r))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, _, err := r.FormFile("schedule")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No schedule file provided", r))
		return
	}
	defer file.Close()

	// Uploads are small enough to buffer fully; no streaming parse.
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Could not read schedule file", r))
		return
	}

	resp, err := h.scheduleService.Analyze(r.Context(), fileBytes)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
