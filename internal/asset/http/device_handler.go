// Package http provides HTTP handlers for device relocation, condition changes and their history.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/assettrack/internal/asset/http/dto"
	assetUseCase "github.com/allisson/assettrack/internal/asset/usecase"
	"github.com/allisson/assettrack/internal/httputil"
	customValidation "github.com/allisson/assettrack/internal/validation"
)

// DeviceHandler handles HTTP requests for device state transitions.
type DeviceHandler struct {
	deviceUseCase assetUseCase.DeviceUseCase
	logger        *slog.Logger
}

// NewDeviceHandler creates a new device handler with required dependencies.
func NewDeviceHandler(deviceUseCase assetUseCase.DeviceUseCase, logger *slog.Logger) *DeviceHandler {
	return &DeviceHandler{
		deviceUseCase: deviceUseCase,
		logger:        logger,
	}
}

func parseDeviceID(raw string) (uuid.UUID, error) {
	deviceID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid device id: %w", err)
	}
	return deviceID, nil
}

// parseDeviceFilter reads the optional ?device= filter of history listings.
func parseDeviceFilter(c *gin.Context) (*uuid.UUID, error) {
	raw := c.Query("device")
	if raw == "" {
		return nil, nil
	}
	deviceID, err := parseDeviceID(raw)
	if err != nil {
		return nil, err
	}
	return &deviceID, nil
}

// MoveHandler relocates a device and records the move.
// POST /api/devices/:id/move - Requires write access to /api/devices/.
func (h *DeviceHandler) MoveHandler(c *gin.Context) {
	deviceID, err := parseDeviceID(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.MoveDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	location, err := h.deviceUseCase.Move(c.Request.Context(), deviceID, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLocationToResponse(location))
}

// ChangeConditionHandler sets a new condition on a device and records the change.
// POST /api/devices/:id/change-condition - Requires write access to /api/devices/.
func (h *DeviceHandler) ChangeConditionHandler(c *gin.Context) {
	deviceID, err := parseDeviceID(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.ChangeConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	history, err := h.deviceUseCase.ChangeCondition(c.Request.Context(), deviceID, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapConditionHistoryToResponse(history))
}

// GetLocationHandler returns the current location of a device.
// GET /api/devices/:id/location - Requires read access to /api/devices/.
func (h *DeviceHandler) GetLocationHandler(c *gin.Context) {
	deviceID, err := parseDeviceID(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	location, err := h.deviceUseCase.GetLocation(c.Request.Context(), deviceID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLocationToResponse(location))
}

// ListLocationHistoryHandler lists recorded moves, newest first.
// GET /api/device-location-history/?device=&offset=&limit=
func (h *DeviceHandler) ListLocationHistoryHandler(c *gin.Context) {
	deviceID, err := parseDeviceFilter(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	page, err := httputil.ParsePage(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	histories, err := h.deviceUseCase.ListLocationHistory(c.Request.Context(), deviceID, page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLocationHistoriesToListResponse(histories))
}

// ListConditionHistoryHandler lists recorded condition changes, newest first.
// GET /api/device-condition-history/?device=&offset=&limit=
func (h *DeviceHandler) ListConditionHistoryHandler(c *gin.Context) {
	deviceID, err := parseDeviceFilter(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	page, err := httputil.ParsePage(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	histories, err := h.deviceUseCase.ListConditionHistory(c.Request.Context(), deviceID, page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapConditionHistoriesToListResponse(histories))
}
