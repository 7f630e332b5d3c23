package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

type SettingHandler struct {
	service ports.SettingService
}

func NewSettingHandler(service ports.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

// settingRequest keeps value raw so that an explicit null can be told
// apart from a missing field.
type settingRequest struct {
	Key   string          `json:"key" validate:"required,max=100"`
	Value json.RawMessage `json:"value" swaggertype:"string"`
}

// List returns all settings ordered by key.
//
// @Summary      List settings
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Security     BearerToken
// @Success      200  {array}   domain.AdminSetting
// @Failure      401  {object}  errorBody
// @Router       /api/admin/settings [get]
func (h *SettingHandler) List(c echo.Context) error {
	settings, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// Upsert creates or replaces one setting.
//
// @Summary      Upsert a setting
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Security     BearerToken
// @Param        body  body      settingRequest  true  "Setting"
// @Success      200   {object}  domain.AdminSetting
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Router       /api/admin/settings [put]
func (h *SettingHandler) Upsert(c echo.Context) error {
	var req settingRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError("body", "invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	value, err := settingValue(req.Value)
	if err != nil {
		return err
	}

	setting, err := h.service.Upsert(c.Request().Context(), req.Key, value)
	if err != nil {
		return err
	}
	countWrite("setting", "upsert")
	return c.JSON(http.StatusOK, setting)
}

// settingValue accepts a string or an explicit null.
func settingValue(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 {
		return nil, domain.NewValidationError("value", "value is required")
	}
	if string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, domain.NewValidationError("value", "value must be a string or null")
	}
	return &s, nil
}
