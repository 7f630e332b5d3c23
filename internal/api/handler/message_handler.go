package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

// MessageHandler is the admin inbox for contact messages.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List
//
// @Summary      List contact messages
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Security     BearerToken
// @Success      200  {array}   domain.ContactMessage
// @Failure      401  {object}  errorBody
// @Router       /api/admin/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	msgs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// MarkAsRead
//
// @Summary      Mark a message as read
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Security     BearerToken
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  domain.ContactMessage
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/admin/messages/{id}/read [put]
func (h *MessageHandler) MarkAsRead(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	msg, err := h.service.MarkAsRead(c.Request().Context(), id)
	if err != nil {
		return err
	}
	countWrite("message", "mark_read")
	return c.JSON(http.StatusOK, msg)
}

// Delete
//
// @Summary      Delete a message
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Security     BearerToken
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/admin/messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	countWrite("message", "delete")
	return c.JSON(http.StatusOK, messageResponse{Message: "Message deleted"})
}
