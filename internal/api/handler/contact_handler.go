package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spandanmajumder/portfolio/internal/api/metrics"
	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

type ContactHandler struct {
	messages ports.MessageService
	uploads  ports.UploadService
	validate *echoValidator
}

func NewContactHandler(messages ports.MessageService, uploads ports.UploadService) *ContactHandler {
	return &ContactHandler{messages: messages, uploads: uploads, validate: NewValidator()}
}

// contactRequest is checked before the attachment is stored.
type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

type contactResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// Submit accepts a contact form with an optional attachment.
//
// @Summary      Send a contact message
// @Tags         contact
// @Accept       mpfd
// @Produce      json
// @Param        name        formData  string  true   "Sender name"
// @Param        email       formData  string  true   "Sender email"
// @Param        message     formData  string  true   "Message body"
// @Param        attachment  formData  file    false  "Attachment"
// @Success      200  {object}  contactResponse
// @Failure      400  {object}  errorBody
// @Failure      413  {object}  errorBody
// @Failure      429  {object}  errorBody
// @Router       /api/contact [post]
func (h *ContactHandler) Submit(c echo.Context) (err error) {
	f, err := newForm(c)
	if err != nil {
		return err
	}
	req := contactRequest{
		Name:    f.str("name"),
		Email:   f.str("email"),
		Message: f.str("message"),
	}
	if err := h.validate.Validate(req); err != nil {
		return err
	}
	in := ports.ContactInput{Name: req.Name, Email: req.Email, Message: req.Message}

	stored, err := storeFormFile(c, h.uploads, "attachment", domain.UploadAttachment)
	if err != nil {
		return err
	}
	defer func() { discardOnError(c, h.uploads, stored, err) }()

	attachment := "no"
	if stored != nil {
		in.AttachmentURL = &stored.URL
		in.AttachmentName = &stored.OriginalName
		attachment = "yes"
	}

	msg, err := h.messages.Submit(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.ContactMessagesTotal.WithLabelValues(attachment).Inc()
	return c.JSON(http.StatusOK, contactResponse{Message: "Message sent successfully", ID: msg.ID})
}
