package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

// CaseStudyHandler mirrors PortfolioHandler for case studies.
type CaseStudyHandler struct {
	service ports.CaseStudyService
	uploads ports.UploadService
}

func NewCaseStudyHandler(service ports.CaseStudyService, uploads ports.UploadService) *CaseStudyHandler {
	return &CaseStudyHandler{service: service, uploads: uploads}
}

// List returns all case studies, newest first.
//
// @Summary      List case studies
// @Tags         case-studies
// @Produce      json
// @Success      200  {array}   domain.CaseStudy
// @Router       /api/case-studies [get]
func (h *CaseStudyHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Featured returns featured case studies, newest first.
//
// @Summary      List featured case studies
// @Tags         case-studies
// @Produce      json
// @Success      200  {array}   domain.CaseStudy
// @Router       /api/case-studies/featured [get]
func (h *CaseStudyHandler) Featured(c echo.Context) error {
	items, err := h.service.Featured(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one case study.
//
// @Summary      Get case study
// @Tags         case-studies
// @Produce      json
// @Param        id   path      int  true  "Case study ID"
// @Success      200  {object}  domain.CaseStudy
// @Failure      400  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/case-studies/{id} [get]
func (h *CaseStudyHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create stores a new case study from a multipart form.
//
// @Summary      Create case study
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Security     SessionCookie
// @Security     BearerToken
// @Param        title         formData  string  true   "Title"
// @Param        excerpt       formData  string  true   "Excerpt"
// @Param        content       formData  string  true   "HTML content"
// @Param        tags          formData  string  false  "JSON array of tags"
// @Param        image         formData  file    false  "Cover image"
// @Success      200  {object}  domain.CaseStudy
// @Failure      400  {object}  errorBody
// @Failure      401  {object}  errorBody
// @Failure      413  {object}  errorBody
// @Router       /api/admin/case-studies [post]
func (h *CaseStudyHandler) Create(c echo.Context) (err error) {
	f, err := newForm(c)
	if err != nil {
		return err
	}
	in := ports.CaseStudyInput{
		Title:           f.str("title"),
		Excerpt:         f.str("excerpt"),
		Content:         f.str("content"),
		ImageURL:        f.nonEmpty("imageUrl"),
		Tags:            orEmpty(f.list("tags")),
		ClientName:      f.nonEmpty("clientName"),
		ProjectDuration: f.nonEmpty("projectDuration"),
		Outcome:         f.nonEmpty("outcome"),
		Featured:        orFalse(f.boolean("featured")),
	}
	if err := f.err(); err != nil {
		return err
	}

	stored, err := storeFormFile(c, h.uploads, "image", domain.UploadCaseStudy)
	if err != nil {
		return err
	}
	defer func() { discardOnError(c, h.uploads, stored, err) }()
	if stored != nil {
		in.ImageURL = &stored.URL
	}

	item, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	countWrite("case_study", "create")
	return c.JSON(http.StatusOK, item)
}

// Update applies the fields present in the form to an existing item.
//
// @Summary      Update case study
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Security     SessionCookie
// @Security     BearerToken
// @Param        id            path      int     true   "Case study ID"
// @Param        tags          formData  string  false  "JSON array of tags"
// @Param        image         formData  file    false  "Cover image"
// @Success      200  {object}  domain.CaseStudy
// @Failure      400  {object}  errorBody
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/admin/case-studies/{id} [put]
func (h *CaseStudyHandler) Update(c echo.Context) (err error) {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	f, err := newForm(c)
	if err != nil {
		return err
	}
	patch := ports.CaseStudyPatch{
		Title:           f.optional("title"),
		Excerpt:         f.optional("excerpt"),
		Content:         f.optional("content"),
		ImageURL:        f.optional("imageUrl"),
		Tags:            f.list("tags"),
		ClientName:      f.optional("clientName"),
		ProjectDuration: f.optional("projectDuration"),
		Outcome:         f.optional("outcome"),
		Featured:        f.boolean("featured"),
	}
	if err := f.err(); err != nil {
		return err
	}

	stored, err := storeFormFile(c, h.uploads, "image", domain.UploadCaseStudy)
	if err != nil {
		return err
	}
	defer func() { discardOnError(c, h.uploads, stored, err) }()
	if stored != nil {
		patch.ImageURL = &stored.URL
	}

	item, err := h.service.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	countWrite("case_study", "update")
	return c.JSON(http.StatusOK, item)
}

// Delete removes a case study.
//
// @Summary      Delete case study
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Security     BearerToken
// @Param        id   path      int  true  "Case study ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/admin/case-studies/{id} [delete]
func (h *CaseStudyHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	countWrite("case_study", "delete")
	return c.JSON(http.StatusOK, messageResponse{Message: "Case study deleted"})
}
