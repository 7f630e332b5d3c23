package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

// PortfolioHandler serves the public portfolio reads and the admin CRUD.
type PortfolioHandler struct {
	service ports.PortfolioService
	uploads ports.UploadService
}

func NewPortfolioHandler(service ports.PortfolioService, uploads ports.UploadService) *PortfolioHandler {
	return &PortfolioHandler{service: service, uploads: uploads}
}

// List returns all portfolio items, newest first.
//
// @Summary      List portfolio items
// @Tags         portfolio
// @Produce      json
// @Success      200  {array}   domain.PortfolioItem
// @Router       /api/portfolio [get]
func (h *PortfolioHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Featured returns featured portfolio items, newest first.
//
// @Summary      List featured portfolio items
// @Tags         portfolio
// @Produce      json
// @Success      200  {array}   domain.PortfolioItem
// @Router       /api/portfolio/featured [get]
func (h *PortfolioHandler) Featured(c echo.Context) error {
	items, err := h.service.Featured(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one portfolio item.
//
// @Summary      Get portfolio item
// @Tags         portfolio
// @Produce      json
// @Param        id   path      int  true  "Portfolio item ID"
// @Success      200  {object}  domain.PortfolioItem
// @Failure      400  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/portfolio/{id} [get]
func (h *PortfolioHandler) Get(c echo.Context) error {
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

// Create stores a new portfolio item from a multipart form.
//
// @Summary      Create portfolio item
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Security     SessionCookie
// @Security     BearerToken
// @Param        title         formData  string  true   "Title"
// @Param        description   formData  string  true   "Description"
// @Param        technologies  formData  string  false  "JSON array of technologies"
// @Param        image         formData  file    false  "Cover image"
// @Success      200  {object}  domain.PortfolioItem
// @Failure      400  {object}  errorBody
// @Failure      401  {object}  errorBody
// @Failure      413  {object}  errorBody
// @Router       /api/admin/portfolio [post]
func (h *PortfolioHandler) Create(c echo.Context) (err error) {
	f, err := newForm(c)
	if err != nil {
		return err
	}
	in := ports.PortfolioInput{
		Title:            f.str("title"),
		Description:      f.str("description"),
		ShortDescription: f.nonEmpty("shortDescription"),
		ImageURL:         f.nonEmpty("imageUrl"),
		Technologies:     orEmpty(f.list("technologies")),
		ProjectURL:       f.nonEmpty("projectUrl"),
		GithubURL:        f.nonEmpty("githubUrl"),
		Content:          f.nonEmpty("content"),
		Featured:         orFalse(f.boolean("featured")),
	}
	if err := f.err(); err != nil {
		return err
	}

	stored, err := storeFormFile(c, h.uploads, "image", domain.UploadPortfolio)
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
	countWrite("portfolio", "create")
	return c.JSON(http.StatusOK, item)
}

// Update applies the fields present in the form to an existing item.
//
// @Summary      Update portfolio item
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Security     SessionCookie
// @Security     BearerToken
// @Param        id            path      int     true   "Portfolio item ID"
// @Param        technologies  formData  string  false  "JSON array of technologies"
// @Param        image         formData  file    false  "Cover image"
// @Success      200  {object}  domain.PortfolioItem
// @Failure      400  {object}  errorBody
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/admin/portfolio/{id} [put]
func (h *PortfolioHandler) Update(c echo.Context) (err error) {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	f, err := newForm(c)
	if err != nil {
		return err
	}
	patch := ports.PortfolioPatch{
		Title:            f.optional("title"),
		Description:      f.optional("description"),
		ShortDescription: f.optional("shortDescription"),
		ImageURL:         f.optional("imageUrl"),
		Technologies:     f.list("technologies"),
		ProjectURL:       f.optional("projectUrl"),
		GithubURL:        f.optional("githubUrl"),
		Content:          f.optional("content"),
		Featured:         f.boolean("featured"),
	}
	if err := f.err(); err != nil {
		return err
	}

	stored, err := storeFormFile(c, h.uploads, "image", domain.UploadPortfolio)
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
	countWrite("portfolio", "update")
	return c.JSON(http.StatusOK, item)
}

// Delete removes a portfolio item.
//
// @Summary      Delete portfolio item
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Security     BearerToken
// @Param        id   path      int  true  "Portfolio item ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/admin/portfolio/{id} [delete]
func (h *PortfolioHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	countWrite("portfolio", "delete")
	return c.JSON(http.StatusOK, messageResponse{Message: "Portfolio item deleted"})
}
