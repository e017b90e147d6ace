package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio-labs/portfolio-api/internal/core/ports"
)

type CarouselHandler struct {
	service ports.CarouselService
}

func NewCarouselHandler(service ports.CarouselService) *CarouselHandler {
	return &CarouselHandler{service: service}
}

// List handles GET /carousel.
//
// @Summary      List carousel slides
// @Tags         carousel
// @Produce      json
// @Success      200  {array}   domain.CarouselImage
// @Failure      500  {object}  errorResponse
// @Router       /carousel [get]
func (h *CarouselHandler) List(c echo.Context) error {
	imgs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, imgs)
}

// Create handles POST /carousel.
//
// @Summary      Add a carousel slide
// @Tags         carousel
// @Accept       json
// @Produce      json
// @Param        body  body      createCarouselRequest  true  "Slide"
// @Success      201   {object}  domain.CarouselImage
// @Failure      400   {object}  errorResponse
// @Router       /carousel [post]
func (h *CarouselHandler) Create(c echo.Context) error {
	var req createCarouselRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	img, err := h.service.Create(c.Request().Context(), ports.CreateCarouselImageInput{
		ImageURL:    req.ImageURL,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, img)
}

// Delete handles DELETE /carousel/:id.
//
// @Summary      Remove a carousel slide
// @Tags         carousel
// @Produce      json
// @Param        id   path      string  true  "Slide id"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /carousel/{id} [delete]
func (h *CarouselHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: "image deleted"})
}

// CreateUpload handles POST /carousel/uploads and returns a presigned PUT URL
// for a new image object.
//
// @Summary      Request an image upload URL
// @Tags         carousel
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      uploadRequest  true  "Content type of the image"
// @Success      201   {object}  domain.Upload
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /carousel/uploads [post]
func (h *CarouselHandler) CreateUpload(c echo.Context) error {
	var req uploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	up, err := h.service.PresignUpload(c.Request().Context(), req.ContentType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, up)
}
