package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio-labs/portfolio-api/internal/core/ports"
)

// MessageHandler serves the contact-form inbox.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List handles GET /messages, newest first.
//
// @Summary      List contact messages
// @Tags         messages
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Message
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	msgs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// Create handles POST /messages. The route is public.
//
// @Summary      Send a contact message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      createMessageRequest  true  "Message"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.service.Create(c.Request().Context(), ports.CreateMessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, successResponse{Success: "message sent"})
}

// Delete handles DELETE /messages/:id.
//
// @Summary      Delete a contact message
// @Tags         messages
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: "message deleted"})
}
