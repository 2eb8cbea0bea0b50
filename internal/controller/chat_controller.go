package controller

import (
	"errors"

	"ai-quickdoc-be/internal/constant"
	"ai-quickdoc-be/internal/dto"
	"ai-quickdoc-be/internal/pkg/logger"
	"ai-quickdoc-be/internal/pkg/serverutils"
	"ai-quickdoc-be/internal/service"
	"ai-quickdoc-be/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	log         logger.ILogger
}

func NewChatController(chatService service.IChatService, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		log:         log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.SendChat)
}

// SendChat speaks the raw client contract instead of the envelope the other
// controllers use: the response body is exactly {message, sessionId} on 200
// and {message, sessionId: null} on failure, so it maps its errors here
// rather than deferring to the shared error middleware.
func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return badRequest(ctx)
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRequest) {
			return badRequest(ctx)
		}

		// The taxonomy (embedding, index, generation) stays in the log;
		// the client only learns that the request could not be served.
		c.log.Error("ChatController", "chat request failed", map[string]interface{}{
			"sessionId": req.SessionId,
			"error":     err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ChatErrorResponse{
			Message:   constant.ChatInternalErrorMessage,
			SessionId: nil,
		})
	}

	return ctx.JSON(res)
}

func badRequest(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(dto.ChatErrorResponse{
		Message:   "Bad Request",
		SessionId: nil,
	})
}
