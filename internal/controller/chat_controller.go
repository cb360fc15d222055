package controller

import (
	"github.com/gofiber/fiber/v2"

	"interview-insights-be/internal/dto"
	"interview-insights-be/internal/pkg/serverutils"
	"interview-insights-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Models(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("/", c.Chat)
	h.Get("/models", c.Models)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

// Models lists a few popular OpenRouter model identifiers for the UI picker.
func (c *chatController) Models(ctx *fiber.Ctx) error {
	models := []string{
		"anthropic/claude-3.5-sonnet",
		"anthropic/claude-3-haiku",
		"openai/gpt-4-turbo",
		"openai/gpt-3.5-turbo",
		"meta-llama/llama-3.1-8b-instruct",
		"google/gemini-pro",
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list models", models))
}
