package controller

import (
	"github.com/gofiber/fiber/v2"

	"interview-insights-be/internal/dto"
	"interview-insights-be/internal/pkg/serverutils"
	"interview-insights-be/internal/service"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	Process(ctx *fiber.Ctx) error
}

type feedbackController struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackController(feedbackService service.IFeedbackService) IFeedbackController {
	return &feedbackController{
		feedbackService: feedbackService,
	}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feedback/v1")
	h.Post("/process", c.Process)
}

func (c *feedbackController) Process(ctx *fiber.Ctx) error {
	var req dto.ProcessFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.feedbackService.Process(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process feedback", res))
}
