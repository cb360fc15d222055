package controller

import (
	"github.com/gofiber/fiber/v2"

	"interview-insights-be/internal/dto"
	"interview-insights-be/internal/pkg/serverutils"
	"interview-insights-be/internal/service"
)

type IInterviewController interface {
	RegisterRoutes(r fiber.Router)
	Process(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type interviewController struct {
	interviewService service.IInterviewService
}

func NewInterviewController(interviewService service.IInterviewService) IInterviewController {
	return &interviewController{
		interviewService: interviewService,
	}
}

func (c *interviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interview/v1")
	h.Post("/process", c.Process)
	h.Post("/validate", c.Validate)
	h.Get("/status", c.Status)
	h.Post("/reset", c.Reset)
}

func (c *interviewController) Process(ctx *fiber.Ctx) error {
	var req dto.ProcessInterviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.interviewService.Process(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process interview", res))
}

func (c *interviewController) Validate(ctx *fiber.Ctx) error {
	var req dto.ValidateTranscriptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}

	findings := c.interviewService.ValidateTranscript(req.Transcript)

	return ctx.JSON(serverutils.SuccessResponse("Success validate transcript", dto.ValidateTranscriptResponse{
		Valid:    len(findings) == 0,
		Findings: findings,
	}))
}

func (c *interviewController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show processing status", c.interviewService.Status()))
}

func (c *interviewController) Reset(ctx *fiber.Ctx) error {
	c.interviewService.Reset()
	return ctx.JSON(serverutils.SuccessResponse[any]("Success reset processing state", nil))
}
