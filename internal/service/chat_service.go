package service

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"interview-insights-be/internal/dto"
	"interview-insights-be/internal/pkg/serverutils"
	"interview-insights-be/pkg/llm"
)

// IChatService is a thin passthrough to the provider for ad-hoc prompts.
type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	llmProvider  llm.LLMProvider
	defaultModel string
}

func NewChatService(llmProvider llm.LLMProvider, defaultModel string) IChatService {
	return &chatService{
		llmProvider:  llmProvider,
		defaultModel: defaultModel,
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	reply, err := s.llmProvider.Generate(ctx, req.Message, llm.WithModel(model))
	if err != nil {
		return nil, serverutils.NewAppError(fiber.StatusBadGateway, err.Error())
	}

	return &dto.ChatResponse{
		Response: reply,
		Model:    model,
	}, nil
}
