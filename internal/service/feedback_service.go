package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"interview-insights-be/internal/dto"
	"interview-insights-be/internal/pkg/logger"
	"interview-insights-be/internal/pkg/serverutils"
	"interview-insights-be/pkg/llm"
)

// Classification labels for product feedback.
const (
	ClassificationPositive = "positive"
	ClassificationNegative = "negative"
	ClassificationNeutral  = "neutral"
	ClassificationEscalate = "escalate"
)

// Input truncation limits, applied before the text reaches the model.
const (
	maxProductNameRunes = 50
	maxFeedbackRunes    = 300
)

type IFeedbackService interface {
	Process(ctx context.Context, req *dto.ProcessFeedbackRequest) (*dto.ProcessFeedbackResponse, error)
}

type feedbackService struct {
	llmProvider  llm.LLMProvider
	logger       logger.ILogger
	defaultModel string
}

func NewFeedbackService(llmProvider llm.LLMProvider, sysLogger logger.ILogger, defaultModel string) IFeedbackService {
	return &feedbackService{
		llmProvider:  llmProvider,
		logger:       sysLogger,
		defaultModel: defaultModel,
	}
}

// Process classifies feedback sentiment, then generates a reply matched to
// the classification. The two chains run in sequence because the second
// depends on the first.
func (s *feedbackService) Process(ctx context.Context, req *dto.ProcessFeedbackRequest) (*dto.ProcessFeedbackResponse, error) {
	start := time.Now()

	product := truncateRunes(strings.TrimSpace(req.ProductName), maxProductNameRunes)
	feedback := truncateRunes(strings.TrimSpace(req.Feedback), maxFeedbackRunes)
	if product == "" || feedback == "" {
		return nil, serverutils.NewAppError(fiber.StatusBadRequest, "product_name and feedback cannot be empty")
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}
	opts := []llm.Option{
		llm.WithModel(model),
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(512),
	}

	s.logger.Info("FeedbackService", "Processing product feedback", map[string]interface{}{
		"product": product,
		"model":   model,
	})

	// Step 1: Classify
	rawClass, err := s.llmProvider.Generate(ctx, fmt.Sprintf(classifyFeedbackPrompt, product, feedback), opts...)
	if err != nil {
		s.logger.Error("FeedbackService", "Classification failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewAppError(fiber.StatusBadGateway, err.Error())
	}
	classification := normalizeClassification(rawClass)
	if classification == "" {
		s.logger.Warn("FeedbackService", "Unexpected classification output, escalating", map[string]interface{}{"raw": rawClass})
		classification = ClassificationEscalate
	}

	// Step 2: Generate a reply appropriate to the classification
	reply, err := s.llmProvider.Generate(ctx, fmt.Sprintf(feedbackReplyPrompt, product, classification, feedback), opts...)
	if err != nil {
		s.logger.Error("FeedbackService", "Reply generation failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewAppError(fiber.StatusBadGateway, err.Error())
	}

	elapsed := roundSeconds(time.Since(start))
	return &dto.ProcessFeedbackResponse{
		ProductName:    product,
		Feedback:       feedback,
		Classification: classification,
		Response:       strings.TrimSpace(reply),
		Model:          model,
		ProcessingTime: &elapsed,
	}, nil
}

// normalizeClassification maps raw model output to one of the known labels,
// or "" when nothing matches.
func normalizeClassification(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `."'`)))
	switch cleaned {
	case ClassificationPositive, ClassificationNegative, ClassificationNeutral, ClassificationEscalate:
		return cleaned
	}
	return ""
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
