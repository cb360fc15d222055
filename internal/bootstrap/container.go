package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"interview-insights-be/internal/config"
	"interview-insights-be/internal/controller"
	"interview-insights-be/internal/pkg/logger"
	"interview-insights-be/internal/processing"
	"interview-insights-be/internal/repository/memory"
	"interview-insights-be/internal/service"
	"interview-insights-be/internal/websocket"
	"interview-insights-be/pkg/llm/factory"
)

type Container struct {
	// Controllers
	InterviewController controller.IInterviewController
	FeedbackController  controller.IFeedbackController
	ChatController      controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.OpenRouterBaseURL,
		cfg.Ai.OpenRouterAPIKey,
		cfg.Ai.DefaultModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.DefaultModel)

	// 4. Processing pipeline state
	tracker := processing.NewTracker()
	simulator := processing.NewSimulator(processing.DefaultTickInterval, nil)
	jobRepo := memory.NewJobRepository()

	// 5. Services
	interviewService := service.NewInterviewService(
		llmProvider,
		tracker,
		simulator,
		jobRepo,
		pubSub,
		sysLogger,
		cfg.Ai.DefaultModel,
		cfg.Ai.MaxTokens,
	)
	feedbackService := service.NewFeedbackService(llmProvider, sysLogger, cfg.Ai.DefaultModel)
	chatService := service.NewChatService(llmProvider, cfg.Ai.DefaultModel)

	// 6. WebSocket hub + event consumer
	hub := websocket.NewHub(interviewService.ValidateTranscript, sysLogger)
	consumerService := service.NewConsumerService(pubSub, hub, sysLogger)

	return &Container{
		InterviewController: controller.NewInterviewController(interviewService),
		FeedbackController:  controller.NewFeedbackController(feedbackService),
		ChatController:      controller.NewChatController(chatService),
		ConsumerService:     consumerService,
		WebSocketHub:        hub,
		Logger:              sysLogger,
	}
}
