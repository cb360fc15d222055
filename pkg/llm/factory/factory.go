package factory

import (
	"fmt"

	"interview-insights-be/pkg/llm"
	"interview-insights-be/pkg/llm/openrouter"
)

func NewLLMProvider(providerType, baseURL, apiKey, modelName string) (llm.LLMProvider, error) {
	switch providerType {
	case "openrouter":
		if apiKey == "" {
			return nil, fmt.Errorf("openrouter requires an API key")
		}
		return openrouter.NewOpenRouterProvider(baseURL, apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
