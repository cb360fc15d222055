package dto

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	Model   string `json:"model"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}
