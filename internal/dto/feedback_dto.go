package dto

type ProcessFeedbackRequest struct {
	ProductName string `json:"product_name" validate:"required,max=100"`
	Feedback    string `json:"feedback" validate:"required,max=2000"`
	Model       string `json:"model"`
}

type ProcessFeedbackResponse struct {
	ProductName    string   `json:"product_name"`
	Feedback       string   `json:"feedback"`
	Classification string   `json:"classification"`
	Response       string   `json:"response"`
	Model          string   `json:"model"`
	ProcessingTime *float64 `json:"processing_time,omitempty"`
}
