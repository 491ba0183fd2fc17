package models

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}
