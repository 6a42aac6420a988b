package httpdto

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewMessageResponse(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

func NewErrorResponse(err string) ErrorResponse {
	return ErrorResponse{Error: err}
}

type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
