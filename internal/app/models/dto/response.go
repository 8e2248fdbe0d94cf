package dto

// MessageResponse carries an informational outcome. Business-rule
// rejections (capacity reached, already enrolled, nothing to unenroll)
// use this shape with a 200 status.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewMessageResponse creates a MessageResponse.
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}
