package shared

const NoteDeletedMessage = "Note deleted successfully"

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
