package api

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// CartResponse pairs the stored cart with its computed totals so clients
// never have to re-derive them.
type CartResponse struct {
	Cart   interface{} `json:"cart"`
	Totals interface{} `json:"totals"`
}
