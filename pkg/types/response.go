package types

// SuccessEnvelope is the body shape for every 2xx response.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope is the body shape for every non-2xx response. Details is
// populated only for codes whose metadata allows leaking them.
type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
	Details any      `json:"details,omitempty"`
}
