package types

// SuccessEnvelope wraps every successful API payload, storefront and admin alike.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire shape for failures. Details carries field-level
// validation info when the error code permits exposing it.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
