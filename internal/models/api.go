// internal/models/api.go

package models

import "github.com/goccy/go-json"

// Envelope is the {success, data, message} wrapper some backend
// endpoints use around their payload. Data stays raw so callers decode
// it into the type they expect.
type Envelope struct {
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Errors  []string        `json:"errors,omitempty"`
}

// IsEnvelope reports whether the body actually carried the wrapper.
// A payload without a success field is treated as a raw body.
func (e *Envelope) IsEnvelope() bool {
	return e.Success != nil
}

// ComplaintPage mirrors the backend's Spring page descriptor.
type ComplaintPage struct {
	Content       []Complaint `json:"content"`
	TotalElements int         `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
	Size          int         `json:"size"`
	Number        int         `json:"number"`
}

type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenType    string `json:"tokenType,omitempty"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`
	User         *User  `json:"user"`
}
