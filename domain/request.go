package domain

import "encoding/json"

// GenerateSessionRequest is the body sent to the relay and forwarded
// unchanged to the upstream service.
type GenerateSessionRequest struct {
	DeploymentID   int             `json:"deploymentId"`
	ExternalID     string          `json:"externalId,omitempty"`
	InternalID     string          `json:"internalId,omitempty"`
	UserAttributes json.RawMessage `json:"userAttributes,omitempty"`
	CreatorMode    bool            `json:"creatorMode,omitempty"`
}

// GenerateSessionResponse is the upstream success body.
type GenerateSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// ErrorResponse is the relay's own error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
