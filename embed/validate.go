// Package embed implements the operator side of the demo: form validation,
// session payload construction, embed URL derivation and the render
// surface.
package embed

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xiaot623/embeddemo/domain"
)

// ValidationError is a local form error. No request is sent when one is
// returned.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks every rule that must hold before a session is requested.
// The first failing rule is returned.
func Validate(cfg domain.EmbedConfig) error {
	if err := validateRequired(cfg); err != nil {
		return err
	}

	if !cfg.EmbedType.Valid() {
		return invalid("embedType", "Unknown embed type %q", cfg.EmbedType)
	}
	if cfg.EmbedType == domain.EmbedTypeDashboard && strings.TrimSpace(cfg.DashboardID) == "" {
		return invalid("dashboardId", "Dashboard ID is required for dashboard embeds")
	}

	if cfg.UserIDType == domain.UserIDTypeExternal {
		if _, err := parseUserAttributes(cfg.UserAttributes); err != nil {
			return err
		}
	}

	return nil
}

// ValidateRefresh checks only the fields a refresh needs: the deployment
// and the active identity.
func ValidateRefresh(cfg domain.EmbedConfig) error {
	return validateRequired(cfg)
}

func validateRequired(cfg domain.EmbedConfig) error {
	if _, err := parseDeploymentID(cfg.DeploymentID); err != nil {
		return err
	}

	switch cfg.UserIDType {
	case domain.UserIDTypeExternal:
		if strings.TrimSpace(cfg.ExternalID) == "" {
			return invalid("externalId", "External ID is required")
		}
	case domain.UserIDTypeInternal:
		if strings.TrimSpace(cfg.InternalID) == "" {
			return invalid("internalId", "Internal ID (email) is required")
		}
	default:
		return invalid("userIdType", "Unknown user ID type %q", cfg.UserIDType)
	}

	return nil
}

func parseDeploymentID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid("deploymentId", "Deployment ID is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{
			Field:   "deploymentId",
			Message: fmt.Sprintf("Deployment ID must be an integer, got %q", raw),
			Err:     err,
		}
	}
	return id, nil
}

// parseUserAttributes returns nil for empty input, or the attribute text
// once it is known to be a JSON array.
func parseUserAttributes(raw string) (json.RawMessage, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, &ValidationError{
			Field:   "userAttributes",
			Message: fmt.Sprintf("Invalid JSON in user attributes: %v", err),
			Err:     err,
		}
	}
	if _, ok := value.([]interface{}); !ok {
		return nil, invalid("userAttributes", "User attributes must be a JSON array of {name, value} objects")
	}

	var attrs []domain.UserAttribute
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return nil, &ValidationError{
			Field:   "userAttributes",
			Message: fmt.Sprintf("User attributes must be a JSON array of {name, value} objects: %v", err),
			Err:     err,
		}
	}
	for i, attr := range attrs {
		if strings.TrimSpace(attr.Name) == "" {
			return nil, invalid("userAttributes", "User attribute %d is missing a name", i)
		}
	}

	return json.RawMessage(raw), nil
}

// BuildRequest validates cfg and builds the session request payload.
func BuildRequest(cfg domain.EmbedConfig) (*domain.GenerateSessionRequest, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return buildRequest(cfg, true)
}

// BuildRefreshRequest builds a payload from the current values checking
// only the refresh fields. User attributes that do not parse are left out
// of the payload instead of failing the refresh.
func BuildRefreshRequest(cfg domain.EmbedConfig) (*domain.GenerateSessionRequest, error) {
	if err := ValidateRefresh(cfg); err != nil {
		return nil, err
	}
	return buildRequest(cfg, false)
}

func buildRequest(cfg domain.EmbedConfig, strict bool) (*domain.GenerateSessionRequest, error) {
	deploymentID, err := parseDeploymentID(cfg.DeploymentID)
	if err != nil {
		return nil, err
	}

	req := &domain.GenerateSessionRequest{
		DeploymentID: deploymentID,
		CreatorMode:  cfg.EmbedType == domain.EmbedTypeApp,
	}

	switch cfg.UserIDType {
	case domain.UserIDTypeInternal:
		req.InternalID = strings.TrimSpace(cfg.InternalID)
	default:
		req.ExternalID = strings.TrimSpace(cfg.ExternalID)
		attrs, err := parseUserAttributes(cfg.UserAttributes)
		if err != nil {
			if strict {
				return nil, err
			}
			log.Printf("WARN: leaving user attributes out of refresh: %v", err)
		}
		req.UserAttributes = attrs
	}

	return req, nil
}
