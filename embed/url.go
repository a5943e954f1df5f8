package embed

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/xiaot623/embeddemo/domain"
)

// ErrNoBaseURL is returned when no embed base URL is configured.
var ErrNoBaseURL = errors.New("embed base URL is not configured")

// BuildURL derives the embed URL for a session:
//
//	chat:      {base}/embed/d/{deploymentId}/chat?session={sessionId}
//	dashboard: {base}/embed/d/{deploymentId}/dashboard/{dashboardId}?session={sessionId}
//	app:       {base}/embed/d/{deploymentId}/app?session={sessionId}
func BuildURL(baseURL string, cfg domain.EmbedConfig, sessionID string) (string, error) {
	base := strings.TrimSuffix(baseURL, "/")
	if base == "" {
		return "", ErrNoBaseURL
	}

	prefix := base + "/embed/d/" + url.PathEscape(strings.TrimSpace(cfg.DeploymentID))
	query := "?session=" + url.QueryEscape(sessionID)

	switch cfg.EmbedType {
	case domain.EmbedTypeChat:
		return prefix + "/chat" + query, nil
	case domain.EmbedTypeDashboard:
		return prefix + "/dashboard/" + url.PathEscape(strings.TrimSpace(cfg.DashboardID)) + query, nil
	case domain.EmbedTypeApp:
		return prefix + "/app" + query, nil
	default:
		return "", fmt.Errorf("unknown embed type %q", cfg.EmbedType)
	}
}
