package domain

// EmbedConfig is the operator-editable configuration. It is the only
// state persisted between launches.
type EmbedConfig struct {
	DeploymentID         string     `json:"deploymentId"`
	UserIDType           UserIDType `json:"userIdType"`
	ExternalID           string     `json:"externalId"`
	InternalID           string     `json:"internalId"`
	EmbedType            EmbedType  `json:"embedType"`
	DashboardID          string     `json:"dashboardId"`
	UserAttributes       string     `json:"userAttributes"`
	EmbedAfterGeneration bool       `json:"embedAfterGeneration"`
}

// DefaultEmbedConfig returns the configuration used when nothing has been
// saved yet.
func DefaultEmbedConfig() EmbedConfig {
	return EmbedConfig{
		UserIDType:           UserIDTypeExternal,
		EmbedType:            EmbedTypeChat,
		EmbedAfterGeneration: true,
	}
}

// UserAttribute is a single name/value pair attached to an external user.
type UserAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Session is a signed session issued by the upstream service.
type Session struct {
	SessionID string `json:"sessionId"`
}

// RenderState is a snapshot of the render surface.
type RenderState struct {
	Status  RenderStatus `json:"status"`
	URL     string       `json:"url,omitempty"`
	Message string       `json:"message,omitempty"`
	Frame   *Frame       `json:"frame,omitempty"`
}

// Frame is a mounted iframe. LoadError is set when the frame failed to
// load and is cleared by the next successful load.
type Frame struct {
	Src       string `json:"src"`
	LoadError string `json:"loadError,omitempty"`
}
