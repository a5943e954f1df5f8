// Package domain defines the core domain models for the embed demo.
package domain

// UserIDType selects which identity field is sent to the upstream service.
type UserIDType string

const (
	UserIDTypeExternal UserIDType = "external"
	UserIDTypeInternal UserIDType = "internal"
)

// Valid reports whether t is a known identity type.
func (t UserIDType) Valid() bool {
	return t == UserIDTypeExternal || t == UserIDTypeInternal
}

// EmbedType represents the kind of view being embedded.
type EmbedType string

const (
	EmbedTypeChat      EmbedType = "chat"
	EmbedTypeDashboard EmbedType = "dashboard"
	EmbedTypeApp       EmbedType = "app"

	// EmbedTypeLegacyHome is the old name of EmbedTypeApp found in
	// configurations saved by earlier versions.
	EmbedTypeLegacyHome EmbedType = "home"
)

// Valid reports whether t is a known embed type.
func (t EmbedType) Valid() bool {
	switch t {
	case EmbedTypeChat, EmbedTypeDashboard, EmbedTypeApp:
		return true
	}
	return false
}

// RenderStatus represents the state of the render surface.
type RenderStatus string

const (
	RenderStatusIdle    RenderStatus = "idle"
	RenderStatusLoading RenderStatus = "loading"
	RenderStatusSuccess RenderStatus = "success"
	RenderStatusError   RenderStatus = "error"
)
