package embed

import (
	"context"
	"log"
	"strings"

	"github.com/xiaot623/embeddemo/domain"
)

// SessionRequester requests signed sessions, normally through the relay.
type SessionRequester interface {
	GenerateSession(ctx context.Context, req *domain.GenerateSessionRequest) (*domain.Session, error)
}

// Generator runs the submit and refresh flows against a renderer.
type Generator struct {
	requester SessionRequester
	baseURL   string
	renderer  *Renderer
}

// NewGenerator creates a generator. baseURL is the public base of the
// upstream service used for embed URLs.
func NewGenerator(requester SessionRequester, baseURL string, renderer *Renderer) *Generator {
	if renderer == nil {
		renderer = NewRenderer()
	}
	return &Generator{
		requester: requester,
		baseURL:   baseURL,
		renderer:  renderer,
	}
}

// Renderer returns the render surface driven by g.
func (g *Generator) Renderer() *Renderer {
	return g.renderer
}

// Submit validates the whole form and generates a session.
func (g *Generator) Submit(ctx context.Context, cfg domain.EmbedConfig) (domain.RenderState, error) {
	if err := g.checkBaseURL(); err != nil {
		return g.renderer.State(), err
	}
	req, err := BuildRequest(cfg)
	if err != nil {
		g.renderer.Fail(err.Error())
		return g.renderer.State(), err
	}
	return g.generate(ctx, cfg, req)
}

// Refresh generates a new session from the current values, checking only
// the deployment and the active identity field.
func (g *Generator) Refresh(ctx context.Context, cfg domain.EmbedConfig) (domain.RenderState, error) {
	if err := g.checkBaseURL(); err != nil {
		return g.renderer.State(), err
	}
	req, err := BuildRefreshRequest(cfg)
	if err != nil {
		g.renderer.Fail(err.Error())
		return g.renderer.State(), err
	}
	return g.generate(ctx, cfg, req)
}

// checkBaseURL fails before any session is requested when no embed URL
// could be built from the result.
func (g *Generator) checkBaseURL() error {
	if strings.TrimSuffix(g.baseURL, "/") == "" {
		g.renderer.Fail(ErrNoBaseURL.Error())
		return ErrNoBaseURL
	}
	return nil
}

func (g *Generator) generate(ctx context.Context, cfg domain.EmbedConfig, req *domain.GenerateSessionRequest) (domain.RenderState, error) {
	g.renderer.Begin()

	session, err := g.requester.GenerateSession(ctx, req)
	if err != nil {
		log.Printf("ERROR: session generation failed: %v", err)
		g.renderer.Fail(err.Error())
		return g.renderer.State(), err
	}

	url, err := BuildURL(g.baseURL, cfg, session.SessionID)
	if err != nil {
		g.renderer.Fail(err.Error())
		return g.renderer.State(), err
	}

	g.renderer.Succeed(url, cfg.EmbedAfterGeneration)
	return g.renderer.State(), nil
}
