package embed

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/xiaot623/embeddemo/domain"
)

var frameTemplate = template.Must(template.New("frame").Parse(
	`<iframe src="{{.Src}}" width="100%" height="800" frameborder="0" allow="clipboard-write"></iframe>` +
		`{{if .LoadError}}` + "\n" + `<div class="embed-error">Failed to load embed: {{.LoadError}}</div>{{end}}`))

// FrameHTML renders the iframe markup for a mounted frame.
func FrameHTML(frame *domain.Frame) (string, error) {
	if frame == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := frameTemplate.Execute(&buf, frame); err != nil {
		return "", fmt.Errorf("failed to render frame: %w", err)
	}
	return buf.String(), nil
}

// CheckFrame loads src the way a browser frame would and reports a
// failure for transport errors and non-2xx responses.
func CheckFrame(ctx context.Context, client *http.Client, src string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to load embed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("embed returned status %d", resp.StatusCode)
	}
	return nil
}
