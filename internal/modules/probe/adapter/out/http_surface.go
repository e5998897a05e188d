package out

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"zetatrack/internal/modules/probe/domain"
	probeout "zetatrack/internal/modules/probe/port/out"
	apperrors "zetatrack/internal/platform/errors"
)

const (
	maxSnapshotBytes = 2 << 20
	userAgent        = "zetatrack/1.0"
)

// HTTPSurface polls a server-rendered game page.
type HTTPSurface struct {
	client *http.Client
	url    string
}

func NewHTTPSurface(url string, timeout time.Duration) probeout.Surface {
	return &HTTPSurface{client: &http.Client{Timeout: timeout}, url: url}
}

func (s *HTTPSurface) Snapshot(ctx context.Context) (domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return domain.Document{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Document{}, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Document{}, fmt.Errorf("fetch %s: status %d", s.url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes+1))
	if err != nil {
		return domain.Document{}, fmt.Errorf("read %s: %w", s.url, err)
	}
	if len(body) > maxSnapshotBytes {
		return domain.Document{}, fmt.Errorf("%w: page at %s exceeds %d bytes", apperrors.ErrInvalidInput, s.url, maxSnapshotBytes)
	}
	return ParseHTML(bytes.NewReader(body))
}

func (s *HTTPSurface) Changes() <-chan struct{} {
	return nil
}
