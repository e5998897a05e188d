package out

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"zetatrack/internal/modules/probe/domain"
	apperrors "zetatrack/internal/platform/errors"
)

const mutationBinding = "zetatrackMutated"

// mutationScript reports DOM mutations through the CDP runtime binding. It is
// installed for every new document so reloads keep notifying.
const mutationScript = `(() => {
  const notify = () => { try { window.` + mutationBinding + `(""); } catch (e) {} };
  const start = () => {
    new MutationObserver(notify).observe(document.documentElement, {childList: true, subtree: true, characterData: true});
    notify();
  };
  if (document.documentElement) { start(); } else { document.addEventListener("DOMContentLoaded", start); }
})();`

// BrowserSurface drives a Chrome instance through the DevTools protocol and
// reads the live DOM of the game page.
type BrowserSurface struct {
	url      string
	headless bool

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	changes chan struct{}
}

func NewBrowserSurface(url string, headless bool) *BrowserSurface {
	return &BrowserSurface{url: url, headless: headless, changes: make(chan struct{}, 1)}
}

// Start launches the browser and navigates to the game. The browser lives
// until parent is cancelled or Close is called.
func (s *BrowserSurface) Start(parent context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx != nil {
		return nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Flag("headless", s.headless))
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	chromedp.ListenTarget(tabCtx, func(ev any) {
		called, ok := ev.(*runtime.EventBindingCalled)
		if !ok || called.Name != mutationBinding {
			return
		}
		select {
		case s.changes <- struct{}{}:
		default:
		}
	})

	err := chromedp.Run(tabCtx,
		runtime.AddBinding(mutationBinding),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(mutationScript).Do(ctx)
			return err
		}),
		chromedp.Navigate(s.url),
	)
	if err != nil {
		tabCancel()
		allocCancel()
		return fmt.Errorf("start browser: %w", err)
	}
	s.ctx = tabCtx
	s.cancel = func() {
		tabCancel()
		allocCancel()
	}
	return nil
}

func (s *BrowserSurface) Snapshot(ctx context.Context) (domain.Document, error) {
	s.mu.Lock()
	tabCtx := s.ctx
	s.mu.Unlock()
	if tabCtx == nil {
		return domain.Document{}, fmt.Errorf("%w: browser not started", apperrors.ErrProbeMiss)
	}

	runCtx, cancel := context.WithCancel(tabCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var markup string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &markup, chromedp.ByQuery)); err != nil {
		return domain.Document{}, fmt.Errorf("read dom: %w", err)
	}
	return ParseHTML(strings.NewReader(markup))
}

func (s *BrowserSurface) Changes() <-chan struct{} {
	return s.changes
}

func (s *BrowserSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.ctx = nil
	}
	return nil
}
