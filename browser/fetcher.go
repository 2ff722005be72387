package browser

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Fetcher renders pages and returns their HTML. It satisfies the catalog
// PageFetcher contract. A single stealth page is created lazily on the
// first fetch and reused for the whole run; reusing one tab keeps the
// session cookies that bot mitigation hands out after a cleared
// challenge.
type Fetcher struct {
	mgr  *Manager
	page *rod.Page
}

// NewFetcher creates a Fetcher on a started Manager.
func NewFetcher(mgr *Manager) *Fetcher {
	return &Fetcher{mgr: mgr}
}

// Fetch navigates to url with a rotated user agent and returns the page
// HTML after load, settle delay, and challenge handling.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	page, err := f.ensurePage()
	if err != nil {
		return "", err
	}

	ua := f.mgr.cfg.UserAgents[rand.Intn(len(f.mgr.cfg.UserAgents))]
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
		f.mgr.cfg.Logger.Warn("browser: user agent override failed", "error", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, f.mgr.cfg.NavTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(url); err != nil {
		return "", fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		f.mgr.cfg.Logger.Warn("browser: wait load timeout", "url", url, "error", err)
	}

	if err := f.settle(ctx); err != nil {
		return "", err
	}

	html, err := page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("browser: read page %s: %w", url, err)
	}

	title := pageTitle(ctx, page)
	if !IsChallenge(title, html) {
		return html, nil
	}

	// Interstitial: give its JavaScript one extended wait to clear.
	f.mgr.cfg.Logger.Info("browser: challenge page detected, waiting", "url", url)
	select {
	case <-time.After(f.mgr.cfg.ChallengeWait):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	html, err = page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("browser: read page %s: %w", url, err)
	}
	if IsChallenge(pageTitle(ctx, page), html) {
		return "", fmt.Errorf("%w: %s", ErrChallengePage, url)
	}
	return html, nil
}

// Close closes the reused page. The Manager owns the browser itself.
func (f *Fetcher) Close() error {
	if f.page == nil {
		return nil
	}
	err := f.page.Close()
	f.page = nil
	return err
}

func (f *Fetcher) ensurePage() (*rod.Page, error) {
	if f.page != nil {
		return f.page, nil
	}
	b := f.mgr.Browser()
	if b == nil {
		return nil, fmt.Errorf("browser: manager not started")
	}
	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create stealth page: %w", err)
	}
	f.page = page
	return page, nil
}

// settle sleeps a random duration between SettleMin and SettleMax so
// client-side rendering finishes and the fetch cadence stays irregular.
func (f *Fetcher) settle(ctx context.Context) error {
	min, max := f.mgr.cfg.SettleMin, f.mgr.cfg.SettleMax
	delay := min + time.Duration(rand.Int63n(int64(max-min)))
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func pageTitle(ctx context.Context, page *rod.Page) string {
	info, err := page.Context(ctx).Info()
	if err != nil {
		return ""
	}
	return info.Title
}
