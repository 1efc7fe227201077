package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jmylchreest/condense/internal/logger"
)

// DynamicConfig holds configuration for the dynamic fetcher.
type DynamicConfig struct {
	UserAgent string
	Timeout   time.Duration
	// ShowBrowser runs Chrome with a visible window.
	ShowBrowser bool
	// ExecPath overrides Chrome discovery.
	ExecPath string
}

// DynamicFetcher renders pages in headless Chrome so condense sees the DOM
// after scripts ran. One browser process serves every Fetch until Close.
type DynamicFetcher struct {
	config      DynamicConfig
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
}

// NewDynamic prepares a browser allocator. Chrome itself starts lazily on
// the first Fetch.
func NewDynamic(cfg DynamicConfig) *DynamicFetcher {
	cfg.UserAgent = coalesce(cfg.UserAgent, defaultUserAgent)
	cfg.Timeout = timeoutOr(cfg.Timeout, defaultTimeout)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !cfg.ShowBrowser),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	logger.Debug("dynamic fetcher allocator created", "user_agent", cfg.UserAgent, "timeout", cfg.Timeout)

	return &DynamicFetcher{
		config:      cfg,
		allocCtx:    allocCtx,
		cancelAlloc: cancel,
	}
}

// Fetch navigates to targetURL, waits for the page and returns the rendered
// outer HTML.
func (f *DynamicFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	if err := checkScheme(targetURL); err != nil {
		return Content{URL: targetURL}, err
	}

	result := Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx)
	defer cancelBrowser()

	// Cancelling the caller's context aborts the browser actions too.
	stop := context.AfterFunc(ctx, cancelBrowser)
	defer stop()

	timeout := timeoutOr(opts.Timeout, f.config.Timeout)
	runCtx, cancelRun := context.WithTimeout(browserCtx, timeout)
	defer cancelRun()

	waitSelector := coalesce(opts.WaitForSelector, "body")
	var html, location string
	actions := []chromedp.Action{
		chromedp.Navigate(targetURL),
		chromedp.WaitVisible(waitSelector),
	}
	if opts.WaitDuration > 0 {
		actions = append(actions, chromedp.Sleep(opts.WaitDuration))
	}
	actions = append(actions,
		chromedp.OuterHTML("html", &html),
		chromedp.Title(&result.Title),
		chromedp.Location(&location),
	)

	logger.DebugContext(ctx, "dynamic fetch starting", "url", targetURL, "wait_for", waitSelector, "timeout", timeout)
	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("dynamic fetch %s: %w", targetURL, ctx.Err())
		}
		return result, fmt.Errorf("dynamic fetch %s: %w", targetURL, err)
	}

	if html == "" {
		return result, fmt.Errorf("dynamic fetch %s: %w", targetURL, ErrEmptyInput)
	}
	result.HTML = html
	result.URL = coalesce(location, targetURL)
	result.ContentType = "text/html"
	// chromedp does not expose the navigation status without a network listener.
	result.StatusCode = 200

	logger.DebugContext(ctx, "dynamic fetch complete", "url", result.URL, "html_size", len(html), "title", result.Title)
	return result, nil
}

// Close shuts the browser down.
func (f *DynamicFetcher) Close() error {
	if f.cancelAlloc != nil {
		f.cancelAlloc()
	}
	return nil
}

// Type returns the fetcher type.
func (f *DynamicFetcher) Type() string {
	return "dynamic"
}
