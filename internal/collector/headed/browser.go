// Package headed drives a real Chromium instance through Rod. One browser
// session serves one crawl invocation; all fetches are sequential.
package headed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"jobharvest/internal/config"
	"jobharvest/internal/logging"
	"jobharvest/internal/logging/types"
)

// BrowserSession is a scoped browser resource: acquired once per crawl and
// released on every exit path via Close.
type BrowserSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	logger   types.Logger
}

// NewBrowserSession launches a browser and opens one page. A failure here is
// fatal for the crawl: no partial session is returned.
func NewBrowserSession(cfg *config.Config) (*BrowserSession, error) {
	logger := logging.GetGlobalLogger()

	l := launcher.New().
		Headless(cfg.Scraper.HeadlessMode).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("lang", "en-US")

	if chromePath := getSystemChromePath(); chromePath != "" {
		l = l.Bin(chromePath)
		logger.Info("Using system Chrome browser", map[string]interface{}{
			"chrome_path": chromePath,
		})
	} else {
		logger.Warn("System Chrome not found, Rod will download browser", map[string]interface{}{})
	}

	if cfg.Scraper.UserAgent != "" {
		l = l.Set("user-agent", cfg.Scraper.UserAgent)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	session := &BrowserSession{
		launcher: l,
		browser:  browser,
		logger:   logger,
	}

	page, err := session.createPage(cfg)
	if err != nil {
		browser.MustClose()
		l.Cleanup()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	session.page = page

	logger.Info("Browser session created", map[string]interface{}{
		"headless": cfg.Scraper.HeadlessMode,
	})
	return session, nil
}

// createPage creates the session's single page, with stealth mode when
// configured.
func (bs *BrowserSession) createPage(cfg *config.Config) (*rod.Page, error) {
	var page *rod.Page
	var err error

	if cfg.Scraper.StealthMode {
		page, err = stealth.Page(bs.browser)
	} else {
		page, err = bs.browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, err
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1400,
		Height:            900,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		bs.logger.Warn("Failed to set viewport", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if cfg.Scraper.UserAgent != "" {
		err = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: cfg.Scraper.UserAgent,
		})
		if err != nil {
			bs.logger.Warn("Failed to set user agent", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return page, nil
}

// Navigate drives the page to the given URL and waits for the load event,
// bounded by timeout.
func (bs *BrowserSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := rod.Try(func() {
		bs.page.Context(navCtx).MustNavigate(url).MustWaitLoad()
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	bs.logger.Debug("Navigated to URL", map[string]interface{}{"url": url})
	return nil
}

// WaitForSelector waits for an element to appear on the page.
func (bs *BrowserSession) WaitForSelector(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := rod.Try(func() {
		bs.page.Context(ctx).MustElement(selector)
	})
	if err != nil {
		return fmt.Errorf("element with selector %q not found within timeout: %w", selector, err)
	}

	return nil
}

// HTML returns the full HTML content of the current page.
func (bs *BrowserSession) HTML() (string, error) {
	html, err := bs.page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get page HTML: %w", err)
	}
	return html, nil
}

// Close releases the page, browser and launcher. Safe on a partially
// initialized session.
func (bs *BrowserSession) Close() {
	if bs.page != nil {
		_ = rod.Try(func() { bs.page.MustClose() })
	}
	if bs.browser != nil {
		_ = rod.Try(func() { bs.browser.MustClose() })
	}
	if bs.launcher != nil {
		bs.launcher.Cleanup()
	}
	bs.logger.Info("Browser session closed")
}

// getSystemChromePath finds the system-installed Chrome/Chromium browser
func getSystemChromePath() string {
	if chromeBin := os.Getenv("CHROME_BIN"); chromeBin != "" {
		if _, err := os.Stat(chromeBin); err == nil {
			return chromeBin
		}
	}

	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	commonPaths := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/opt/google/chrome/chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
