package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/semaphore"

	"github.com/ellavondegurechaff/engagebot/engagebot/config"
	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger"
)

// likerNamesJS returns the trimmed text of every anchor on the page. The
// liked_by view lists each liker as a profile link.
const likerNamesJS = `Array.from(document.querySelectorAll("a")).map(a => (a.textContent || "").trim()).filter(t => t.length > 0)`

type VerifierOptions struct {
	Headless      bool
	UserAgent     string
	ChromePath    string
	Settle        time.Duration
	MaxConcurrent int64
}

// LikeVerifier checks a post's liked_by page in a headless browser logged in
// with the stored session cookies.
type LikeVerifier struct {
	cookies   CookieStore
	opts      VerifierOptions
	sem       *semaphore.Weighted
	allocOpts []chromedp.ExecAllocatorOption
	logger    *slog.Logger

	// blobMu orders admin uploads against the write-back of refreshed
	// session cookies.
	blobMu sync.Mutex
}

var _ ledger.Verifier = (*LikeVerifier)(nil)

func NewLikeVerifier(cookies CookieStore, opts VerifierOptions) *LikeVerifier {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts,
		chromedp.Flag("headless", opts.Headless),
		chromedp.UserAgent(opts.UserAgent),
		chromedp.WindowSize(1280, 900),
	)
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}

	return &LikeVerifier{
		cookies:   cookies,
		opts:      opts,
		sem:       semaphore.NewWeighted(opts.MaxConcurrent),
		allocOpts: allocOpts,
		logger:    slog.With(slog.String("service", "like_verifier")),
	}
}

// Probe starts a throwaway browser to report whether verification can work.
// It only logs; the bot still starts without a browser.
func (v *LikeVerifier) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, v.allocOpts...)
	defer cancel()
	browserCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancel()

	if err := chromedp.Run(browserCtx, chromedp.Navigate("data:text/html,<html><body>probe</body></html>")); err != nil {
		v.logger.Error("chromedp not available - /done will fail",
			slog.String("type", "sys"),
			slog.Any("error", err))
		return false
	}

	if _, err := v.cookies.Load(ctx); errors.Is(err, ErrNoCookies) {
		v.logger.Warn("Browser available but no session cookies uploaded yet",
			slog.String("type", "sys"))
		return true
	}
	v.logger.Info("chromedp is available and working", slog.String("type", "sys"))
	return true
}

func (v *LikeVerifier) Verify(ctx context.Context, handle, postURL string) (bool, error) {
	if err := v.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("waiting for browser slot: %w", err)
	}
	defer v.sem.Release(1)

	start := time.Now()

	blob, err := v.cookies.Load(ctx)
	if err != nil {
		return false, err
	}
	params, err := ParseCookies(blob)
	if err != nil {
		return false, err
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, v.allocOpts...)
	defer cancel()
	browserCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancel()

	var names []string
	var refreshed []*network.Cookie

	err = chromedp.Run(browserCtx,
		network.SetCookies(params),
		chromedp.Navigate(LikedByURL(postURL)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(v.opts.Settle),
		chromedp.Evaluate(likerNamesJS, &names),
		chromedp.ActionFunc(func(ctx context.Context) error {
			cookies, err := network.GetCookies().Do(ctx)
			if err != nil {
				return err
			}
			refreshed = cookies
			return nil
		}),
	)
	if err != nil {
		return false, fmt.Errorf("browser session failed: %w", err)
	}

	v.persist(ctx, blob, refreshed)

	liked := ContainsHandle(names, handle)
	v.logger.Info("Like check finished",
		slog.String("type", "sys"),
		slog.String("attempt", ledger.AttemptID(ctx)),
		slog.String("handle", handle),
		slog.String("url", postURL),
		slog.Int("likers_seen", len(names)),
		slog.Bool("liked", liked),
		slog.Duration("took", time.Since(start)))
	return liked, nil
}

// ReplaceCookies validates and stores an uploaded blob. Checks already
// running keep their old session but will not write it back over the upload.
func (v *LikeVerifier) ReplaceCookies(ctx context.Context, blob []byte) (int, error) {
	v.blobMu.Lock()
	defer v.blobMu.Unlock()

	return ReplaceCookies(ctx, v.cookies, blob)
}

// persist writes the browser's refreshed cookies back so the session does
// not age out. loaded is the blob the check started from; when the stored
// blob changed in the meantime the refresh belongs to a replaced session
// and is dropped. Failures only cost a later re-upload.
func (v *LikeVerifier) persist(ctx context.Context, loaded []byte, cookies []*network.Cookie) {
	if len(cookies) == 0 {
		return
	}

	v.blobMu.Lock()
	defer v.blobMu.Unlock()

	current, err := v.cookies.Load(ctx)
	if err != nil || !bytes.Equal(current, loaded) {
		v.logger.Info("Session cookies replaced during check, keeping the new ones",
			slog.String("type", "sys"),
			slog.String("attempt", ledger.AttemptID(ctx)))
		return
	}

	blob, err := EncodeCookies(cookies)
	if err == nil {
		err = v.cookies.Save(ctx, blob)
	}
	if err != nil {
		v.logger.Warn("Failed to persist refreshed cookies",
			slog.String("type", "sys"),
			slog.Any("error", err))
	}
}

// LikedByURL appends the liked_by view to a normalised post URL.
func LikedByURL(postURL string) string {
	if !strings.HasSuffix(postURL, "/") {
		postURL += "/"
	}
	return postURL + config.LikedBySuffix
}

// ContainsHandle reports whether handle is among names, ignoring case and a
// leading @.
func ContainsHandle(names []string, handle string) bool {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return false
	}
	for _, n := range names {
		if strings.EqualFold(strings.TrimPrefix(strings.TrimSpace(n), "@"), handle) {
			return true
		}
	}
	return false
}
