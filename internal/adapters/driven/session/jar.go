// Package session persists the backend session cookie between CLI invocations.
//
// The backend keeps the session in an httpOnly access_token cookie. Jar is an
// http.CookieJar that behaves like net/http/cookiejar and additionally mirrors
// that one cookie into a driven.SessionStore keyed by backend origin.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
	"github.com/bdlens/bdlens-cli/internal/logger"
)

// CookieName is the backend session cookie.
const CookieName = "access_token"

// Ensure Jar implements the interfaces.
var (
	_ http.CookieJar      = (*Jar)(nil)
	_ driven.SessionState = (*Jar)(nil)
)

// Jar is a cookie jar that persists the session cookie for one backend.
type Jar struct {
	jar    *cookiejar.Jar
	store  driven.SessionStore
	origin *url.URL
	now    func() time.Time

	mu sync.Mutex // serialises store writes
}

// Origin returns the scheme://host[:port] key for rawURL.
func Origin(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: base URL %q must be absolute", domain.ErrInvalidInput, rawURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// NewJar creates a jar for the backend at baseURL and restores any stored
// session. A nil store gives a plain in-memory jar.
func NewJar(ctx context.Context, baseURL string, store driven.SessionStore) (*Jar, error) {
	key, err := Origin(baseURL)
	if err != nil {
		return nil, err
	}
	origin, _ := url.Parse(key + "/")

	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	j := &Jar{
		jar:    inner,
		store:  store,
		origin: origin,
		now:    time.Now,
	}
	if err := j.restore(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

// restore loads the stored session into the jar, discarding expired ones.
func (j *Jar) restore(ctx context.Context) error {
	if j.store == nil {
		return nil
	}

	sess, err := j.store.GetSession(ctx, j.originKey())
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	if sess.Token == "" || sess.Expired(j.now()) {
		logger.Debug("session: discarding expired session for %s", j.originKey())
		return j.store.DeleteSession(ctx, j.originKey())
	}

	j.jar.SetCookies(j.origin, []*http.Cookie{{
		Name:    CookieName,
		Value:   sess.Token,
		Path:    "/",
		Expires: sess.ExpiresAt,
	}})
	logger.Debug("session: restored session for %s", j.originKey())
	return nil
}

// SetCookies implements http.CookieJar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.jar.SetCookies(u, cookies)

	if j.store == nil || !j.sameOrigin(u) {
		return
	}
	for _, c := range cookies {
		if c.Name == CookieName {
			j.persist(c)
		}
	}
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

// HasSession reports whether the jar currently holds a session cookie.
func (j *Jar) HasSession() bool {
	for _, c := range j.jar.Cookies(j.origin) {
		if c.Name == CookieName && c.Value != "" {
			return true
		}
	}
	return false
}

// Clear drops the session from the jar and the store.
func (j *Jar) Clear(ctx context.Context) error {
	j.jar.SetCookies(j.origin, []*http.Cookie{{Name: CookieName, Path: "/", MaxAge: -1}})
	if j.store == nil {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.store.DeleteSession(ctx, j.originKey()); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// persist mirrors one access_token cookie into the store.
func (j *Jar) persist(c *http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	ctx := context.Background()
	now := j.now()
	expires := cookieExpiry(c, now)

	if c.Value == "" || c.MaxAge < 0 || (!expires.IsZero() && !now.Before(expires)) {
		if err := j.store.DeleteSession(ctx, j.originKey()); err != nil {
			logger.Warn("session: failed to delete session: %v", err)
		}
		logger.Debug("session: cleared session for %s", j.originKey())
		return
	}

	err := j.store.SaveSession(ctx, driven.Session{
		Origin:    j.originKey(),
		Token:     c.Value,
		ExpiresAt: expires,
		UpdatedAt: now.UTC(),
	})
	if err != nil {
		logger.Warn("session: failed to save session: %v", err)
		return
	}
	logger.Debug("session: saved session for %s", j.originKey())
}

func (j *Jar) originKey() string {
	return j.origin.Scheme + "://" + j.origin.Host
}

func (j *Jar) sameOrigin(u *url.URL) bool {
	return u != nil && u.Scheme == j.origin.Scheme && u.Host == j.origin.Host
}

// cookieExpiry resolves Max-Age (which wins) or Expires into an absolute time.
// Zero means a browser-session cookie.
func cookieExpiry(c *http.Cookie, now time.Time) time.Time {
	if c.MaxAge > 0 {
		return now.Add(time.Duration(c.MaxAge) * time.Second).UTC()
	}
	if !c.Expires.IsZero() {
		return c.Expires.UTC()
	}
	return time.Time{}
}
