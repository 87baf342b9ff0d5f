package fakebackend

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

type ctxKey struct{}

// record captures each request for later inspection.
func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			RawQuery:  r.URL.RawQuery,
			Header:    r.Header.Clone(),
			Body:      body,
			RequestID: r.Header.Get("X-Request-ID"),
		})
		b.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// requireUser validates the session cookie and injects the account.
func (b *Backend) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		b.mu.Lock()
		email, ok := b.sessions[cookie.Value]
		acct := b.accounts[email]
		b.mu.Unlock()
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if acct == nil {
			writeDetail(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, acct)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects non-admin accounts. Must run after requireUser.
func (b *Backend) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acct, _ := r.Context().Value(ctxKey{}).(*account)
		if acct == nil || !acct.user.IsAdmin {
			writeDetail(w, http.StatusForbidden, "Not enough permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}
