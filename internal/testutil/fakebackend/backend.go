// Package fakebackend is an in-process BdLens backend for tests.
//
// It implements the REST routes the gateway client consumes with the same
// cookie session, admin checks and error envelopes as the real backend,
// backed by in-memory state that tests seed and inspect.
package fakebackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// SessionCookie is the backend session cookie name.
const SessionCookie = "access_token"

// RecordedRequest is a request as seen by the backend.
type RecordedRequest struct {
	Method    string
	Path      string
	RawQuery  string
	Header    http.Header
	Body      []byte
	RequestID string
}

// UploadedFile is a document received on the upload route.
type UploadedFile struct {
	FileName string
	Content  []byte
	Title    string
	SourceID string
	Fields   map[string][]string
}

type account struct {
	user         domain.User
	passwordHash []byte
}

// Backend is the fake server state.
type Backend struct {
	mu sync.Mutex

	accounts map[string]*account // by email
	sessions map[string]string   // token -> email

	documents     []domain.Document
	tags          []domain.Tag
	sources       []domain.DocumentSource
	jobs          []domain.CrawlJob
	searchResults []domain.SearchResult
	analytics     domain.AnalyticsOverview
	uploads       []UploadedFile
	requests      []RecordedRequest

	nextID int64
	now    func() time.Time

	server *httptest.Server
}

// New creates an empty backend. Call Start or use Handler directly.
func New() *Backend {
	return &Backend{
		accounts: make(map[string]*account),
		sessions: make(map[string]string),
		nextID:   1000,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start serves the backend on a local httptest server.
func (b *Backend) Start() *Backend {
	b.server = httptest.NewServer(b.Handler())
	return b
}

// URL returns the base URL of a started backend.
func (b *Backend) URL() string {
	return b.server.URL
}

// Close stops a started backend.
func (b *Backend) Close() {
	if b.server != nil {
		b.server.Close()
	}
}

// Handler returns the chi router with all routes mounted.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(b.record)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", b.register)
		r.Post("/login", b.login)
		r.Post("/logout", b.logout)
		r.With(b.requireUser).Get("/me", b.me)
	})

	r.Route("/api/documents", func(r chi.Router) {
		r.Use(b.requireUser)
		r.Get("/", b.listDocuments)
		r.Get("/tags/list", b.listTags)
		r.Get("/{id}", b.getDocument)
		r.With(b.requireAdmin).Post("/{id}/regenerate-summary", b.regenerateSummary)
	})

	r.With(b.requireUser).Get("/api/search", b.search)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(b.requireUser, b.requireAdmin)
		r.Get("/sources", b.listSources)
		r.Post("/sources", b.createSource)
		r.Put("/sources/{id}", b.updateSource)
		r.Post("/sources/{id}/crawl", b.triggerCrawl)
		r.Get("/crawl-jobs", b.listCrawlJobs)
		r.Post("/documents/upload", b.upload)
		r.Get("/analytics/overview", b.analyticsOverview)
	})

	return r
}

// AddUser seeds an account and returns it.
func (b *Backend) AddUser(email, password string, admin bool) domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		IsAdmin:   admin,
		CreatedAt: domain.NewTime(b.now().Truncate(time.Second)),
	}
	b.accounts[email] = &account{user: u, passwordHash: hash}
	return u
}

// Token returns a valid session token for email without going through login.
func (b *Backend) Token(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	token := uuid.NewString()
	b.sessions[token] = email
	return token
}

// AddDocument seeds a document.
func (b *Backend) AddDocument(doc domain.Document) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.documents = append(b.documents, doc)
}

// AddTag seeds a tag.
func (b *Backend) AddTag(tag domain.Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tags = append(b.tags, tag)
}

// AddSource seeds a source.
func (b *Backend) AddSource(src domain.DocumentSource) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sources = append(b.sources, src)
}

// AddCrawlJob seeds a crawl job.
func (b *Backend) AddCrawlJob(job domain.CrawlJob) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jobs = append(b.jobs, job)
}

// SetSearchResults fixes the results returned for any query, in order.
func (b *Backend) SetSearchResults(results []domain.SearchResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.searchResults = results
}

// SetAnalytics fixes the analytics overview.
func (b *Backend) SetAnalytics(a domain.AnalyticsOverview) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.analytics = a
}

// Uploads returns the files received so far.
func (b *Backend) Uploads() []UploadedFile {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]UploadedFile(nil), b.uploads...)
}

// Requests returns every request received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

// LastRequest returns the most recent request, or an empty one.
func (b *Backend) LastRequest() RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return RecordedRequest{}
	}
	return b.requests[len(b.requests)-1]
}

func (b *Backend) allocID() int64 {
	b.nextID++
	return b.nextID
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes the FastAPI error envelope.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
