package fakebackend

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

const sessionMaxAge = 60 * 60 * 24 * 7

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeValidation(w, []string{"body"}, "invalid JSON")
		return
	}
	if creds.Email == "" || !strings.Contains(creds.Email, "@") {
		writeValidation(w, []string{"body", "email"}, "value is not a valid email address")
		return
	}

	b.mu.Lock()
	_, exists := b.accounts[creds.Email]
	b.mu.Unlock()
	if exists {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}

	user := b.AddUser(creds.Email, creds.Password, false)
	writeJSON(w, http.StatusCreated, user)
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeValidation(w, []string{"body"}, "invalid JSON")
		return
	}

	b.mu.Lock()
	acct := b.accounts[creds.Email]
	b.mu.Unlock()
	if acct == nil || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(creds.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token := b.Token(creds.Email)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   sessionMaxAge,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    acct.user,
	})
}

func (b *Backend) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		b.mu.Lock()
		delete(b.sessions, cookie.Value)
		b.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	acct := r.Context().Value(ctxKey{}).(*account)
	writeJSON(w, http.StatusOK, acct.user)
}

func (b *Backend) listDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip, ok := intParam(w, q.Get("skip"), "skip", 0)
	if !ok {
		return
	}
	limit, ok := intParam(w, q.Get("limit"), "limit", 20)
	if !ok {
		return
	}
	if skip < 0 {
		writeValidation(w, []string{"query", "skip"}, "ensure this value is greater than or equal to 0")
		return
	}
	if limit < 1 || limit > 100 {
		writeValidation(w, []string{"query", "limit"}, "ensure this value is between 1 and 100")
		return
	}
	sourceID, _ := strconv.ParseInt(q.Get("source_id"), 10, 64)
	tag := q.Get("tag")
	search := strings.ToLower(q.Get("search"))

	b.mu.Lock()
	defer b.mu.Unlock()

	items := []domain.DocumentListItem{}
	for _, d := range b.documents {
		if tag != "" && !hasTag(d.Tags, tag) {
			continue
		}
		if sourceID != 0 && (d.Source == nil || d.Source.ID != sourceID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(d.Title+" "+d.Summary+" "+d.ContentText), search) {
			continue
		}
		items = append(items, listItem(d))
	}

	if skip >= len(items) {
		items = []domain.DocumentListItem{}
	} else {
		items = items[skip:]
	}
	if len(items) > limit {
		items = items[:limit]
	}
	writeJSON(w, http.StatusOK, items)
}

func (b *Backend) getDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, d := range b.documents {
		if d.ID == id {
			writeJSON(w, http.StatusOK, d)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Document not found")
}

func (b *Backend) regenerateSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.documents {
		if b.documents[i].ID == id {
			b.documents[i].Summary = "Regenerated summary of " + b.documents[i].Title
			b.documents[i].UpdatedAt = domain.NewTime(b.now())
			writeJSON(w, http.StatusOK, b.documents[i])
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Document not found")
}

func (b *Backend) listTags(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(b.tags))
}

func (b *Backend) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("q") == "" {
		writeValidation(w, []string{"query", "q"}, "ensure this value has at least 1 characters")
		return
	}
	limit, ok := intParam(w, q.Get("limit"), "limit", 10)
	if !ok {
		return
	}
	if limit < 1 || limit > 50 {
		writeValidation(w, []string{"query", "limit"}, "ensure this value is between 1 and 50")
		return
	}
	tag := q.Get("tag")

	b.mu.Lock()
	defer b.mu.Unlock()
	results := []domain.SearchResult{}
	for _, res := range b.searchResults {
		if tag != "" && len(res.Tags) > 0 && !hasTag(res.Tags, tag) {
			continue
		}
		results = append(results, res)
		if len(results) == limit {
			break
		}
	}
	writeJSON(w, http.StatusOK, results)
}

func (b *Backend) listSources(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(b.sources))
}

func (b *Backend) createSource(w http.ResponseWriter, r *http.Request) {
	var in domain.SourceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeValidation(w, []string{"body"}, "invalid JSON")
		return
	}
	if in.Name == "" {
		writeValidation(w, []string{"body", "name"}, "field required")
		return
	}
	if in.BaseURL == "" {
		writeValidation(w, []string{"body", "base_url"}, "field required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	src := domain.DocumentSource{
		ID:          b.allocID(),
		Name:        in.Name,
		BaseURL:     in.BaseURL,
		URLPattern:  in.URLPattern,
		ScraperType: in.ScraperType,
		IsEnabled:   in.IsEnabled == nil || *in.IsEnabled,
		CreatedAt:   domain.NewTime(b.now()),
	}
	b.sources = append(b.sources, src)
	writeJSON(w, http.StatusCreated, src)
}

func (b *Backend) updateSource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch domain.SourcePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeValidation(w, []string{"body"}, "invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.sources {
		src := &b.sources[i]
		if src.ID != id {
			continue
		}
		if patch.Name != nil {
			src.Name = *patch.Name
		}
		if patch.BaseURL != nil {
			src.BaseURL = *patch.BaseURL
		}
		if patch.URLPattern != nil {
			src.URLPattern = *patch.URLPattern
		}
		if patch.ScraperType != nil {
			src.ScraperType = *patch.ScraperType
		}
		if patch.IsEnabled != nil {
			src.IsEnabled = *patch.IsEnabled
		}
		writeJSON(w, http.StatusOK, *src)
		return
	}
	writeDetail(w, http.StatusNotFound, "Source not found")
}

func (b *Backend) triggerCrawl(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, src := range b.sources {
		if src.ID != id {
			continue
		}
		job := domain.CrawlJob{
			ID:        b.allocID(),
			SourceID:  id,
			Status:    domain.CrawlPending,
			CreatedAt: domain.NewTime(b.now()),
		}
		b.jobs = append(b.jobs, job)
		writeJSON(w, http.StatusOK, job)
		return
	}
	writeDetail(w, http.StatusNotFound, "Source not found")
}

func (b *Backend) listCrawlJobs(w http.ResponseWriter, r *http.Request) {
	sourceID, _ := strconv.ParseInt(r.URL.Query().Get("source_id"), 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	jobs := []domain.CrawlJob{}
	for _, j := range b.jobs {
		if sourceID != 0 && j.SourceID != sourceID {
			continue
		}
		jobs = append(jobs, j)
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (b *Backend) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeValidation(w, []string{"body"}, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeValidation(w, []string{"body", "file"}, "field required")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Could not read upload")
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeDetail(w, http.StatusBadRequest, "Only PDF files are supported")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploads = append(b.uploads, UploadedFile{
		FileName: header.Filename,
		Content:  content,
		Title:    r.FormValue("title"),
		SourceID: r.FormValue("source_id"),
		Fields:   r.MultipartForm.Value,
	})

	now := domain.NewTime(b.now())
	doc := domain.Document{
		ID:          b.allocID(),
		Title:       title,
		ContentType: "pdf",
		CrawledAt:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags:        []domain.Tag{},
		Entities:    []domain.Entity{},
		Sections:    []domain.DocumentSection{},
	}
	if sid, err := strconv.ParseInt(r.FormValue("source_id"), 10, 64); err == nil {
		for _, src := range b.sources {
			if src.ID == sid {
				doc.Source = &domain.SourceRef{ID: src.ID, Name: src.Name, BaseURL: src.BaseURL}
			}
		}
	}
	b.documents = append(b.documents, doc)
	writeJSON(w, http.StatusOK, doc)
}

func (b *Backend) analyticsOverview(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a := b.analytics
	if a.TotalDocuments == 0 {
		a.TotalDocuments = int64(len(b.documents))
	}
	if a.TotalUsers == 0 {
		a.TotalUsers = int64(len(b.accounts))
	}
	if a.TotalSources == 0 {
		a.TotalSources = int64(len(b.sources))
	}
	a.TopViewedDocuments = nonNil(a.TopViewedDocuments)
	a.TopSearchQueries = nonNil(a.TopSearchQueries)
	a.RecentActivity = nonNil(a.RecentActivity)
	writeJSON(w, http.StatusOK, a)
}

// writeValidation writes a FastAPI 422 body.
func writeValidation(w http.ResponseWriter, loc []string, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]any{{"loc": loc, "msg": msg, "type": "value_error"}},
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeValidation(w, []string{"path", "id"}, "value is not a valid integer")
		return 0, false
	}
	return id, true
}

func intParam(w http.ResponseWriter, raw, name string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeValidation(w, []string{"query", name}, "value is not a valid integer")
		return 0, false
	}
	return n, true
}

func hasTag(tags []domain.Tag, slug string) bool {
	for _, t := range tags {
		if t.Slug == slug {
			return true
		}
	}
	return false
}

func listItem(d domain.Document) domain.DocumentListItem {
	return domain.DocumentListItem{
		ID:          d.ID,
		Title:       d.Title,
		ContentType: d.ContentType,
		Summary:     d.Summary,
		CrawledAt:   d.CrawledAt,
		Source:      d.Source,
		Tags:        nonNil(d.Tags),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
