package api

import (
	"net/url"
	"strconv"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// documentQuery encodes only the filters that are set.
func documentQuery(f domain.DocumentFilter) url.Values {
	v := url.Values{}
	if f.Skip != nil {
		v.Set("skip", strconv.Itoa(*f.Skip))
	}
	if f.Limit != nil {
		v.Set("limit", strconv.Itoa(*f.Limit))
	}
	if f.Tag != "" {
		v.Set("tag", f.Tag)
	}
	if f.SourceID != 0 {
		v.Set("source_id", strconv.FormatInt(f.SourceID, 10))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	return v
}

// searchQuery always carries q; the query is passed verbatim.
func searchQuery(q string, f domain.SearchFilter) url.Values {
	v := url.Values{}
	v.Set("q", q)
	if f.Limit != 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Tag != "" {
		v.Set("tag", f.Tag)
	}
	if f.SourceID != 0 {
		v.Set("source_id", strconv.FormatInt(f.SourceID, 10))
	}
	return v
}

// withQuery appends v to path, leaving path bare when v is empty.
func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}
