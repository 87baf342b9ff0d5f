package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// UploadDocument submits a file as multipart/form-data. The JSON content
// type is replaced by the multipart boundary; everything else follows Do.
func (c *Client) UploadDocument(ctx context.Context, upload domain.Upload) (*domain.Document, error) {
	if upload.Content == nil {
		return nil, fmt.Errorf("%w: upload has no content", domain.ErrInvalidInput)
	}

	body, contentType, err := multipartBody(upload)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Content-Type", contentType)

	var doc domain.Document
	opts := RequestOptions{Method: http.MethodPost, Body: body, Header: header}
	if err := c.Do(ctx, "/api/admin/documents/upload", opts, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// multipartBody writes file, then title and source_id when set.
func multipartBody(upload domain.Upload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	part, err := w.CreateFormFile("file", filepath.Base(upload.FileName))
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}

	if upload.Title != "" {
		if err := w.WriteField("title", upload.Title); err != nil {
			return nil, "", fmt.Errorf("write title: %w", err)
		}
	}
	if upload.SourceID != 0 {
		if err := w.WriteField("source_id", strconv.FormatInt(upload.SourceID, 10)); err != nil {
			return nil, "", fmt.Errorf("write source_id: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
