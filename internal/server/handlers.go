package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/user/content-system/internal/content"
	"github.com/user/content-system/internal/ingest"
	"github.com/user/content-system/internal/query"
)

// UploadResponse is returned after a committed upload
type UploadResponse struct {
	Message      string `json:"message"`
	UploadID     string `json:"upload_id"`
	Rows         int    `json:"rows"`
	Links        int    `json:"links"`
	NewLanguages int    `json:"new_languages"`
}

// multipartMemory is how much of a form is buffered in memory before
// spilling to temporary files
const multipartMemory = 32 << 20

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: file exceeds %d bytes", ingest.ErrMalformedInput, tooLarge.Limit)
		} else {
			err = fmt.Errorf("%w: %v", ingest.ErrMalformedInput, err)
		}
		s.failUpload(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.failUpload(w, r, fmt.Errorf("%w: form field \"file\" is required", ingest.ErrMalformedInput))
		return
	}
	defer file.Close()

	if err := ingest.ValidateFileName(header.Filename); err != nil {
		s.failUpload(w, r, err)
		return
	}

	res, err := s.ingester.Ingest(r.Context(), file)
	if err != nil {
		s.failUpload(w, r, err)
		return
	}

	RecordUpload("success", res.Rows, res.NewLanguages, res.Duration)
	log.Info().
		Str("upload_id", res.UploadID).
		Str("file", header.Filename).
		Int64("size", header.Size).
		Int("rows", res.Rows).
		Msg("File uploaded")

	writeJSON(w, http.StatusCreated, UploadResponse{
		Message:      "File uploaded successfully",
		UploadID:     res.UploadID,
		Rows:         res.Rows,
		Links:        res.Links,
		NewLanguages: res.NewLanguages,
	})
}

func (s *Server) failUpload(w http.ResponseWriter, r *http.Request, err error) {
	status := "failure"
	switch c := classify(err); {
	case c.status == http.StatusConflict:
		status = "conflict"
	case c.status < http.StatusInternalServerError:
		status = "rejected"
	}
	RecordUpload(status, 0, 0, 0)
	respondError(w, r, err)
}

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	params, err := s.listParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp, err := s.lister.List(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// listParams reads the listing query string. per_page is accepted as an
// alias of page_size.
func (s *Server) listParams(r *http.Request) (content.Params, error) {
	q := r.URL.Query()
	p := content.Params{
		Page:     1,
		PageSize: s.cfg.List.DefaultPageSize,
		Year:     q.Get("year"),
		Language: q.Get("language"),
		Sort:     q.Get("sort"),
	}

	var err error
	if p.Page, err = intParam(q.Get("page"), "page", p.Page); err != nil {
		return p, err
	}

	sizeKey := "page_size"
	if q.Get(sizeKey) == "" && q.Get("per_page") != "" {
		sizeKey = "per_page"
	}
	if p.PageSize, err = intParam(q.Get(sizeKey), sizeKey, p.PageSize); err != nil {
		return p, err
	}

	if raw := q.Get("include_meta"); raw != "" {
		p.IncludeMeta, err = strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return p, fmt.Errorf("%w: include_meta must be a boolean, got %q", query.ErrInvalidPage, raw)
		}
	}
	return p, nil
}

func intParam(raw, name string, fallback int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", query.ErrInvalidPage, name, raw)
	}
	return n, nil
}
