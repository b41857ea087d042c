package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/jpl-au/quilter/internal/netlist"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/jpl-au/quilter/internal/store"
	"github.com/jpl-au/quilter/internal/validate"
	"github.com/jpl-au/quilter/internal/version"
)

// Response details. The web client shows these verbatim.
const (
	detailNotFound     = "Netlist not found for this email and filename"
	detailNoEmail      = "Query parameter 'email' is required"
	detailNoFile       = "Form field 'file' is required"
	detailUndecodable  = "File is not valid UTF-8 text"
	detailTooLarge     = "File is too large"
	detailUnavailable  = "Netlist storage is not available"
	msgNetlistDeleted  = "Netlist deleted"
	multipartMaxMemory = 1 << 20
)

// handleUpload validates and stores a multipart upload.
//
// 200 for stored netlists, valid or not. 400 for invalid JSON (content is
// echoed), a duplicate filename (content is not) or a missing parameter.
// 422 when the bytes are not UTF-8.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	email := r.URL.Query().Get("email")
	if email == "" {
		writeDetail(w, http.StatusBadRequest, detailNoEmail)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUpload+multipartMaxMemory)
	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge, detailTooLarge)
			return
		}
		writeDetail(w, http.StatusBadRequest, detailNoFile)
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, detailNoFile)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	filename := header.Filename
	l := log.Event("http:upload", "upload").Author(email).Netlist(email, filename)

	res, err := s.svc.Upload(r.Context(), email, filename, content)
	switch {
	case errors.Is(err, service.ErrInvalidJSON), errors.Is(err, service.ErrDuplicate):
		l.Detail("message", res.Message).Write(err)
		writeJSON(w, http.StatusBadRequest, res)
	case errors.Is(err, service.ErrDecode):
		l.Write(err)
		writeDetail(w, http.StatusUnprocessableEntity, detailUndecodable)
	case errors.Is(err, validate.ErrContentTooLarge):
		l.Write(err)
		writeDetail(w, http.StatusRequestEntityTooLarge, detailTooLarge)
	case isBadKey(err):
		l.Write(err)
		writeDetail(w, http.StatusBadRequest, err.Error())
	case err != nil:
		l.Write(err)
		s.internalError(w, err)
	default:
		l.Outcome(res.Valid, len(res.Errors)).Write(nil)
		writeJSON(w, http.StatusOK, res)
	}
}

// handleDelete removes exactly one (email, filename) record.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	vars := mux.Vars(r)
	email, filename := vars["email"], vars["filename"]

	err := s.svc.Delete(r.Context(), email, filename)
	log.Event("http:delete", "delete").Author(email).Netlist(email, filename).Write(err)

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": msgNetlistDeleted})
	case errors.Is(err, store.ErrNotFound), isBadKey(err):
		// A key that could never have been stored is simply not found.
		writeDetail(w, http.StatusNotFound, detailNotFound)
	default:
		s.internalError(w, err)
	}
}

// handleList returns every netlist the user holds.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	email := r.URL.Query().Get("email")
	if email == "" {
		writeDetail(w, http.StatusBadRequest, detailNoEmail)
		return
	}

	netlists, err := s.svc.List(r.Context(), email)
	log.Event("http:list", "list").Author(email).Detail("count", len(netlists)).Write(err)
	if err != nil {
		s.internalError(w, err)
		return
	}

	out := make([]store.NetlistJSON, len(netlists))
	for i := range netlists {
		out[i] = netlists[i].ToJSON()
	}
	writeJSON(w, http.StatusOK, map[string]any{"netlists": out})
}

// handleValidate checks a raw JSON body without storing it.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxUpload))
	if err != nil {
		writeDetail(w, http.StatusRequestEntityTooLarge, detailTooLarge)
		return
	}
	report := netlist.Check(string(body), netlist.Options{Strict: s.opts.Strict})
	log.Event("http:validate", "validate").Outcome(report.Valid, len(report.Errors)).Write(nil)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	backend := "none"
	if s.svc != nil {
		backend = s.svc.Backend()
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Short(),
		"backend": backend,
	})
}

// static serves files from dir. os.Root keeps requests from escaping it.
func (s *Server) static(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		root, err := os.OpenRoot(dir)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer root.Close()
		http.FileServerFS(root.FS()).ServeHTTP(w, r)
	})
}

// handleIndex is the single-page application fallback.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(s.opts.StaticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, r, index)
}

// available answers 503 when the server runs without storage.
func (s *Server) available(w http.ResponseWriter) bool {
	if s.svc == nil {
		writeDetail(w, http.StatusServiceUnavailable, detailUnavailable)
		return false
	}
	return true
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "error", err)
	writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", err))
}

func isBadKey(err error) bool {
	return errors.Is(err, validate.ErrInvalidName) || errors.Is(err, validate.ErrNameTooLong)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeJSON encodes v without HTML escaping so echoed netlist content stays
// byte-for-byte readable.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
