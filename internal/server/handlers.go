package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/dispatch"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/history"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/recipient"
)

// Multipart field names of POST /batches and POST /templates.
const (
	fieldSenderEmail = "sender_email"
	fieldSenderPass  = "sender_pass"
	fieldTemplate    = "selected_template"
	fieldFont        = "selected_font"
	fieldExcelFile   = "excel_file"
	fieldManualName  = "manual_name"
	fieldManualEmail = "manual_email"
	fieldPreview     = "preview"
	fieldNewTemplate = "new_template"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) listTemplates(w http.ResponseWriter, _ *http.Request) error {
	names, err := s.deps.Catalog.Templates()
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string][]string{"templates": names})
	return nil
}

func (s *Server) listFonts(w http.ResponseWriter, _ *http.Request) error {
	names, err := s.deps.Catalog.Fonts()
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string][]string{"fonts": names})
	return nil
}

func (s *Server) uploadTemplate(w http.ResponseWriter, r *http.Request) error {
	if err := s.parseMultipart(w, r); err != nil {
		return err
	}

	file, header, err := r.FormFile(fieldNewTemplate)
	if errors.Is(err, http.ErrMissingFile) {
		return badRequest("No file selected.")
	}
	if err != nil {
		return badRequest(err.Error())
	}
	defer file.Close()

	name, err := s.deps.Catalog.UploadTemplate(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"name":    name,
		"message": fmt.Sprintf("Template '%s' uploaded successfully.", name),
	})
	return nil
}

type batchResponse struct {
	*dispatch.Result
	Message string `json:"message"`
}

func (s *Server) createBatch(w http.ResponseWriter, r *http.Request) error {
	if err := s.parseMultipart(w, r); err != nil {
		return err
	}

	batch := dispatch.Batch{
		Credentials: dispatch.Credentials{
			Address: strings.TrimSpace(r.FormValue(fieldSenderEmail)),
			Secret:  strings.TrimSpace(r.FormValue(fieldSenderPass)),
		},
		Template: r.FormValue(fieldTemplate),
		Font:     r.FormValue(fieldFont),
		Source: recipient.Source{
			ManualName:  r.FormValue(fieldManualName),
			ManualEmail: r.FormValue(fieldManualEmail),
		},
		Mode: dispatch.ModeSend,
	}
	if r.FormValue(fieldPreview) == "true" {
		batch.Mode = dispatch.ModePreview
	}

	file, header, err := r.FormFile(fieldExcelFile)
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return badRequest(err.Error())
	default:
		defer file.Close()
		if header.Filename != "" {
			batch.Source.File = file
			batch.Source.Filename = header.Filename
		}
	}

	res, err := s.deps.Pipeline.Run(r.Context(), batch)
	if errors.Is(err, dispatch.ErrHistory) {
		s.log.ErrorContext(r.Context(), "batch history not saved", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:  "Certificates were sent but the send history could not be saved.",
			Result: batchResponse{Result: res, Message: res.Summary()},
		})
		return nil
	}
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, batchResponse{Result: res, Message: res.Summary()})
	return nil
}

func (s *Server) downloadPreview(w http.ResponseWriter, r *http.Request) error {
	path, ok := s.insideOutputDir(r.URL.Query().Get("path"))
	if !ok {
		return errNoPreview
	}

	f, err := os.Open(path)
	if err != nil {
		return errNoPreview
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return errNoPreview
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return nil
}

// insideOutputDir resolves p and reports whether it lies within the output directory.
func (s *Server) insideOutputDir(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	root, err := filepath.Abs(s.deps.OutputDir)
	if err != nil {
		return "", false
	}
	abs, err := filepath.Abs(filepath.FromSlash(p))
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return abs, true
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) error {
	entries, err := s.deps.Ledger.LoadAll(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string][]history.Entry{"entries": entries})
	return nil
}

func (s *Server) deleteHistory(w http.ResponseWriter, r *http.Request) error {
	err := s.deps.Ledger.DeleteAll(r.Context())
	if errors.Is(err, history.ErrNotFound) {
		return &HTTPError{Status: http.StatusNotFound, Message: "No history file found."}
	}
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "History deleted successfully."})
	return nil
}

func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &HTTPError{Status: http.StatusRequestEntityTooLarge, Message: "upload too large"}
		}
		if errors.Is(err, io.EOF) || errors.Is(err, http.ErrNotMultipart) {
			return badRequest("expected a multipart form")
		}
		return badRequest(err.Error())
	}
	return nil
}
