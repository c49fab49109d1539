package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/document"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/task"
)

// jsonTaskHandler builds a handler for a JSON task route whose body carries
// the input text under a single field.
func (s *Server) jsonTaskHandler(typ task.Type, field string) http.HandlerFunc {
	d, ok := task.Get(typ)
	if !ok {
		panic("api: no descriptor for task " + string(typ))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid JSON body.")
			return
		}
		text, _ := body[field].(string)

		s.runTask(w, r, d, task.Input{
			CallerID: identityFrom(r.Context()).UserID,
			Text:     text,
		})
	}
}

// handleFIRExplain accepts either an uploaded FIR document or pasted FIR
// text as multipart form data. When both are present the file wins.
func (s *Server) handleFIRExplain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBodySize)
	if err := r.ParseMultipartForm(maxMultipartBodySize); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid multipart form.")
		return
	}

	var (
		text     string
		filename = "pasted_text.txt"
	)

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			writeDetail(w, http.StatusBadRequest, "Could not read the uploaded file.")
			return
		}
		text, err = document.Extract(header.Filename, data)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		filename = header.Filename

	case r.FormValue("fir_text_input") != "":
		text = r.FormValue("fir_text_input")

	default:
		writeDetail(w, http.StatusBadRequest, "Please provide either a file or text to explain.")
		return
	}

	d, _ := task.Get(task.FIRExplain)
	s.runTask(w, r, d, task.Input{
		CallerID: identityFrom(r.Context()).UserID,
		Text:     text,
		Filename: filename,
	})
}

// runTask executes one orchestration and writes the response or the mapped
// error.
func (s *Server) runTask(w http.ResponseWriter, r *http.Request, d task.Descriptor, in task.Input) {
	resp, err := s.orch.Handle(r.Context(), d, in)
	if err != nil {
		s.writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeTaskError maps orchestration failures to HTTP. Validation details are
// caller-safe; everything else collapses to a generic 500, diagnostics
// having already been logged by the orchestrator.
func (s *Server) writeTaskError(w http.ResponseWriter, err error) {
	var v *task.ValidationError
	if errors.As(err, &v) {
		writeDetail(w, http.StatusBadRequest, v.Detail)
		return
	}
	writeDetail(w, http.StatusInternalServerError, "An internal error occurred while processing the request.")
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Response is already partially written; nothing to recover.
		_ = err
	}
}

// writeDetail writes an error response in the {"detail": ...} shape.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
