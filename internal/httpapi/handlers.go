package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"compta/database/internal/archive"
	"compta/database/internal/gateway"
)

// detailResponse is the error (and upload success) payload shape.
type detailResponse struct {
	Detail string `json:"detail"`
	Path   string `json:"path,omitempty"`
}

// executeRequest is the body of POST /execute_sql.
type executeRequest struct {
	Query string `json:"query"`
}

// executeResponse wraps either a row sequence or a rows-affected object.
type executeResponse struct {
	Result any `json:"result"`
}

type rowsAffected struct {
	RowsAffected int64 `json:"rows_affected"`
}

func (s *Server) handleExecuteSQL(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: "invalid request body: " + err.Error()})
		return
	}

	db, err := s.provider.Connect()
	if err != nil {
		// Dependency failures surface as client errors, same as engine ones.
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: err.Error()})
		return
	}
	defer db.Close()

	result, err := gateway.Execute(r.Context(), db, req.Query)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: err.Error()})
		return
	}

	if result.IsRead {
		writeJSON(w, http.StatusOK, executeResponse{Result: result.Rows})
		return
	}
	writeJSON(w, http.StatusOK, executeResponse{Result: rowsAffected{RowsAffected: result.RowsAffected}})
}

func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: "invalid multipart form: " + err.Error()})
		return
	}

	// Vocabulary and form-shape checks happen at the boundary (422),
	// before path resolution.
	owner, err := archive.ParseOwner(r.FormValue("owner"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detailResponse{Detail: err.Error()})
		return
	}
	bank, err := archive.ParseBank(r.FormValue("bank"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detailResponse{Detail: err.Error()})
		return
	}
	year, err := strconv.Atoi(r.FormValue("year"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detailResponse{Detail: "year must be an integer"})
		return
	}
	month, err := strconv.Atoi(r.FormValue("month"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detailResponse{Detail: "month must be an integer"})
		return
	}
	overwrite := false
	if v := r.FormValue("overwrite"); v != "" {
		overwrite, err = strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, detailResponse{Detail: "overwrite must be a boolean"})
			return
		}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detailResponse{Detail: "file field is required"})
		return
	}
	defer file.Close()

	path, err := archive.Store(archive.Request{
		Owner:     owner,
		Bank:      bank,
		Year:      year,
		Month:     month,
		Filename:  header.Filename,
		Overwrite: overwrite,
	}, s.profile.ArchiveRoot, file)
	if err != nil {
		writeJSON(w, uploadErrorStatus(err), detailResponse{Detail: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, detailResponse{Detail: "File uploaded successfully.", Path: path})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// uploadErrorStatus maps archive errors to status codes:
// validation 400, conflict 409, anything else (filesystem faults) 400.
func uploadErrorStatus(err error) int {
	var ce *archive.ConflictError
	if errors.As(err, &ce) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
