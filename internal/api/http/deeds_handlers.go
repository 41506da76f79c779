package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/deedlab/deedtrainer/internal/deed"
	"github.com/deedlab/deedtrainer/internal/metrics"
	"github.com/deedlab/deedtrainer/internal/storage"
)

// POST /api/deeds/upload — multipart: "deed" file plus ground-truth metadata
// fields. Trainer/admin only (enforced by RBAC middleware on the route).
func UploadDeedHandler(deeds deed.DeedStore, bs storage.BlobStore, m *metrics.Metrics, maxUploadMB int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := int64(maxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		if err := r.ParseMultipartForm(limit); err != nil {
			http.Error(w, "upload too large or malformed", http.StatusBadRequest)
			return
		}
		f, hdr, err := r.FormFile("deed")
		if err != nil {
			http.Error(w, "no file uploaded", http.StatusBadRequest)
			return
		}
		defer f.Close()

		ext := path.Ext(hdr.Filename)
		if ext == "" {
			ext = ".pdf"
		}
		key := fmt.Sprintf("deeds/%d-%s%s", time.Now().Unix(), uuid.NewString()[:8], ext)
		contentType := hdr.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/pdf"
		}
		if _, err := bs.Put(r.Context(), key, f, hdr.Size, contentType); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		d := deed.Deed{
			Filename:         hdr.Filename,
			FileKey:          key,
			DocumentType:     r.FormValue("document_type"),
			Grantor:          r.FormValue("grantor"),
			Grantee:          r.FormValue("grantee"),
			RecordingDate:    deed.NormalizeDate(r.FormValue("recording_date")),
			DatedDate:        deed.NormalizeDate(r.FormValue("dated_date")),
			RecordingBook:    r.FormValue("recording_book"),
			RecordingPage:    r.FormValue("recording_page"),
			InstrumentNumber: r.FormValue("instrument_number"),
		}
		saved, err := deeds.Put(r.Context(), d)
		if err != nil {
			http.Error(w, "save deed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		m.DeedsUploaded.Inc()
		writeJSON(w, map[string]deed.Deed{"deed": saved})
	}
}

// GET /api/deeds/next — the next unattempted deed for the caller.
func NextDeedHandler(svc *deed.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := subjectOr401(w, r)
		if userID == "" {
			return
		}
		d, err := svc.NextAssignment(r.Context(), userID)
		if errors.Is(err, deed.ErrNotFound) {
			http.Error(w, "no more deeds available", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]deed.Deed{"deed": hideAnswers(d)})
	}
}

// GET /api/deeds/{deedID}
func GetDeedHandler(deeds deed.DeedStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "deedID"), 10, 64)
		if err != nil {
			http.Error(w, "bad deed id", http.StatusBadRequest)
			return
		}
		d, err := deeds.Get(r.Context(), id)
		if errors.Is(err, deed.ErrNotFound) {
			http.Error(w, "deed not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]deed.Deed{"deed": hideAnswers(d)})
	}
}

// GET /api/deeds/{deedID}/file — redirects to a presigned URL when the store
// supports it, otherwise streams the scan from blob storage.
func DeedFileHandler(deeds deed.DeedStore, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "deedID"), 10, 64)
		if err != nil {
			http.Error(w, "bad deed id", http.StatusBadRequest)
			return
		}
		d, err := deeds.Get(r.Context(), id)
		if errors.Is(err, deed.ErrNotFound) || (err == nil && d.FileKey == "") {
			http.Error(w, "file missing", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if signer, ok := bs.(storage.URLSigner); ok {
			u, err := signer.SignedURL(r.Context(), d.FileKey)
			if err != nil {
				http.Error(w, "file missing", http.StatusNotFound)
				return
			}
			http.Redirect(w, r, u, http.StatusTemporaryRedirect)
			return
		}
		rc, err := bs.Get(r.Context(), d.FileKey)
		if err != nil {
			http.Error(w, "file missing", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.Copy(w, rc)
	}
}

// PATCH /api/deeds/{deedID} — metadata correction on an existing deed.
func UpdateDeedHandler(deeds deed.DeedStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "deedID"), 10, 64)
		if err != nil {
			http.Error(w, "bad deed id", http.StatusBadRequest)
			return
		}
		current, err := deeds.Get(r.Context(), id)
		if errors.Is(err, deed.ErrNotFound) {
			http.Error(w, "deed not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		var patch deed.Submission
		if err := decodeJSON(r, &patch); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		applyMetadata(&current, patch)
		if err := deeds.UpdateMetadata(r.Context(), current); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]deed.Deed{"deed": current})
	}
}

func applyMetadata(d *deed.Deed, patch deed.Submission) {
	if patch.DocumentType != "" {
		d.DocumentType = patch.DocumentType
	}
	if patch.Grantor != "" {
		d.Grantor = patch.Grantor
	}
	if patch.Grantee != "" {
		d.Grantee = patch.Grantee
	}
	if patch.RecordingDate != "" {
		d.RecordingDate = deed.NormalizeDate(patch.RecordingDate)
	}
	if patch.DatedDate != "" {
		d.DatedDate = deed.NormalizeDate(patch.DatedDate)
	}
	if patch.RecordingBook != "" {
		d.RecordingBook = patch.RecordingBook
	}
	if patch.RecordingPage != "" {
		d.RecordingPage = patch.RecordingPage
	}
	if patch.InstrumentNumber != "" {
		d.InstrumentNumber = patch.InstrumentNumber
	}
}

// hideAnswers strips the ground-truth fields before a deed is served to a
// trainee; they would otherwise leak the answer key.
func hideAnswers(d deed.Deed) deed.Deed {
	d.Grantor = ""
	d.Grantee = ""
	d.RecordingDate = ""
	d.DatedDate = ""
	d.RecordingBook = ""
	d.RecordingPage = ""
	d.InstrumentNumber = ""
	return d
}
