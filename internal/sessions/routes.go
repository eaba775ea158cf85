package sessions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/datachat/internal/dataset"
	"github.com/ziadkadry99/datachat/internal/retrieval"
)

// maxUploadBytes caps multipart CSV uploads.
const maxUploadBytes = 64 << 20

// RegisterRoutes mounts the session lifecycle API routes.
func RegisterRoutes(r chi.Router, store *Store, svc *retrieval.Service) {
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", handleUpload(store, svc))
		r.Get("/", handleList(store))
		r.Get("/{id}", handleGet(store))
		r.Post("/{id}/query", handleQuery(store, svc))
		r.Get("/{id}/info", handleInfo(svc))
		r.Delete("/{id}", handleDelete(store, svc))
	})
}

func handleUpload(store *Store, svc *retrieval.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart upload")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file field is required")
			return
		}
		defer file.Close()

		table, err := dataset.LoadCSV(file, header.Filename)
		if err != nil {
			writeError(w, http.StatusBadRequest, "parse csv: "+err.Error())
			return
		}

		sess, err := store.Create(r.Context(), Session{
			Filename:    header.Filename,
			RowCount:    table.NumRows(),
			ColumnCount: table.NumCols(),
			Columns:     table.Columns,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		info, err := svc.Ingest(r.Context(), sess.ID, table, sess.Filename)
		if err != nil {
			// Keep the metadata store consistent with the index.
			store.Delete(r.Context(), sess.ID)
			writeError(w, http.StatusInternalServerError, "index dataset: "+err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"session":     sess,
			"chunk_count": info.Count,
		})
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := store.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if sessions == nil {
			sessions = []Session{}
		}
		writeJSON(w, http.StatusOK, sessions)
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if sess == nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

type queryRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

func handleQuery(store *Store, svc *retrieval.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Query == "" {
			writeError(w, http.StatusBadRequest, "query is required")
			return
		}

		results, qi, err := svc.Query(r.Context(), id, req.Query, req.TopK)
		if err != nil {
			if errors.Is(err, retrieval.ErrNotFound) {
				writeError(w, http.StatusNotFound, "session not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if results == nil {
			results = []string{}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"results": results,
			"intent":  qi,
		})
	}
}

func handleInfo(svc *retrieval.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, ok := svc.Info(r.Context(), chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSON(w, http.StatusOK, info)
	}
}

func handleDelete(store *Store, svc *retrieval.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		// Drop the index first: collection deletion is idempotent, so a
		// metadata-store failure here never strands the vector collection.
		indexed := svc.Delete(r.Context(), id)

		existed, err := store.Delete(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !existed && !indexed {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
