package upload

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	maxUploadBytes = 25 << 20 // backend rejects anything larger anyway

	missingFileMsg = "Champ 'file' manquant dans la requête"
	uploadFailMsg  = "Le téléversement a échoué"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.uploader == nil {
		s.writeError(w, http.StatusInternalServerError, ConfigurationS3MissingMsg)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, missingFileMsg)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, missingFileMsg)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := uuid.New().String() + filepath.Ext(header.Filename)

	url, err := s.uploader.Upload(r.Context(), key, file, contentType)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("upload to object storage failed")
		s.writeError(w, http.StatusInternalServerError, uploadFailMsg)
		return
	}

	s.log.Info().Str("key", key).Str("filename", header.Filename).Msg("file uploaded")
	s.writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Warn().Err(err).Msg("writing response failed")
	}
}
