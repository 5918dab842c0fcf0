package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/logger"
	"github.com/jonathan/cv-builder/internal/photo"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/types"
)

// AddEntryResponse is returned when an entry is added.
type AddEntryResponse struct {
	ID       string         `json:"id"`
	Document types.Document `json:"document"`
}

// PhotoResponse is returned by a photo upload. Ignored is set when the upload was not an image.
type PhotoResponse struct {
	Document types.Document `json:"document"`
	Ignored  bool           `json:"ignored,omitempty"`
}

// currentSession resolves the caller's editing session, writing 401 when it is gone.
func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sessionID, err := middleware.GetSessionID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		err := &ErrSessionNotFound{SessionID: sessionID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil, false
	}
	userID, err := middleware.GetUserID(r)
	if user := sess.User(); err != nil || user == nil || user.ID != userID {
		err := &ErrSessionNotFound{SessionID: sessionID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil, false
	}
	return sess, true
}

// sectionParam parses {section}, writing 404 for unknown sections.
func (s *Server) sectionParam(w http.ResponseWriter, r *http.Request) (document.Section, bool) {
	section, err := document.ParseSection(r.PathValue("section"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return "", false
	}
	return section, true
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Document())
}

// handlePutPersonalInfo replaces PersonalInfo. The stored photo is kept unless the body
// carries an image data URL of its own.
func (s *Server) handlePutPersonalInfo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	var info types.PersonalInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc := sess.Apply(func(d types.Document) types.Document {
		if !rendering.IsImageDataURL(info.Photo) {
			info.Photo = d.PersonalInfo.Photo
		}
		return s.editor.WithPersonalInfo(d, info)
	})
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	section, ok := s.sectionParam(w, r)
	if !ok {
		return
	}

	var id string
	doc := sess.Apply(func(d types.Document) types.Document {
		d, id = s.editor.AddEntry(d, section)
		return d
	})
	s.jsonResponse(w, http.StatusCreated, AddEntryResponse{ID: id, Document: doc})
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	section, ok := s.sectionParam(w, r)
	if !ok {
		return
	}

	var req types.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if err := document.CheckField(section, req.Field); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := document.CheckValue(req.Field, req.Value); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	id := r.PathValue("id")
	doc := sess.Apply(func(d types.Document) types.Document {
		return s.editor.UpdateEntry(d, section, id, req.Field, req.Value)
	})
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	section, ok := s.sectionParam(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	doc := sess.Apply(func(d types.Document) types.Document {
		return s.editor.RemoveEntry(d, section, id)
	})
	s.jsonResponse(w, http.StatusOK, doc)
}

// handlePutPhoto stores the raw request body as the photo. Bodies that are not images are
// ignored and the document is returned unchanged.
func (s *Server) handlePutPhoto(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	dataURL, isImage, err := photo.Ingest(r.Body, s.maxPhotoBytes)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if !isImage {
		logger.Debug().Msg("ignored non-image photo upload")
		s.jsonResponse(w, http.StatusOK, PhotoResponse{Document: sess.Document(), Ignored: true})
		return
	}

	doc := sess.Apply(func(d types.Document) types.Document {
		return s.editor.WithPhoto(d, dataURL)
	})
	s.jsonResponse(w, http.StatusOK, PhotoResponse{Document: doc})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	html, err := rendering.RenderDocument(sess.Document())
	if err != nil {
		logger.Error().Err(err).Msg("failed to render preview")
		s.errorResponse(w, http.StatusInternalServerError, "Failed to render preview")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleExport exports a snapshot of the document. Edits made while it runs are not included,
// and a failed export leaves the session untouched.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	artifact, err := s.exporter.Export(r.Context(), sess.Document(), r.URL.Query().Get("filename"))
	if err != nil {
		var exportErr *export.ExportError
		if errors.As(err, &exportErr) {
			logger.Error().Err(err).Str("stage", exportErr.Stage).Msg("export failed")
		}
		s.errorResponse(w, HTTPStatus(err), fmt.Sprintf("Failed to export PDF: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}))
	w.Header().Set("X-CV-Pages", fmt.Sprintf("%d", artifact.Pages))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Data)
}
