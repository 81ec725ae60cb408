package gratitude

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/gratitude-api/pkg/apperr"
	"github.com/taiwoajasa245/gratitude-api/pkg/response"
	"github.com/taiwoajasa245/gratitude-api/pkg/util"
)

type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return Handler{service: service, log: log}
}

func (h *Handler) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := util.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	note, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, NewNoteResponse(*note))
}

func (h *Handler) ListNotesHandler(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, NewNoteResponses(notes))
}

func (h *Handler) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, map[string]bool{"ok": true})
}

func (h *Handler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, map[string]string{"message": "Gratitude notes reset successfully"})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperr.ErrStorage) {
		h.log.Error("gratitude request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	response.FromError(w, err)
}
