package scripture

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

func (h *Handler) CreateScriptureHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateScriptureRequest
	if err := util.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	entry, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, NewScriptureResponse(*entry))
}

func (h *Handler) ListScripturesHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, NewScriptureResponses(entries))
}

func (h *Handler) DeleteScriptureHandler(w http.ResponseWriter, r *http.Request) {
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

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperr.ErrStorage) {
		h.log.Error("scripture request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	response.FromError(w, err)
}
