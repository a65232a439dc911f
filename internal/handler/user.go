package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/forgo/bookshelf/internal/middleware"
	"github.com/forgo/bookshelf/internal/model"
)

// UserFacade is the composite person/book surface served over HTTP
type UserFacade interface {
	CreateWithBooks(ctx context.Context, personReq *model.PersonRequest, bookReqs []*model.BookRequest) (*model.PersonBooksResponse, error)
	UpdateWithBooks(ctx context.Context, personReq *model.UpdatePersonRequest, bookReqs []*model.UpdateBookRequest) (*model.PersonBooksResponse, error)
	GetWithBooks(ctx context.Context, personID int64) (*model.PersonBooksResponse, error)
	DeleteWithBooks(ctx context.Context, personID int64) error
}

// UserHandler handles the /user endpoints
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler creates a new user handler
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{
		facade: facade,
	}
}

// Create handles POST /user/create - person with books
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.PersonBooksRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	resp, err := h.facade.CreateWithBooks(r.Context(), req.UserRequest, req.BookRequests)
	if err != nil {
		h.handleError(w, r, err, "create user")
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

// Update handles PUT /user/update - person and its books by id
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdatePersonBooksRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	resp, err := h.facade.UpdateWithBooks(r.Context(), req.UserRequest, req.BookRequests)
	if err != nil {
		h.handleError(w, r, err, "update user")
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

// Get handles GET /user/get/{id} - person id with its book ids
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := h.facade.GetWithBooks(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err, "get user")
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /user/delete/{id} - person and all its books
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.facade.DeleteWithBooks(r.Context(), id); err != nil {
		h.handleError(w, r, err, "delete user")
		return
	}

	WriteEmpty(w, http.StatusOK)
}

func (h *UserHandler) handleError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	pd := MapServiceErrorWithContext(err, operation)
	if pd.Status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("operation", operation),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
	}
	WriteError(w, pd)
}

// pathID parses the {id} segment; a malformed or non-positive id is a 400
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		WriteError(w, model.NewBadRequestError("id must be an integer"))
		return 0, false
	}
	if id <= 0 {
		WriteError(w, model.NewBadRequestError("id must be positive"))
		return 0, false
	}
	return id, true
}
