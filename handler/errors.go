package handler

import (
	"errors"
	"net/http"

	"github.com/pr-poehali-dev/mini-magazin-site/draft"
	"github.com/pr-poehali-dev/mini-magazin-site/service"
	"github.com/pr-poehali-dev/mini-magazin-site/store"
)

func mapErrorCode(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidProduct):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, draft.ErrDraftOpen),
		errors.Is(err, draft.ErrNoDraft):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
