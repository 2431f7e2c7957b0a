package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"leafy_back_end/internal/service"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, err)
	return w
}

func TestRespondErrorStatusFamilies(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrProductNotFound, http.StatusNotFound},
		{service.ErrItemNotFound, http.StatusNotFound},
		{service.ErrOrderNotFound, http.StatusNotFound},
		{service.ErrInvalidQuantity, http.StatusBadRequest},
		{service.ErrEmptyOrder, http.StatusBadRequest},
		{service.ErrUnauthorized, http.StatusForbidden},
		{service.ErrAlreadyPaid, http.StatusConflict},
		{service.ErrAlreadyDelivered, http.StatusConflict},
		{service.ErrNotPaid, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := respond(tc.err)
		assert.Equal(t, tc.code, w.Code, "erreur %v", tc.err)
		assert.Contains(t, w.Body.String(), "error")
	}
}

func TestRespondErrorUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("load order: %w", service.ErrOrderNotFound)

	w := respond(wrapped)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	w := respond(errors.New("mongo: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "mongo")
}
