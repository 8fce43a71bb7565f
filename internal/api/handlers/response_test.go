package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind domain.ErrorKind
		want int
	}{
		{domain.KindNotFound, http.StatusNotFound},
		{domain.KindForbidden, http.StatusForbidden},
		{domain.KindConflict, http.StatusConflict},
		{domain.KindInvalidTransition, http.StatusConflict},
		{domain.KindValidationFailed, http.StatusBadRequest},
		{domain.KindUnprocessable, http.StatusUnprocessableEntity},
		{domain.KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := fmt.Errorf("%w: details", domain.NewError(tt.kind, "x: failed"))
			assert.Equal(t, tt.want, StatusFor(err))
		})
	}

	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("plain")))
}

func TestRespondDomainError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("%w: pq: password authentication failed", domain.NewError(domain.KindInternal, "x: internal")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, msgInternalError, body.Error)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &v)
	assert.ErrorIs(t, err, ErrEmptyBody)

	err = DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`)), &v)
	assert.Error(t, err)

	require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`)), &v))
	assert.Equal(t, "a", v.Name)
}

func TestPathInt64(t *testing.T) {
	for raw, ok := range map[string]bool{"12": true, "0": false, "-1": false, "x": false} {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": raw})
		_, err := PathInt64(req, "id")
		assert.Equal(t, ok, err == nil, raw)
	}
}

func TestRespondError_KeepsMessageReadable(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, `booking: invalid status transition: completed -> confirmed <"x">`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `completed -> confirmed <\"x\">`)
	assert.NotContains(t, rec.Body.String(), `\u003e`)
}
