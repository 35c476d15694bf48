package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthtech-api/pkg/apperror"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestErrorRenderer_StatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperror.NotFound("relation not found"), http.StatusNotFound},
		{apperror.Conflict("duplicate"), http.StatusConflict},
		{apperror.Forbidden("no access"), http.StatusForbidden},
		{apperror.InvalidState("not pending"), http.StatusBadRequest},
		{apperror.Validation("bad", map[string]string{"email": "email is required"}), http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	r := NewErrorRenderer(quietLogger(), false)
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.Render(rec, tt.err)
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}

func TestErrorRenderer_HidesInternalOutsideDevelopment(t *testing.T) {
	rec := httptest.NewRecorder()
	NewErrorRenderer(quietLogger(), false).Render(rec, errors.New("password=secret"))

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "Internal server error", body.Message)

	rec = httptest.NewRecorder()
	NewErrorRenderer(quietLogger(), true).Render(rec, errors.New("password=secret"))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "password=secret", body.Message)
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(2, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 0, NewMeta(1, 0, 10).TotalPages)
}
