package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryKind(t *testing.T) {
	cause := errors.New("boom")

	cases := []struct {
		err  *AppError
		code int
		kind Kind
	}{
		{Validation("bad"), http.StatusBadRequest, KindValidation},
		{ValidationWrap("bad", cause), http.StatusBadRequest, KindValidation},
		{NotFound("gone"), http.StatusNotFound, KindNotFound},
		{State("busy"), http.StatusConflict, KindState},
		{Authorization("nope"), http.StatusForbidden, KindAuthorization},
		{Authentication("who", cause), http.StatusUnauthorized, KindAuthentication},
		{Internal("oops", cause), http.StatusInternalServerError, KindInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code, tc.err.Message)
		assert.Equal(t, tc.kind, tc.err.Kind, tc.err.Message)
	}
}

func TestValidationWrapKeepsCause(t *testing.T) {
	cause := errors.New("odd length hex string")
	err := ValidationWrap("invalid signerKey", cause)

	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "invalid signerKey: odd length hex string")
	assert.True(t, Is(fmt.Errorf("register: %w", err), KindValidation))
	assert.False(t, Is(err, KindInternal))
	assert.False(t, Is(cause, KindValidation))
}
