package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusBadRequest,
		CodeInvalidState: http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %s", code)
	}

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Code("SOMETHING_ELSE")))
}

func TestCodeOf(t *testing.T) {
	err := New(CodeConflict, "duplicate")
	assert.Equal(t, CodeConflict, CodeOf(err))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, CodeConflict, CodeOf(wrapped))

	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestMessageOf(t *testing.T) {
	err := New(CodeNotFound, "Order not found")
	assert.Equal(t, "Order not found", MessageOf(err))

	assert.Equal(t, "plain", MessageOf(errors.New("plain")))
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeInternal, cause, "failed to save")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to save")
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "failed to save", err.Message())
}

func TestFromStoreRemapsConstraints(t *testing.T) {
	unique := errors.New("UNIQUE constraint failed: reviews.user_id, reviews.product_id")
	assert.Equal(t, CodeConflict, FromStore(unique, "failed").Code())

	fk := errors.New("FOREIGN KEY constraint failed")
	assert.Equal(t, CodeValidation, FromStore(fk, "failed").Code())

	plain := errors.New("database is locked")
	remapped := FromStore(plain, "Failed to save order")
	assert.Equal(t, CodeInternal, remapped.Code())
	assert.Equal(t, "Failed to save order", remapped.Message())
}

func TestFromStorePreservesCodedErrors(t *testing.T) {
	coded := New(CodeNotFound, "Product not found")
	got := FromStore(coded, "unused")
	assert.Equal(t, CodeNotFound, got.Code())
	assert.Equal(t, "Product not found", got.Message())
}

func TestFromStoreNil(t *testing.T) {
	assert.Nil(t, FromStore(nil, "unused"))
}
