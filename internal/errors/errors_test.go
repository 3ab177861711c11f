package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"workgen/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"no data", core.ErrNoData, CodeNoData, http.StatusConflict},
		{"schema", core.NewMissingColumnsError("EmpID", "JobSatisfaction"), CodeSchema, http.StatusUnprocessableEntity},
		{"duplicate", core.NewDuplicateProjectError("x"), CodeDuplicateProject, http.StatusConflict},
		{"pool", core.NewInsufficientPoolError(2, 5), CodeInsufficientPool, http.StatusConflict},
		{"empty column", core.NewEmptyColumnError("c"), CodeEmptyColumn, http.StatusUnprocessableEntity},
		{"parse", core.NewParseError("a.pdf", nil), CodeParseError, http.StatusUnprocessableEntity},
		{"session", core.NewSessionNotFoundError("abc"), CodeSessionNotFound, http.StatusNotFound},
		{"invalid", core.NewInvalidInputError("size", "must be positive"), CodeInvalidInput, http.StatusBadRequest},
		{"wrapped twice", fmt.Errorf("outer: %w", core.ErrNoData), CodeNoData, http.StatusConflict},
		{"unknown", stderrors.New("boom"), CodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomain(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.err.Error(), appErr.Message)
			assert.Equal(t, tt.status, HTTPStatus(appErr.Code))
			assert.True(t, stderrors.Is(appErr, tt.err))
		})
	}
}

func TestFromDomain_KeepsAppError(t *testing.T) {
	original := InvalidInput("bad")
	assert.Same(t, original, FromDomain(original))
	assert.Nil(t, FromDomain(nil))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	wrapped := Wrap(New(CodeDatabaseError, "conn refused"), "failed to archive")
	assert.Equal(t, CodeDatabaseError, GetCode(wrapped))
	assert.Equal(t, "failed to archive: conn refused", wrapped.Error())

	formatted := Wrapf(stderrors.New("locked"), "failed to create %s", "indexes")
	assert.Equal(t, "failed to create indexes: locked", formatted.Error())

	plain := Wrap(stderrors.New("x"), "context")
	assert.Equal(t, CodeInternalError, GetCode(plain))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("x")))
}

func TestWithCode(t *testing.T) {
	assert.Nil(t, WithCode(CodeDatabaseError, nil))

	cause := stderrors.New("connection refused")
	err := WithCode(CodeDatabaseError, cause)
	assert.Equal(t, CodeDatabaseError, GetCode(err))
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(FromDomain(err).Code))

	recoded := WithCode(CodeInvalidInput, New(CodeInternalError, "bad"))
	assert.Equal(t, CodeInvalidInput, GetCode(recoded))
	assert.Equal(t, "bad", recoded.Error())
}
