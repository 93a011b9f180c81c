package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	t.Run("passes through API codes", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
		assert.Equal(t, "ERR_CUSTOM", NormalizeErrorCode("ERR_CUSTOM"))
	})

	t.Run("maps known domain codes", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
		assert.Equal(t, ErrCodeInvalidCredentials, NormalizeErrorCode("INVALID_CREDENTIALS"))
		assert.Equal(t, ErrCodeForbidden, NormalizeErrorCode("ACCOUNT_DEACTIVATED"))
		assert.Equal(t, ErrCodeInvalidState, NormalizeErrorCode("INVALID_STATE"))
		assert.Equal(t, ErrCodeConflict, NormalizeErrorCode("DUPLICATE_COST_CENTER"))
		assert.Equal(t, ErrCodeConflict, NormalizeErrorCode("ALREADY_ENROLLED"))
	})

	t.Run("classifies constructor rejections as validation", func(t *testing.T) {
		assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("INVALID_MASSAR_CODE"))
		assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("WEAK_PASSWORD"))
	})

	t.Run("classifies the rest as business rules", func(t *testing.T) {
		assert.Equal(t, ErrCodeBusinessRule, NormalizeErrorCode("OVERPAYMENT"))
		assert.Equal(t, ErrCodeBusinessRule, NormalizeErrorCode("BUDGET_EXCEEDED"))
		assert.Equal(t, ErrCodeBusinessRule, NormalizeErrorCode("CAPACITY_EXCEEDED"))
		assert.Equal(t, ErrCodeBusinessRule, NormalizeErrorCode("TOO_LATE"))
	})
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeTokenExpired))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeBusinessRule))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeConcurrencyConflict))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_SOMETHING_ELSE"))
}
