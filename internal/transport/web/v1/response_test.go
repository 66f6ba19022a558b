package v1

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"bad params", domain.ErrBadParams, http.StatusBadRequest, domain.ErrCodeBadParams},
		{"unauthorized", domain.ErrUnauth, http.StatusUnauthorized, domain.ErrCodeUnauth},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, domain.ErrCodeForbidden},
		{"not found", domain.ErrNotFound, http.StatusNotFound, domain.ErrCodeNotFound},
		{"too large", domain.ErrTooLarge, http.StatusRequestEntityTooLarge, domain.ErrCodeTooLarge},
		{"unsupported media", domain.ErrUnsupportedMedia, http.StatusUnsupportedMediaType, domain.ErrCodeUnsupportedMedia},
		{"store timeout", domain.ErrStoreTimeout, http.StatusGatewayTimeout, domain.ErrCodeStoreTimeout},
		{"store error", domain.ErrStore, http.StatusInternalServerError, domain.ErrCodeUnexpected},
		{"unexpected", domain.ErrUnexpected, http.StatusInternalServerError, domain.ErrCodeUnexpected},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, domain.ErrCodeUnexpected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := MapDomainError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestMapDomainErrorUnwrapsWrappedSentinels(t *testing.T) {
	wrapped := fmt.Errorf("%w: context deadline exceeded", domain.ErrStoreTimeout)
	status, env := MapDomainError(wrapped)
	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, domain.ErrCodeStoreTimeout, env.Error.Code)
}

func TestPathAndQueryIDValidation(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/api/v1/applications/12?typeId=3", nil)
	r.SetPathValue("id", "12")

	id, err := PathID(r, "id")
	assert.NoError(t, err)
	assert.EqualValues(t, 12, id)

	typeID, err := QueryID(r, "typeId")
	assert.NoError(t, err)
	assert.EqualValues(t, 3, typeID)

	// отсутствующий query-параметр — ноль без ошибки
	missing, err := QueryID(r, "other")
	assert.NoError(t, err)
	assert.Zero(t, missing)

	r.SetPathValue("id", "-4")
	_, err = PathID(r, "id")
	assert.ErrorIs(t, err, domain.ErrBadParams)
}
