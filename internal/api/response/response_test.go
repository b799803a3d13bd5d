package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/planora/planora-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("invalid invitation token: %w", domain.ErrNotFound), http.StatusNotFound},
		{"expired invitation hides as not found", domain.ErrInvitationExpired, http.StatusNotFound},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"owner immutable", domain.ErrOwnerImmutable, http.StatusConflict},
		{"slug taken", domain.ErrSlugTaken, http.StatusConflict},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FromError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
