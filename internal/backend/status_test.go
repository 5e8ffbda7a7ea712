package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aura-webinar/portal/internal/catalog"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: %w", ErrUnauthorized, &APIError{Status: 401}), http.StatusUnauthorized},
		{fmt.Errorf("get: %w", catalog.ErrNotFound), http.StatusNotFound},
		{catalog.ErrAlreadyRegistered, http.StatusConflict},
		{fmt.Errorf("GET /webinars: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{&APIError{Status: http.StatusUnprocessableEntity, Message: "bad"}, http.StatusUnprocessableEntity},
		{&APIError{Status: http.StatusInternalServerError}, http.StatusBadGateway},
		{errors.New("connection refused"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), "%v", tc.err)
	}
}
