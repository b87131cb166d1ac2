package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-scorer/internal/config"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/schemas"
	"github.com/jonathan/ats-scorer/internal/types"
)

func TestBuildTenants(t *testing.T) {
	tenants, err := BuildTenants(testConfig(), TenantDeps{})
	require.NoError(t, err)

	def, ok := tenants.Lookup("")
	require.True(t, ok)
	assert.Equal(t, types.DefaultWeights(), def.Engine().Weights())

	acme, ok := tenants.Lookup("Acme")
	require.True(t, ok)
	assert.Equal(t, 0.60, acme.Engine().Weights().SkillsMatch)
	assert.NotSame(t, def.Engine(), acme.Engine())

	_, ok = tenants.Lookup("globex")
	assert.False(t, ok)

	assert.Equal(t, []string{"acme"}, tenants.Names())
}

func TestBuildTenants_InvalidWeights(t *testing.T) {
	cfg := testConfig()
	cfg.Tenants["broken"] = types.ScoringWeights{SkillsMatch: 2}

	_, err := BuildTenants(cfg, TenantDeps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `tenant "broken"`)
}

func TestBuildTenants_NoTenants(t *testing.T) {
	tenants, err := BuildTenants(&config.Config{Weights: types.DefaultWeights()}, TenantDeps{})
	require.NoError(t, err)
	assert.Empty(t, tenants.Names())
	_, ok := tenants.Lookup("")
	assert.True(t, ok)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ErrValidation{Field: "body", Message: "bad"}, http.StatusBadRequest},
		{"input", &pipeline.InputError{Field: "resume", Err: errors.New("required")}, http.StatusBadRequest},
		{"schema", &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "skills", Message: "bad"}}}, http.StatusBadRequest},
		{"unknown tenant", &ErrUnknownTenant{Tenant: "globex"}, http.StatusForbidden},
		{"forbidden", &ErrForbidden{Message: "tenant tokens are read-only"}, http.StatusForbidden},
		{"not found", &ErrNotFound{Resource: "scoring record", ID: "abc"}, http.StatusNotFound},
		{"no store", fmt.Errorf("history: %w", ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestNewErrorBody_HidesInternalErrors(t *testing.T) {
	body := newErrorBody(errors.New("pq: password authentication failed"))
	assert.Equal(t, "internal server error", body.Error)

	body = newErrorBody(&ErrUnknownTenant{Tenant: "globex"})
	assert.Equal(t, "unknown tenant: globex", body.Error)
}
