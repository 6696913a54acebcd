package auth_test

import (
	"testing"

	auth "github.com/goliatone/go-session-auth"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidAuthority(t *testing.T) {
	assert.True(t, auth.IsValidAuthority("ADMIN"))
	assert.True(t, auth.IsValidAuthority("USER"))
	assert.True(t, auth.IsValidAuthority("admin"))
	assert.True(t, auth.IsValidAuthority("  user  "))
	assert.False(t, auth.IsValidAuthority("ROOT"))
	assert.False(t, auth.IsValidAuthority(""))
}

func TestRoleRegistryLookup(t *testing.T) {
	registry := auth.NewRoleRegistry().
		Require("GET", "/api/users", auth.AuthorityAdmin).
		Require("GET", "/api/profile", auth.AuthorityUser, auth.AuthorityAdmin).
		Require("POST", "/api/logout")

	assert.Equal(t, []string{"ADMIN"}, registry.Lookup("GET", "/api/users"))
	assert.Equal(t, []string{"USER", "ADMIN"}, registry.Lookup("GET", "/api/profile"))

	// method is part of the key
	assert.Empty(t, registry.Lookup("POST", "/api/users"))
	// declared with no roles: authentication only
	assert.Empty(t, registry.Lookup("POST", "/api/logout"))
	// undeclared route
	assert.Empty(t, registry.Lookup("GET", "/api/nothing"))
}

func TestRoleRegistryNormalizesDeclarations(t *testing.T) {
	registry := auth.NewRoleRegistry().
		Require("get", "/api/users", " admin ", "")

	assert.Equal(t, []string{"ADMIN"}, registry.Lookup("GET", "/api/users"))
}

type roleGuardCase struct {
	name      string
	authority auth.Authority
	required  []string
	allowed   bool
}

func runRoleGuard(t *testing.T, tc roleGuardCase, principal *auth.Principal) (nextRan bool, guardErr error) {
	t.Helper()

	registry := auth.NewRoleRegistry().Require("GET", "/api/x", tc.required...)

	errorHandler := func(c router.Context, err error) error {
		guardErr = err
		return nil
	}

	mw := auth.RequireRoles(registry, "GET", "/api/x", errorHandler)

	ctx := new(MockContext)
	if principal != nil {
		ctx.On("Locals", auth.PrincipalLocalsKey).Return(principal)
	} else {
		ctx.On("Locals", auth.PrincipalLocalsKey).Return(nil)
	}

	err := mw(func(c router.Context) error {
		nextRan = true
		return nil
	})(ctx)
	require.NoError(t, err)
	return nextRan, guardErr
}

func TestRequireRoles(t *testing.T) {
	cases := []roleGuardCase{
		{"admin on admin route", auth.AuthorityAdmin, []string{"ADMIN"}, true},
		{"user on admin route", auth.AuthorityUser, []string{"ADMIN"}, false},
		{"user on shared route", auth.AuthorityUser, []string{"USER", "ADMIN"}, true},
		{"admin on shared route", auth.AuthorityAdmin, []string{"USER", "ADMIN"}, true},
		{"case insensitive claim", "admin", []string{"ADMIN"}, true},
		{"padded claim", "  user ", []string{"USER"}, true},
		{"empty required set passes anyone", auth.AuthorityUser, nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			principal := &auth.Principal{ID: 1, Username: "doyle", Authority: tc.authority}
			nextRan, guardErr := runRoleGuard(t, tc, principal)

			if tc.allowed {
				assert.True(t, nextRan)
				assert.NoError(t, guardErr)
			} else {
				assert.False(t, nextRan)
				assert.ErrorIs(t, guardErr, auth.ErrForbidden)
			}
		})
	}
}

func TestRequireRolesNoPrincipal(t *testing.T) {
	tc := roleGuardCase{required: []string{"ADMIN"}}
	nextRan, guardErr := runRoleGuard(t, tc, nil)

	assert.False(t, nextRan)
	assert.ErrorIs(t, guardErr, auth.ErrUnableToFindSession)
}

func TestPrincipalAuthorities(t *testing.T) {
	p := &auth.Principal{Authority: "user"}
	assert.Equal(t, []string{"USER"}, p.Authorities())
	assert.True(t, p.HasAuthority("User"))
	assert.False(t, p.HasAuthority("ADMIN"))

	multi := &auth.Principal{Authority: "user, admin"}
	assert.Equal(t, []string{"USER", "ADMIN"}, multi.Authorities())
	assert.True(t, multi.HasAuthority("admin"))

	var nilPrincipal *auth.Principal
	assert.Empty(t, nilPrincipal.Authorities())
}
