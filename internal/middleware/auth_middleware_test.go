package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"myFoodMarket/domain"
	"myFoodMarket/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type fakeUserFinder struct {
	users map[uuid.UUID]domain.User
}

func (f *fakeUserFinder) FindByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	return u, nil
}

func runRequest(t *testing.T, finder *fakeUserFinder, authHeader string, guards ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, domain.User, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUser domain.User
	var seenOK bool
	handler := func(c echo.Context) error {
		seenUser, seenOK = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	}

	chain := handler
	for i := len(guards) - 1; i >= 0; i-- {
		chain = guards[i](chain)
	}
	chain = Authenticate(finder)(chain)

	if err := chain(c); err != nil {
		t.Fatalf("handler chain: %v", err)
	}
	return rec, seenUser, seenOK
}

func TestAuthenticateMissingHeaderPassesAnonymous(t *testing.T) {
	utils.SetSigningKey("middleware-test-key")
	finder := &fakeUserFinder{users: map[uuid.UUID]domain.User{}}

	rec, _, ok := runRequest(t, finder, "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for anonymous request", rec.Code)
	}
	if ok {
		t.Error("anonymous request should carry no identity")
	}
}

func TestAuthenticateMalformedHeaderPassesAnonymous(t *testing.T) {
	utils.SetSigningKey("middleware-test-key")
	finder := &fakeUserFinder{users: map[uuid.UUID]domain.User{}}

	for _, header := range []string{"garbage", "Basic abc123", "Bearer", "Bearer not-a-jwt"} {
		rec, _, ok := runRequest(t, finder, header)
		if rec.Code != http.StatusOK || ok {
			t.Errorf("header %q: status = %d, identity = %v; want 200 and anonymous", header, rec.Code, ok)
		}
	}
}

func TestAuthenticateValidTokenAttachesUser(t *testing.T) {
	utils.SetSigningKey("middleware-test-key")

	userID := uuid.New()
	finder := &fakeUserFinder{users: map[uuid.UUID]domain.User{
		userID: {ID: userID, Email: "sofia@example.com", MembershipLevel: domain.MembershipGold},
	}}

	token, err := utils.GenerateJWT(userID)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	rec, seen, ok := runRequest(t, finder, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !ok {
		t.Fatal("expected identity on context")
	}
	if seen.ID != userID {
		t.Errorf("identity = %v, want %v", seen.ID, userID)
	}
}

func TestAuthenticateDeletedUserPassesAnonymous(t *testing.T) {
	utils.SetSigningKey("middleware-test-key")
	finder := &fakeUserFinder{users: map[uuid.UUID]domain.User{}}

	token, err := utils.GenerateJWT(uuid.New())
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	rec, _, ok := runRequest(t, finder, "Bearer "+token)
	if rec.Code != http.StatusOK || ok {
		t.Errorf("valid token for deleted user: status = %d, identity = %v; want 200 and anonymous", rec.Code, ok)
	}
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	utils.SetSigningKey("middleware-test-key")
	finder := &fakeUserFinder{users: map[uuid.UUID]domain.User{}}

	rec, _, _ := runRequest(t, finder, "", RequireUser())
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequirePlatinum(t *testing.T) {
	utils.SetSigningKey("middleware-test-key")

	silverID := uuid.New()
	platinumID := uuid.New()
	finder := &fakeUserFinder{users: map[uuid.UUID]domain.User{
		silverID:   {ID: silverID, MembershipLevel: domain.MembershipSilver},
		platinumID: {ID: platinumID, MembershipLevel: domain.MembershipPlatinum},
	}}

	rec, _, _ := runRequest(t, finder, "", RequireUser(), RequirePlatinum())
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", rec.Code)
	}

	silverToken, err := utils.GenerateJWT(silverID)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	rec, _, _ = runRequest(t, finder, "Bearer "+silverToken, RequireUser(), RequirePlatinum())
	if rec.Code != http.StatusForbidden {
		t.Errorf("silver member: status = %d, want 403", rec.Code)
	}

	platinumToken, err := utils.GenerateJWT(platinumID)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	rec, _, _ = runRequest(t, finder, "Bearer "+platinumToken, RequireUser(), RequirePlatinum())
	if rec.Code != http.StatusOK {
		t.Errorf("platinum member: status = %d, want 200", rec.Code)
	}
}
