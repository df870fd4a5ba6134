package command

import (
	"net/http"
	"strings"
	"testing"

	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

func meHandler(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+testToken {
		jsonResponse(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"id": 1, "email": testEmail, "name": "Ana"})
}

func TestLogin_PersistsAcrossInvocations(t *testing.T) {
	h := newHarness(t, "badger")
	h.server.handle("GET /api/users/me", meHandler)

	res := h.mustRun("login", "--email", testEmail, "--password", testPassword)
	if !strings.Contains(res.stderr, "signed in as Ana") {
		t.Errorf("stderr = %q, want sign-in notice", res.stderr)
	}

	res = h.mustRun("--output", "json", "whoami")
	user := decode[domain.User](t, res.stdout)
	if user.Email != testEmail {
		t.Errorf("email = %q, want %q", user.Email, testEmail)
	}
	if got := h.server.last(t, "/api/users/me").Auth; got != "Bearer "+testToken {
		t.Errorf("Authorization = %q", got)
	}
}

func TestLogin_PromptsForPassword(t *testing.T) {
	h := newHarness(t, "memory")

	res := h.run(testPassword+"\n", "login", "--email", testEmail)
	if res.code != ExitOK {
		t.Fatalf("exit %d, stderr %q", res.code, res.stderr)
	}
	if !strings.Contains(res.stderr, "Password: ") {
		t.Errorf("stderr = %q, want password prompt", res.stderr)
	}
	body := h.server.last(t, "/api/auth/login").Body
	if body["password"] != testPassword || body["email"] != testEmail {
		t.Errorf("login body = %v", body)
	}
}

func TestLogin_RejectedCredentials(t *testing.T) {
	h := newHarness(t, "badger")

	res := h.run("", "login", "--email", testEmail, "--password", "wrong")
	if res.code != ExitAuth {
		t.Fatalf("exit %d, want %d", res.code, ExitAuth)
	}
	if !strings.Contains(res.stderr, "Invalid credentials") {
		t.Errorf("stderr = %q, want server message", res.stderr)
	}
	if strings.Contains(res.stderr, "expired") {
		t.Errorf("stderr = %q, a failed login is not an expired session", res.stderr)
	}

	res = h.mustRun("--output", "json", "whoami", "--offline")
	if v := decode[sessionView](t, res.stdout); v.SignedIn {
		t.Errorf("signed in after rejected login: %+v", v)
	}
}

func TestLogout(t *testing.T) {
	h := newHarness(t, "badger")
	h.login()

	res := h.mustRun("logout", "--force")
	if !strings.Contains(res.stderr, "signed out") {
		t.Errorf("stderr = %q", res.stderr)
	}

	res = h.run("", "whoami")
	if res.code != ExitAuth {
		t.Fatalf("whoami after logout: exit %d, want %d", res.code, ExitAuth)
	}
	if !strings.Contains(res.stderr, "not logged in") {
		t.Errorf("stderr = %q", res.stderr)
	}
	if n := len(h.server.calls("/api/users/me")); n != 0 {
		t.Errorf("%d requests sent without a session", n)
	}

	res = h.mustRun("logout")
	if !strings.Contains(res.stderr, "not signed in") {
		t.Errorf("second logout stderr = %q", res.stderr)
	}
}

func TestLogout_Declined(t *testing.T) {
	h := newHarness(t, "badger")
	h.login()

	res := h.run("n\n", "logout")
	if res.code != ExitOK {
		t.Fatalf("exit %d", res.code)
	}
	if !strings.Contains(res.stderr, "cancelled") {
		t.Errorf("stderr = %q", res.stderr)
	}

	res = h.mustRun("--output", "json", "whoami", "--offline")
	if v := decode[sessionView](t, res.stdout); !v.SignedIn {
		t.Errorf("session lost after declined logout: %+v", v)
	}
}

func TestWhoami_ExpiredSessionIsCleared(t *testing.T) {
	h := newHarness(t, "badger")
	h.server.handle("GET /api/users/me", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusUnauthorized, map[string]string{"error": "Token expired"})
	})
	h.login()

	res := h.run("", "whoami")
	if res.code != ExitAuth {
		t.Fatalf("exit %d, want %d", res.code, ExitAuth)
	}
	if !strings.Contains(res.stderr, "session expired") {
		t.Errorf("stderr = %q", res.stderr)
	}

	res = h.mustRun("--output", "json", "whoami", "--offline")
	v := decode[sessionView](t, res.stdout)
	if v.SignedIn || v.State != "loaded_without_token" {
		t.Errorf("session after 401 = %+v", v)
	}
}

func TestWhoami_Offline(t *testing.T) {
	h := newHarness(t, "memory")

	res := h.mustRun("--output", "json", "whoami", "--offline")
	v := decode[sessionView](t, res.stdout)
	if v.SignedIn || v.Storage != "memory" {
		t.Errorf("view = %+v", v)
	}
	if len(h.server.calls("/api/users/me")) != 0 {
		t.Error("offline whoami called the server")
	}
}

func TestRegister_SignsInWhenTokenReturned(t *testing.T) {
	h := newHarness(t, "badger")
	h.server.handle("GET /api/users/me", meHandler)
	h.server.handle("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusCreated, map[string]any{
			"token": testToken,
			"user":  map[string]any{"id": 2, "email": "new@trailguard.app"},
		})
	})

	res := h.mustRun("register", "--email", "new@trailguard.app", "--password", "Secret123!", "--name", "Nova")
	if !strings.Contains(res.stderr, "signed in as new@trailguard.app") {
		t.Errorf("stderr = %q", res.stderr)
	}
	body := h.server.last(t, "/api/auth/register").Body
	if body["name"] != "Nova" {
		t.Errorf("register body = %v", body)
	}

	h.mustRun("whoami")
}

func TestRegister_WithoutToken(t *testing.T) {
	h := newHarness(t, "memory")
	h.server.handle("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusCreated, map[string]any{"message": "User created"})
	})

	res := h.mustRun("register", "--email", "new@trailguard.app", "--password", "Secret123!")
	if !strings.Contains(res.stderr, "account created for new@trailguard.app") {
		t.Errorf("stderr = %q", res.stderr)
	}
	if body := h.server.last(t, "/api/auth/register").Body; body["name"] != nil {
		t.Errorf("empty name sent: %v", body)
	}
}

func TestWhoami_OfflineMasksToken(t *testing.T) {
	h := newHarness(t, "badger")
	h.login()

	res := h.mustRun("-o", "json", "whoami", "--offline")
	v := decode[sessionView](t, res.stdout)
	if !v.SignedIn || v.State != "loaded_with_token" {
		t.Fatalf("view = %+v", v)
	}
	if v.Token == testToken || !strings.HasPrefix(v.Token, testToken[:4]) {
		t.Errorf("token = %q, want masked", v.Token)
	}
	if v.Expires != nil {
		t.Errorf("expiresAt = %v for a token without exp", v.Expires)
	}
	if strings.Contains(res.stdout, testToken) {
		t.Error("full token printed")
	}
}
