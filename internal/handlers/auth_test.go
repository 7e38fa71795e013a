package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"blog_app/internal/service"
)

func TestRegister(t *testing.T) {
	const valid = `{"username":"carol","email":"carol@example.com","password1":"s3cret!!","password2":"s3cret!!"}`

	cases := []struct {
		name      string
		body      string
		signUpErr error
		wantCode  int
		wantCalls int
	}{
		{"success", valid, nil, http.StatusFound, 1},
		{"passwords differ", `{"username":"carol","email":"carol@example.com","password1":"a","password2":"b"}`, nil, http.StatusBadRequest, 0},
		{"bad email", `{"username":"carol","email":"nope","password1":"a","password2":"a"}`, nil, http.StatusBadRequest, 0},
		{"username taken", valid, service.ErrUsernameTaken, http.StatusConflict, 1},
		{"invalid username", valid, &service.ValidationError{Field: "username", Reason: "bad"}, http.StatusBadRequest, 1},
		{"storage failure", valid, errors.New("disk full"), http.StatusInternalServerError, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := newMockAuth()
			auth.signUpID = 42
			auth.signUpErr = tc.signUpErr
			r := newTestRouter(&service.Service{Authorization: auth})

			w := doRequest(r, http.MethodPost, "/register/", strings.NewReader(tc.body), jsonHeader(""))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if auth.signUpCalls != tc.wantCalls {
				t.Fatalf("SignUp calls=%d, want %d", auth.signUpCalls, tc.wantCalls)
			}
			if tc.wantCode == http.StatusFound {
				if loc := w.Header().Get("Location"); loc != "/login/" {
					t.Fatalf("Location=%q", loc)
				}
				if auth.lastSignUp.Password != "s3cret!!" || auth.lastSignUp.Email != "carol@example.com" {
					t.Fatalf("unexpected sign-up input %+v", auth.lastSignUp)
				}
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("returns token and sets cookie", func(t *testing.T) {
		auth := newMockAuth()
		auth.genToken = "tok123"
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doRequest(r, http.MethodPost, "/login/", strings.NewReader(`{"username":"u","password":"p"}`), jsonHeader(""))
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		if m := decodeBody(t, w); m["token"] != "tok123" {
			t.Fatalf("expected token tok123, got %v", m["token"])
		}
		cookie := w.Header().Get("Set-Cookie")
		if !strings.Contains(cookie, "token=tok123") || !strings.Contains(cookie, "HttpOnly") {
			t.Fatalf("unexpected cookie %q", cookie)
		}
		if auth.lastGenUsername != "u" || auth.lastGenPassword != "p" {
			t.Fatalf("credentials not forwarded")
		}
	})

	t.Run("redirects to local next", func(t *testing.T) {
		auth := newMockAuth()
		auth.genToken = "tok"
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doRequest(r, http.MethodPost, "/login/?next=/post/new/", strings.NewReader(`{"username":"u","password":"p"}`), jsonHeader(""))
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/post/new/" {
			t.Fatalf("expected redirect to next, got %d %q", w.Code, w.Header().Get("Location"))
		}
	})

	t.Run("ignores foreign next", func(t *testing.T) {
		auth := newMockAuth()
		auth.genToken = "tok"
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doRequest(r, http.MethodPost, "/login/", strings.NewReader(`{"username":"u","password":"p","next":"//evil.example"}`), jsonHeader(""))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		for _, err := range []error{service.ErrUserNotFound, service.ErrInvalidPassword} {
			auth := newMockAuth()
			auth.genTokenErr = err
			r := newTestRouter(&service.Service{Authorization: auth})

			w := doRequest(r, http.MethodPost, "/login/", strings.NewReader(`{"username":"u","password":"p"}`), jsonHeader(""))
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("%v: expected 401, got %d", err, w.Code)
			}
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		r := newTestRouter(&service.Service{Authorization: newMockAuth()})
		w := doRequest(r, http.MethodPost, "/login/", strings.NewReader(`{"username":1}`), jsonHeader(""))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad body, got %d", w.Code)
		}
	})
}

func TestLogout_ClearsCookie(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: newMockAuth()})

	w := doRequest(r, http.MethodPost, "/logout/", nil, authHeader("alice-token"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if cookie := w.Header().Get("Set-Cookie"); !strings.Contains(cookie, "token=;") || !strings.Contains(cookie, "Max-Age=0") {
		t.Fatalf("expected token cookie to be cleared, got %q", cookie)
	}
	if _, ok := decodeBody(t, w)["user"]; ok {
		t.Fatalf("logout page must render anonymously")
	}
}

func TestSafeNext(t *testing.T) {
	cases := map[string]bool{
		"/":                true,
		"/post/1/update/":  true,
		"":                 false,
		"//evil.example":   false,
		"/\\evil.example":  false,
		"https://evil.com": false,
		"post/1/":          false,
	}
	for in, want := range cases {
		if got := safeNext(in); got != want {
			t.Errorf("safeNext(%q)=%v, want %v", in, got, want)
		}
	}
}
