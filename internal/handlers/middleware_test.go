package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leafdoctor/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil, Options{})
	r.GET("/secure", h.sessionMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "username": c.GetString(ctxUsername)})
	})
	return r
}

func TestSessionMiddleware_RedirectsAnonymous(t *testing.T) {
	cases := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "no cookie"},
		{name: "empty cookie", cookie: sessionCookieFor("")},
		{name: "unknown token", cookie: sessionCookieFor("forged")},
		{name: "other cookie name", cookie: &http.Cookie{Name: "sess", Value: "tok"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{sessions: map[string]string{"tok": "alice"}}
			r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusFound {
				t.Fatalf("status: got %d, want 302 (body=%s)", w.Code, w.Body.String())
			}
			if loc := w.Header().Get("Location"); loc != "/login" {
				t.Fatalf("Location: got %q, want /login", loc)
			}
			if strings.Contains(w.Body.String(), "ok") {
				t.Fatalf("protected handler ran: %s", w.Body.String())
			}
		})
	}
}

func TestSessionMiddleware_SetsUsernameAndProceeds(t *testing.T) {
	auth := &mockAuth{sessions: map[string]string{"good-token": "alice"}}
	r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.AddCookie(sessionCookieFor("good-token"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"username":"alice"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if auth.lastResolveToken != "good-token" {
		t.Fatalf("Resolve got %q", auth.lastResolveToken)
	}
}

func TestProtectedRoutes_NeverLeakToAnonymous(t *testing.T) {
	auth := &mockAuth{sessions: map[string]string{}}
	cls := &mockClassifier{}
	r := newTestRouter(&service.Service{Authorization: auth, Classifier: cls})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "leaf.png")
	_, _ = fw.Write([]byte("png bytes"))
	_ = mw.Close()

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/", nil),
		httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(body.Bytes())),
	}
	requests[1].Header.Set("Content-Type", mw.FormDataContentType())

	for _, req := range requests {
		req.AddCookie(sessionCookieFor("stale"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
			t.Fatalf("%s %s: status=%d location=%q", req.Method, req.URL.Path, w.Code, w.Header().Get("Location"))
		}
		if strings.Contains(w.Body.String(), "Plant Pathology") {
			t.Fatalf("%s leaked the upload page", req.URL.Path)
		}
	}
	if cls.calls != 0 {
		t.Fatalf("classifier ran for anonymous request")
	}
}

func TestRequestLogger_RequestID(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if got := w.Header().Get(requestIDHeader); len(got) != 36 {
		t.Fatalf("expected generated uuid, got %q", got)
	}
}
