package handlers

import (
	"context"
	"io"
	"net/http"

	"leafdoctor/internal/models"
	"leafdoctor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpSession models.Session
	signUpErr     error
	loginSession  models.Session
	loginErr      error
	sessions      map[string]string

	lastSignUpUsername string
	lastSignUpPassword string
	lastLoginUsername  string
	lastLoginPassword  string
	lastResolveToken   string
	loggedOut          []string
}

func (m *mockAuth) SignUp(username, password string) (models.Session, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpSession, m.signUpErr
}

func (m *mockAuth) Login(username, password string) (models.Session, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginSession, m.loginErr
}

func (m *mockAuth) Logout(token string) {
	m.loggedOut = append(m.loggedOut, token)
	delete(m.sessions, token)
}

func (m *mockAuth) Resolve(token string) (string, bool) {
	m.lastResolveToken = token
	u, ok := m.sessions[token]
	return u, ok
}

type mockClassifier struct {
	result   models.PredictionResult
	err      error
	calls    int
	lastBody []byte
}

func (m *mockClassifier) Classify(ctx context.Context, r io.Reader) (models.PredictionResult, error) {
	m.calls++
	m.lastBody, _ = io.ReadAll(r)
	return m.result, m.err
}

func (m *mockClassifier) Labels() []string {
	labels := make([]string, 0, len(m.result.All))
	for _, s := range m.result.All {
		labels = append(labels, s.Label)
	}
	return labels
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWithOptions(s, Options{})
}

func newTestRouterWithOptions(s *service.Service, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts)
	return h.InitRoutes()
}

func sessionCookieFor(token string) *http.Cookie {
	return &http.Cookie{Name: sessionCookie, Value: token}
}
