package handlers

import (
	"embed"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

const (
	pageLogin  = "login.html"
	pageSignup = "signup.html"
	pageIndex  = "index.html"

	contentTypeHTML = "text/html; charset=utf-8"
)

//go:embed pages/*.html
var defaultPages embed.FS

// loadPage prefers a regular file of the same name in the static directory,
// read fresh on every call, and falls back to the embedded default.
func (h *Handler) loadPage(name string) ([]byte, error) {
	if h.opts.StaticDir != "" {
		path := filepath.Join(h.opts.StaticDir, name)
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			return os.ReadFile(path)
		}
	}
	return defaultPages.ReadFile("pages/" + name)
}

func (h *Handler) renderPage(c *gin.Context, name string) {
	body, err := h.loadPage(name)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load page", "page_load_failed", err, "page", name)
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, body)
}

// @Summary      Login page
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string  "HTML"
// @Router       /login [get]
func (h *Handler) loginPage(c *gin.Context) {
	h.renderPage(c, pageLogin)
}

// @Summary      Sign-up page
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string  "HTML"
// @Router       /signup [get]
func (h *Handler) signUpPage(c *gin.Context) {
	h.renderPage(c, pageSignup)
}

// @Summary      Upload page
// @Description  Redirects to /login without a valid session cookie.
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string  "HTML"
// @Success      302
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	h.renderPage(c, pageIndex)
}
