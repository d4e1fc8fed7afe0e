package handlers

import (
	"errors"
	"net/http"

	"leafdoctor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	sessionCookie = "session"

	msgInvalidCredentials = "Invalid credentials"
	msgUserExists         = "User exists"
)

// Single, shared credentials payload for both sign-up and login forms.
type authCredentials struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// bindFormOrUnprocessable binds form fields into dst and writes a 422 JSON
// on failure. Returns false if the request was already handled.
func (h *Handler) bindFormOrUnprocessable(c *gin.Context, dst any) bool {
	if err := c.ShouldBindWith(dst, binding.Form); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Sign up
// @Description  Creates the account, sets the session cookie and redirects to /.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Failure      400  {string}  string  "User exists"
// @Failure      422  {object}  map[string]string
// @Router       /signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input authCredentials
	if ok := h.bindFormOrUnprocessable(c, &input); !ok {
		return
	}

	sess, err := h.services.SignUp(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			if h.log != nil {
				h.log.Infow("auth_sign_up_conflict", "username", input.Username)
			}
			c.Data(http.StatusBadRequest, contentTypeHTML, []byte(msgUserExists))
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "sign up failed", "auth_sign_up_failed", err, "username", input.Username)
		return
	}

	h.setSessionCookie(c, sess.Token)
	c.Redirect(http.StatusFound, "/")
}

// @Summary      Log in
// @Description  Checks credentials, sets the session cookie and redirects to /.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Failure      401  {string}  string  "Invalid credentials"
// @Failure      422  {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindFormOrUnprocessable(c, &input); !ok {
		return
	}

	sess, err := h.services.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("auth_login_failed", "username", input.Username)
			}
			c.Data(http.StatusUnauthorized, contentTypeHTML, []byte(msgInvalidCredentials))
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "login failed", "auth_login_error", err, "username", input.Username)
		return
	}

	h.setSessionCookie(c, sess.Token)
	c.Redirect(http.StatusFound, "/")
}

// @Summary      Log out
// @Tags         auth
// @Success      302
// @Router       /logout [get]
func (h *Handler) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		h.services.Logout(token)
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// setSessionCookie issues an HttpOnly browser-session cookie. Secure and
// SameSite are not set.
func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}
