package api

import (
	"net/http"

	"github.com/beginvegan/backend/internal/middleware"
	"github.com/beginvegan/backend/internal/service"
	"github.com/beginvegan/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  service.IAuthService
	oauthService service.IOAuthService
	userService  service.IUserService
}

func NewAuthHandler(authService service.IAuthService, oauthService service.IOAuthService, userService service.IUserService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		oauthService: oauthService,
		userService:  userService,
	}
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req types.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	resp, err := h.authService.SignIn(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req types.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, tokens)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.authService.SignOut(c.Request.Context(), middleware.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	message(c, "signed out")
}

// SignUp completes the profile of a user created by the first OAuth login.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req types.SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, err)
		return
	}
	file, err := formFile(c, "file")
	if err != nil {
		fail(c, err)
		return
	}

	user, err := h.userService.CompleteSignUp(c.Request.Context(), middleware.UserID(c), req, file)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

// KakaoAuthorize redirects to Kakao's consent page.
func (h *AuthHandler) KakaoAuthorize(c *gin.Context) {
	url, err := h.oauthService.AuthorizeURL()
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

func (h *AuthHandler) KakaoCallback(c *gin.Context) {
	resp, err := h.oauthService.Callback(c.Request.Context(), c.Query("code"), c.Query("state"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}
