package handlers

import (
	"errors"
	"net/http"

	"github.com/crisprlt/HabitFlow-sub000/internal/api/dto"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/user"
	"github.com/crisprlt/HabitFlow-sub000/pkg/security/auth"
	"github.com/gin-gonic/gin"
)

// OAuthHandler drives the GitHub login flow.
type OAuthHandler struct {
	oauth *auth.OAuthService
	users user.Service
}

func NewOAuthHandler(oauth *auth.OAuthService, users user.Service) *OAuthHandler {
	return &OAuthHandler{oauth: oauth, users: users}
}

// GitHubLogin redirects the browser to GitHub's authorization page.
func (h *OAuthHandler) GitHubLogin(c *gin.Context) {
	url, err := h.oauth.AuthURL()
	if err != nil {
		if errors.Is(err, auth.ErrProviderDisabled) {
			c.JSON(http.StatusNotImplemented, dto.Error("github login is not enabled"))
			return
		}
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GitHubCallback trades the authorization code for a GitHub identity and
// answers with an access token for the matching (or newly created) account.
func (h *OAuthHandler) GitHubCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		c.JSON(http.StatusBadRequest, dto.Error("state and code are required"))
		return
	}

	gh, err := h.oauth.Exchange(c.Request.Context(), state, code)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidState):
			c.JSON(http.StatusBadRequest, dto.Error("invalid or expired oauth state"))
		case errors.Is(err, auth.ErrNoVerifiedEmail):
			c.JSON(http.StatusBadRequest, dto.Error("github account has no verified email"))
		default:
			c.JSON(http.StatusBadGateway, dto.Error("github login failed"))
		}
		return
	}

	result, err := h.users.LoginWithGitHub(c.Request.Context(), gh)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.AuthToResponse(result)))
}
