// Package auth contains handler relate to log in and create user account
package auth

import (
	"cofoundry-backend/internal/database"
	"cofoundry-backend/internal/model"
	"cofoundry-backend/internal/utilities"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	// Auto load .env file
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// Provider names accepted by OauthLoginHandler
const (
	ProviderGoogle = "google"
	ProviderGithub = "github"
)

// Identity is the provider-independent result of a code exchange.
type Identity struct {
	ProviderUID string
	Name        string
	Email       string
	PhotoURL    string
	// GitHub login name; empty for Google sign-ins
	Username string
}

// OauthLoginHandler struct holds the database connection and OAuth2
// configuration for handling OAuth login with one provider. The same handler
// serves all three role routes; only the profile kind differs.
type OauthLoginHandler struct {
	DB               *database.DBinstanceStruct
	OauthConfig      *oauth2.Config
	UserInfoEndpoint string
	Provider         string
}

type loginRequest struct {
	Code string `json:"code"`
	// Client-observed failure before any code was issued, e.g. popup_blocked.
	Error string `json:"error"`
}

// NewOauthLoginHandler creates a new instance of OauthLoginHandler with the
// provided database connection and OAuth2 configuration.
func NewOauthLoginHandler(db *database.DBinstanceStruct, oauthConfig *oauth2.Config, userInfoEndpoint string, provider string) *OauthLoginHandler {
	return &OauthLoginHandler{
		DB:               db,
		OauthConfig:      oauthConfig,
		UserInfoEndpoint: userInfoEndpoint,
		Provider:         provider,
	}
}

// DeveloperLoginHandler signs a user in for the developer surface.
// @Summary Exchange an OAuth code and sign in as a developer
// @Description Creates the base user on first sign-in. has_profile tells the client whether a developer profile already exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param Code body loginRequest true "Authorization code from the provider"
// @Success 200 {object} model.LoginResponse "Login success"
// @Success 201 {object} model.LoginResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Code exchange or userinfo fetch failed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/{provider}/developer [post]
func (h *OauthLoginHandler) DeveloperLoginHandler(c *gin.Context) {
	h.loginOrRegister(model.KindDeveloper, c)
}

// RecruiterLoginHandler signs a user in for the recruiter surface.
// @Summary Exchange an OAuth code and sign in as a recruiter
// @Description Creates the base user on first sign-in. has_profile tells the client whether a recruiter profile already exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param Code body loginRequest true "Authorization code from the provider"
// @Success 200 {object} model.LoginResponse "Login success"
// @Success 201 {object} model.LoginResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Code exchange or userinfo fetch failed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/{provider}/recruiter [post]
func (h *OauthLoginHandler) RecruiterLoginHandler(c *gin.Context) {
	h.loginOrRegister(model.KindRecruiter, c)
}

// InvestorLoginHandler signs a user in for the investor surface.
// @Summary Exchange an OAuth code and sign in as an investor
// @Description Creates the base user on first sign-in. has_profile tells the client whether an investor profile already exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param Code body loginRequest true "Authorization code from the provider"
// @Success 200 {object} model.LoginResponse "Login success"
// @Success 201 {object} model.LoginResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Code exchange or userinfo fetch failed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/{provider}/investor [post]
func (h *OauthLoginHandler) InvestorLoginHandler(c *gin.Context) {
	h.loginOrRegister(model.KindInvestor, c)
}

// Callback retrieves a query parameter named "code" from the request and
// returns it in a JSON response.
// @Summary Echo the authorization code back to the client
// @Tags Auth
// @Produce json
// @Param Code query string false "Authorization code from the provider"
// @Success 200 {object} loginRequest
// @Router /auth/google/callback [get]
func (h *OauthLoginHandler) Callback(c *gin.Context) {
	aCode := c.Query("code")
	c.JSON(http.StatusOK, loginRequest{
		Code: aCode,
	})
}

func (h *OauthLoginHandler) getIdentity(c *gin.Context) (Identity, error) {

	var req loginRequest
	var identity Identity

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("No authorization code provided: %v", err.Error()),
		})
		return identity, err
	}

	// The client reports failures that happen before any code exists
	// (closed window, blocked popup). Map them like provider errors.
	if req.Error != "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: MessageForCode(req.Error),
		})
		return identity, fmt.Errorf("client reported auth error: %s", req.Error)
	}

	if req.Code == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "No authorization code provided",
		})
		return identity, errors.New("empty authorization code")
	}

	// Exchange code with the provider and get userinfo
	token, err := h.OauthConfig.Exchange(context.Background(), req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: MapExchangeError(err),
		})
		return identity, err
	}

	client := h.OauthConfig.Client(context.Background(), token)
	resp, err := client.Get(h.UserInfoEndpoint)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch user information: %v", err.Error()),
		})
		return identity, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close userinfo response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		var bodyBytes []byte
		if resp.Body != nil {
			bodyBytes, _ = io.ReadAll(resp.Body)
		}
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch user information: status=%d body=%s", resp.StatusCode, string(bodyBytes)),
		})
		return identity, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	identity, err = h.decodeUserInfo(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to decode user info: %v", err.Error()),
		})
		return identity, err
	}

	// An empty uid must never reach the account lookup: every account with
	// a blank provider id would match the same row.
	if identity.ProviderUID == "" {
		err = fmt.Errorf("decoded %s user info has empty provider uid", h.Provider)
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to decode user info: %v", err.Error()),
		})
		return identity, err
	}
	return identity, nil
}

func (h *OauthLoginHandler) decodeUserInfo(body io.Reader) (Identity, error) {
	switch h.Provider {
	case ProviderGithub:
		var uInfo model.GithubUserInfo
		if err := json.NewDecoder(body).Decode(&uInfo); err != nil {
			return Identity{}, err
		}
		name := uInfo.Name
		if name == "" {
			name = uInfo.Login
		}
		return Identity{
			ProviderUID: strconv.FormatInt(uInfo.ID, 10),
			Name:        name,
			Email:       uInfo.Email,
			PhotoURL:    uInfo.AvatarURL,
			Username:    uInfo.Login,
		}, nil
	default:
		var uInfo model.GoogleUserInfo
		if err := json.NewDecoder(body).Decode(&uInfo); err != nil {
			return Identity{}, err
		}
		return Identity{
			ProviderUID: uInfo.GID,
			Name:        uInfo.Name,
			Email:       uInfo.Email,
			PhotoURL:    uInfo.Picture,
		}, nil
	}
}

// loginOrRegister finds or creates the base user for the identity, then
// reports whether a profile of the requested kind already exists so the
// client can route to the dashboard or the signup form.
func (h *OauthLoginHandler) loginOrRegister(kind model.ProfileKind, c *gin.Context) {

	identity, err := h.getIdentity(c)
	if err != nil {
		LogAuthAttempt("warning", h.Provider, "Fail", "", err.Error())
		return
	}

	var user model.User
	respStatus := http.StatusOK

	providerColumn := "google_id = ?"
	if h.Provider == ProviderGithub {
		providerColumn = "github_id = ?"
	}

	err = h.DB.Where(providerColumn, identity.ProviderUID).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):

		user = model.User{
			DisplayName:      identity.Name,
			Email:            identity.Email,
			PhotoURL:         identity.PhotoURL,
			ProviderUsername: identity.Username,
		}
		if h.Provider == ProviderGithub {
			user.GithubID = &identity.ProviderUID
		} else {
			user.GoogleID = &identity.ProviderUID
		}

		if err := h.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to create user: %v", err.Error()),
			})
			return
		}

		respStatus = http.StatusCreated

	case err != nil:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %v", err.Error()),
		})
		return
	}

	hasProfile, err := model.HasProfile(h.DB.DB, kind, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to check profile: %v", err.Error()),
		})
		return
	}

	accessToken, _, err := GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	LogAuthAttempt("info", h.Provider, "Success", user.ID.String(), string(kind))

	c.JSON(respStatus, model.LoginResponse{
		User:        user,
		AccessToken: accessToken,
		HasProfile:  hasProfile,
	})
}
