// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "cofoundry-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cofoundry-backend/internal/auth"
	"cofoundry-backend/internal/controller/application"
	"cofoundry-backend/internal/controller/idea"
	"cofoundry-backend/internal/controller/profile"
	"cofoundry-backend/internal/controller/user"
	"cofoundry-backend/internal/middleware"
	"cofoundry-backend/internal/model"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	googleOauth := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_AUTH_CLIENT"),
		ClientSecret: os.Getenv("GOOGLE_AUTH_SECRET"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: os.Getenv("OAUTH_REDIRECT_URL"),
	}
	githubOauth := &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_AUTH_CLIENT"),
		ClientSecret: os.Getenv("GITHUB_AUTH_SECRET"),
		Scopes:       []string{"read:user", "user:email"},
		Endpoint:     github.Endpoint,
		RedirectURL:  os.Getenv("OAUTH_REDIRECT_URL"),
	}

	gAuth := auth.NewOauthLoginHandler(s.DB, googleOauth, "https://www.googleapis.com/oauth2/v3/userinfo", auth.ProviderGoogle)
	ghAuth := auth.NewOauthLoginHandler(s.DB, githubOauth, "https://api.github.com/user", auth.ProviderGithub)
	logout := auth.NewLogoutController(s.Blacklist, s.Saved)

	profileCtl := profile.NewProfileController(s.DB)
	ideaCtl := idea.NewIdeaController(s.DB, s.Saved)
	appCtl := application.NewApplicationController(s.DB)
	userCtl := user.NewUserController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))
	r.Use(middleware.SafeHeader())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.Use(middleware.EnvRateLimitMiddleware(), middleware.SizeLimit(1<<20))
			authRoute.POST("google/developer", gAuth.DeveloperLoginHandler)
			authRoute.POST("google/recruiter", gAuth.RecruiterLoginHandler)
			authRoute.POST("google/investor", gAuth.InvestorLoginHandler)
			authRoute.GET("google/callback", gAuth.Callback)

			authRoute.POST("github/developer", ghAuth.DeveloperLoginHandler)
			authRoute.POST("github/recruiter", ghAuth.RecruiterLoginHandler)
			authRoute.POST("github/investor", ghAuth.InvestorLoginHandler)
			authRoute.GET("github/callback", ghAuth.Callback)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB), middleware.JwtBlacklistCheck(s.Blacklist))

			needAuth.POST("auth/logout", logout.LogoutHandler)

			meRoute := needAuth.Group("/me")
			{
				meRoute.GET("", userCtl.GetMe)
				meRoute.GET("theme", userCtl.GetTheme)
				meRoute.PUT("theme", userCtl.SetTheme)
			}

			profileRoute := needAuth.Group("/profile")
			{
				profileRoute.Use(middleware.SizeLimit(1 << 20))
				profileRoute.POST(":role", profileCtl.UpsertProfile)
				profileRoute.PATCH(":role", profileCtl.UpdateProfile)
				profileRoute.GET(":role/me", profileCtl.GetMyProfile)
			}

			ideaRoute := needAuth.Group("/ideas")
			{
				ideaRoute.GET("", ideaCtl.GetIdeas)
				ideaRoute.GET(":id", ideaCtl.GetIdea)
				ideaRoute.POST("", middleware.SizeLimit(1<<20), ideaCtl.CreateIdea)
				ideaRoute.PATCH(":id/close", ideaCtl.CloseIdea)
				ideaRoute.POST(":id/save", ideaCtl.ToggleSave)
			}

			needAuth.POST("applications", middleware.SizeLimit(1<<20), appCtl.SubmitApplication)
			needAuth.GET("applications/me", appCtl.GetMyApplications)
			needAuth.POST("interests", middleware.SizeLimit(1<<20), appCtl.SubmitInterest)

			// Review surface, founders only
			recruiterRoute := needAuth.Group("/recruiter")
			{
				recruiterRoute.Use(middleware.RequireProfile(s.DB, model.KindRecruiter))
				recruiterRoute.GET("applications", appCtl.GetRecruiterApplications)
				recruiterRoute.GET("interests", appCtl.GetRecruiterInterests)
			}

			needAuth.PATCH("applications/:id/status", middleware.RequireProfile(s.DB, model.KindRecruiter), appCtl.UpdateApplicationStatus)
			needAuth.PATCH("interests/:id/status", middleware.RequireProfile(s.DB, model.KindRecruiter), appCtl.UpdateInterestStatus)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
