package model

// LoginResponse is returned by every sign-in route. HasProfile tells the
// client whether a role profile already exists for this uid, so it can branch
// to the dashboard or the signup form.
type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
	HasProfile  bool   `json:"has_profile"`
}

// GoogleUserInfo mirrors the Google oauth2/v3 userinfo response fields we
// use. The v3 endpoint returns the stable account identifier as "sub"; the
// older v2 endpoint calls it "id", so the endpoint and this tag go together.
type GoogleUserInfo struct {
	GID       string `json:"sub"`
	Name      string `json:"name"`
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
	Email     string `json:"email"`
	Picture   string `json:"picture"`
}

// GithubUserInfo mirrors the GitHub user endpoint response fields we use
type GithubUserInfo struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}
