package identity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"merchantgate/pkg/logger"

	"github.com/go-resty/resty/v2"
)

// UserInfoResolver resolves access tokens against an OIDC userInfo endpoint,
// such as Cognito's hosted /oauth2/userInfo.
type UserInfoResolver struct {
	httpClient *resty.Client
	endpoint   string
	checker    *TokenChecker
	log        *logger.Logger
}

type userInfoError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// NewUserInfoResolver creates a resolver for the given endpoint. Requests are never retried.
func NewUserInfoResolver(endpoint string, checker *TokenChecker, log *logger.Logger) *UserInfoResolver {
	client := resty.New().
		SetTimeout(10*time.Second).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &UserInfoResolver{
		httpClient: client,
		endpoint:   endpoint,
		checker:    checker,
		log:        log,
	}
}

// Resolve returns the sub claim of the user owning accessToken.
func (r *UserInfoResolver) Resolve(ctx context.Context, accessToken string) (string, error) {
	if err := r.checker.Check(accessToken); err != nil {
		return "", err
	}

	var claims map[string]interface{}
	var apiErr userInfoError
	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&claims).
		SetError(&apiErr).
		Get(r.endpoint)
	if err != nil {
		r.log.Warn().Err(err).Msg("userinfo request failed")
		return "", &ProviderError{Code: "Unavailable", Message: err.Error(), Err: err}
	}

	if resp.IsError() {
		msg := apiErr.ErrorDescription
		if msg == "" {
			msg = apiErr.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("userinfo endpoint returned %s", http.StatusText(resp.StatusCode()))
		}
		r.log.Warn().Int("status", resp.StatusCode()).Str("error", msg).Msg("userinfo rejected token")
		return "", &ProviderError{Code: apiErr.Error, Message: msg}
	}

	sub, _ := claims[SubjectAttribute].(string)
	if sub == "" {
		return "", ErrMissingSubject
	}
	return sub, nil
}
