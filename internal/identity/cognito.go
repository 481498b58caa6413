package identity

import (
	"context"
	"errors"
	"fmt"

	"merchantgate/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/smithy-go"
)

// CognitoAPI is the subset of the Cognito client the resolver uses.
type CognitoAPI interface {
	GetUser(ctx context.Context, params *cognitoidentityprovider.GetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error)
}

// CognitoResolver resolves access tokens with Cognito's GetUser operation.
type CognitoResolver struct {
	api     CognitoAPI
	checker *TokenChecker
	log     *logger.Logger
}

// NewCognitoResolver builds a resolver around an existing Cognito client.
func NewCognitoResolver(api CognitoAPI, checker *TokenChecker, log *logger.Logger) *CognitoResolver {
	return &CognitoResolver{
		api:     api,
		checker: checker,
		log:     log,
	}
}

// NewCognitoClient creates the Cognito client once for the process, using the default AWS credential chain.
func NewCognitoClient(ctx context.Context, region string) (*cognitoidentityprovider.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cognitoidentityprovider.NewFromConfig(cfg), nil
}

// Resolve returns the sub attribute of the user owning accessToken.
func (r *CognitoResolver) Resolve(ctx context.Context, accessToken string) (string, error) {
	if err := r.checker.Check(accessToken); err != nil {
		return "", err
	}

	r.log.Debug().Msg("getting user info from cognito")
	out, err := r.api.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		perr := toProviderError(err)
		r.log.Warn().Str("code", perr.Code).Str("error", perr.Message).Msg("cognito GetUser failed")
		return "", perr
	}

	for _, attr := range out.UserAttributes {
		if aws.ToString(attr.Name) == SubjectAttribute {
			if sub := aws.ToString(attr.Value); sub != "" {
				r.log.Debug().Str("sub", sub).Msg("user sub found")
				return sub, nil
			}
			break
		}
	}
	return "", ErrMissingSubject
}

func toProviderError(err error) *ProviderError {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{
			Code:    apiErr.ErrorCode(),
			Message: apiErr.ErrorMessage(),
			Err:     err,
		}
	}
	return &ProviderError{Code: "Unavailable", Message: err.Error(), Err: err}
}
