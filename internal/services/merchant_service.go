package services

import (
	"context"
	"fmt"
	"time"

	"merchantgate/internal/identity"
	"merchantgate/internal/models"
	"merchantgate/internal/repositories"
	"merchantgate/pkg/logger"
	"merchantgate/pkg/rabbitmq"
)

// VerifyStatus is the business outcome of a merchant verification.
type VerifyStatus int

const (
	VerifyStatusVerified VerifyStatus = iota
	VerifyStatusNotApplied
	VerifyStatusNotVerifiedYet
)

// Message returns the response message for the status.
func (s VerifyStatus) Message() string {
	switch s {
	case VerifyStatusVerified:
		return "User verified successfully"
	case VerifyStatusNotApplied:
		return "User not applied"
	case VerifyStatusNotVerifiedYet:
		return "User not verified yet"
	default:
		return "unknown"
	}
}

// VerifyResult is returned by VerifyMerchant. CognitoID is only set when Status is VerifyStatusVerified.
type VerifyResult struct {
	Status    VerifyStatus
	CognitoID string
}

// RegisterResult is returned by RegisterMerchant.
type RegisterResult struct {
	CognitoID  string
	TraderType models.TraderType
}

// MerchantRegisteredEvent is published after a successful registration.
type MerchantRegisteredEvent struct {
	CognitoID  string            `json:"cognito_id"`
	UserID     string            `json:"user_id"`
	TraderType models.TraderType `json:"trader_type"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// EventPublisher sends domain events to a broker.
type EventPublisher interface {
	Publish(routingKey string, payload interface{}) error
}

// MerchantService answers whether a caller is a verified supplier and registers merchant profiles.
type MerchantService struct {
	resolver   identity.Resolver
	userRepo   repositories.UserRepository
	traderRepo repositories.TraderRepository
	publisher  EventPublisher // optional
	log        *logger.Logger
}

// NewMerchantService creates a new MerchantService. publisher may be nil.
func NewMerchantService(
	resolver identity.Resolver,
	userRepo repositories.UserRepository,
	traderRepo repositories.TraderRepository,
	publisher EventPublisher,
	log *logger.Logger,
) *MerchantService {
	return &MerchantService{
		resolver:   resolver,
		userRepo:   userRepo,
		traderRepo: traderRepo,
		publisher:  publisher,
		log:        log,
	}
}

// VerifyMerchant reports whether the owner of accessToken is a fully verified supplier.
// "Not applied" and "not verified yet" are results, not errors.
func (s *MerchantService) VerifyMerchant(ctx context.Context, accessToken string) (*VerifyResult, error) {
	if accessToken == "" {
		return nil, ErrAccessTokenRequired
	}

	sub, err := s.resolver.Resolve(ctx, accessToken)
	if err != nil {
		return nil, classify(err)
	}

	mode, err := s.userRepo.GetConnectionMode(ctx, sub)
	if err != nil {
		return nil, classify(err)
	}
	if !mode.IsMerchant() {
		return &VerifyResult{Status: VerifyStatusNotApplied}, nil
	}

	status, err := s.userRepo.GetVerificationStatus(ctx, sub)
	if err != nil {
		return nil, classify(err)
	}
	if status != models.VerificationStatusFull {
		return &VerifyResult{Status: VerifyStatusNotVerifiedYet}, nil
	}

	return &VerifyResult{Status: VerifyStatusVerified, CognitoID: sub}, nil
}

// RegisterMerchant creates or updates the trader profile of the owner of accessToken.
// A customer becomes both. When the user was already a supplier the reported type stays
// supplier, whatever the upsert stored.
func (s *MerchantService) RegisterMerchant(ctx context.Context, accessToken string, profile models.TraderProfile) (*RegisterResult, error) {
	if accessToken == "" {
		return nil, ErrAccessTokenRequired
	}

	sub, err := s.resolver.Resolve(ctx, accessToken)
	if err != nil {
		return nil, classify(err)
	}

	userID, err := s.userRepo.GetInternalUserID(ctx, sub)
	if err != nil {
		return nil, classify(err)
	}

	traderType, err := s.traderRepo.Upsert(ctx, userID, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to save trader profile: %w", err)
	}

	mode, err := s.userRepo.GetConnectionMode(ctx, sub)
	if err != nil {
		return nil, classify(err)
	}
	switch mode {
	case models.ConnectionModeCustomer:
		if err := s.userRepo.SetConnectionMode(ctx, userID, models.ConnectionModeBoth); err != nil {
			return nil, err
		}
		s.log.Info().Str("user_id", userID).Msg("customer promoted to both")
	case models.ConnectionModeSupplier:
		traderType = models.TraderTypeSupplier
	}

	s.publishRegistered(MerchantRegisteredEvent{
		CognitoID:  sub,
		UserID:     userID,
		TraderType: traderType,
		OccurredAt: time.Now().UTC(),
	})

	return &RegisterResult{CognitoID: sub, TraderType: traderType}, nil
}

func (s *MerchantService) publishRegistered(event MerchantRegisteredEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyMerchantRegistered, event); err != nil {
		s.log.Warn().Err(err).Str("user_id", event.UserID).Msg("failed to publish merchant registered event")
		return
	}
	s.log.Debug().Str("user_id", event.UserID).Msg("published merchant registered event")
}
