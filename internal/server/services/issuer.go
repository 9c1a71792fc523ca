package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/clock"
	"github.com/dmitrijs2005/focuslock/internal/common"
	"github.com/dmitrijs2005/focuslock/internal/dbx"
	"github.com/dmitrijs2005/focuslock/internal/server/models"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focuslock/internal/tokens"
	"github.com/dmitrijs2005/focuslock/internal/window"
	"github.com/google/uuid"
)

// TokenValidity is fixed; callers cannot choose it.
const TokenValidity = 24 * time.Hour

const tokenIDBytes = 32

// IssueRequest describes the policy a new token grants.
type IssueRequest struct {
	Name            string
	Purpose         models.Purpose
	DurationMinutes int
	BlockedApps     []string
	AllowedApps     []string
	// WindowStart and WindowEnd are "HH:mm"; both empty means no window.
	WindowStart string
	WindowEnd   string
	// Days uses the local weekday symbols, e.g. "월수". Empty means every day.
	Days          string
	OncePerDevice bool
	// IssuerID is nil for self-issued tokens.
	IssuerID *string
}

// IssuedToken is what the issuer hands back for rendering as a scannable code.
type IssuedToken struct {
	TokenID   string
	Payload   string
	ExpiresAt time.Time
	Policy    *models.RestrictionPolicy
}

// TokenIssuer creates a policy and a signed token referencing it.
type TokenIssuer struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *tokens.Codec
	clock       clock.Clock
}

func NewTokenIssuer(db *sql.DB, m repomanager.RepositoryManager, codec *tokens.Codec, c clock.Clock) *TokenIssuer {
	return &TokenIssuer{db: db, repomanager: m, codec: codec, clock: c}
}

// Issue persists the policy and the token in one transaction and returns the
// encoded payload.
func (s *TokenIssuer) Issue(ctx context.Context, req IssueRequest) (*IssuedToken, error) {
	encodedWindow, err := s.validate(&req)
	if err != nil {
		return nil, err
	}

	// whole seconds, so the wire expiry is exactly TokenValidity after issuance
	now := s.clock.Now().Truncate(time.Second)

	policy := &models.RestrictionPolicy{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Purpose:         req.Purpose,
		DurationMinutes: req.DurationMinutes,
		BlockedApps:     req.BlockedApps,
		AllowedApps:     req.AllowedApps,
		Window:          encodedWindow,
		OncePerDevice:   req.OncePerDevice,
		CreatedBy:       req.IssuerID,
		CreatedAt:       now,
	}

	tokenID, err := common.MakeRandHexString(tokenIDBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating token id: %w", err)
	}

	expiresAt := now.Add(TokenValidity)
	expiry := expiresAt.Unix()
	token := &models.LockToken{
		ID:        tokenID,
		PolicyID:  policy.ID,
		IssuerID:  req.IssuerID,
		Signature: s.codec.Sign(tokenID, expiry),
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Policies(tx).Create(ctx, policy); err != nil {
			return fmt.Errorf("error creating policy: %w", err)
		}
		if err := s.repomanager.Tokens(tx).Create(ctx, token); err != nil {
			return fmt.Errorf("error creating token: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	payload, err := tokens.Payload{TokenID: tokenID, Expiry: expiry, Signature: token.Signature}.Encode()
	if err != nil {
		return nil, fmt.Errorf("error encoding payload: %w", err)
	}

	return &IssuedToken{TokenID: tokenID, Payload: payload, ExpiresAt: expiresAt, Policy: policy}, nil
}

// validate normalizes req in place and returns the encoded window.
func (s *TokenIssuer) validate(req *IssueRequest) (string, error) {
	req.Purpose = models.Purpose(strings.TrimSpace(string(req.Purpose)))
	if req.Purpose == "" {
		return "", fmt.Errorf("%w: purpose is required", common.ErrorValidation)
	}
	if req.DurationMinutes <= 0 {
		return "", fmt.Errorf("%w: duration must be positive", common.ErrorValidation)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = string(req.Purpose)
	}

	if req.WindowStart == "" && req.WindowEnd == "" {
		if strings.TrimSpace(req.Days) != "" {
			return "", fmt.Errorf("%w: days given without a time window", common.ErrorValidation)
		}
		return "", nil
	}

	days, err := window.ParseDays(req.Days)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	enc, err := window.Encode(req.WindowStart, req.WindowEnd, days)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return enc, nil
}
