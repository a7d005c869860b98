package auth

import (
	"context"
	"fmt"

	"github.com/agencydesk/crm-backend-go/internal/domain/user"
	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.Password == "" {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"-"`
	RefreshTokenExpiresIn int64  `json:"-"`
}

// Principal is the authenticated caller, carried through request context as
// JWT claims. It replaces the old bare role cookie: identity and role travel
// together and are verified on every request.
type Principal struct {
	UserID string
	Email  string
	Role   user.Role
}

// PrincipalFromContext extracts the authenticated principal from the
// request's verified JWT claims.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Principal{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Principal{}, ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Principal{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)

	return Principal{
		UserID: userID,
		Email:  email,
		Role:   user.Role(role),
	}, nil
}
