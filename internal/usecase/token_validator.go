package usecase

import (
	"strings"

	"storefront-checkout/internal/domain/customer"
	"storefront-checkout/internal/pkg/jwt"
)

//go:generate mockgen -source=token_validator.go -destination=../../tests/mock/usecase/token_validator_mock.go -package=usecase

// TokenValidator provides session validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (customer.Session, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (customer.Session, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return customer.Session{}, err
	}

	return customer.Session{
		ClientID: strings.TrimSpace(claims.Subject),
		Phone:    claims.Phone,
		Name:     claims.Name,
	}, nil
}
