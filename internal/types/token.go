package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// ServiceClaims represents the claims in a service-to-service JWT used by
// ingestion tooling. Service names the calling system, not a person.
type ServiceClaims struct {
	jwt.RegisteredClaims
	Service string `json:"service"`
}
