package token

import "drift_chronicles_service/pkg/config"

// Overridable in tests
var (
	GenerateJWTFunc = GenerateJWT
	ParseJWTFunc    = ParseJWT
)

// GenerateJWTWrapper indirection point so usecase tests can mock issuance
func GenerateJWTWrapper(subjectID string, mode IssuanceMode) (string, error) {
	return GenerateJWTFunc(subjectID, mode, config.EnvConfig.DriftService)
}

// ParseJWTWrapper indirection point so usecase tests can mock parsing
func ParseJWTWrapper(t string) (*Claims, error) {
	return ParseJWTFunc(t)
}
