package token

import "context"

// Responder produces a deterministic secret response for a challenge.
// For a fixed physical token, the same challenge must always yield the
// same response; key derivation depends on that property.
type Responder interface {
	ChallengeResponse(ctx context.Context, challenge string) (string, error)
}

// Static is a Responder returning a fixed response for every challenge.
// It stands in for a hardware token in tests.
type Static struct {
	Response string
	Err      error
}

func (s Static) ChallengeResponse(ctx context.Context, challenge string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}
