// Package token obtains challenge-response secrets from a physically
// present YubiKey.
//
// The challenge is the service name being protected. That binds each
// entry's key material to the service it protects, but the challenge is
// not itself a secret: anyone with momentary access to the token can
// reproduce any service's response, reducing security to the passcode
// alone in that threat model. This is a known trade-off kept for
// compatibility with already-enrolled entries.
//
// The production implementation shells out to ykman. The Responder
// interface exists so workflows and tests can substitute a fake token.
package token
