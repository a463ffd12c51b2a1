package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	inviteCodeLength   = 8
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteCodeAttempts = 10
)

var errInviteCodeExhausted = errors.New("could not find a free invite code")

// inviteCodeChecker is the part of the store newInviteCode needs.
type inviteCodeChecker interface {
	InviteCodeExists(ctx context.Context, code string) (bool, error)
}

// randomInviteCode draws an 8-character code from [A-Z0-9].
func randomInviteCode() (string, error) {
	size := big.NewInt(int64(len(inviteCodeAlphabet)))
	code := make([]byte, inviteCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// newInviteCode returns a code no trip uses yet, drawing again on collision.
func newInviteCode(ctx context.Context, store inviteCodeChecker, generate func() (string, error)) (string, error) {
	for range inviteCodeAttempts {
		code, err := generate()
		if err != nil {
			return "", err
		}
		taken, err := store.InviteCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errInviteCodeExhausted
}
