package auth

import (
	"context"
	"errors"
)

type ctxKey string

const sessionKey ctxKey = "session"

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok && s != nil
}

func UserIDFromContext(ctx context.Context) (string, error) {
	s, ok := SessionFromContext(ctx)
	if !ok || s.User.ID == "" {
		return "", errors.New("user not authenticated")
	}
	return s.User.ID, nil
}
