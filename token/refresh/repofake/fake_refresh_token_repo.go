package refreshrepofake

import (
	"context"
	"sync"

	"github.com/bloghq/auth-service/token/refresh"
)

var _ refresh.Repo = (*FakeRefreshTokenRepo)(nil)

type FakeRefreshTokenRepo struct {
	tokens map[string]string // token value -> user ID
	lock   sync.RWMutex
}

func NewFakeRefreshTokenRepo() *FakeRefreshTokenRepo {
	return &FakeRefreshTokenRepo{
		tokens: make(map[string]string),
	}
}

func (tr *FakeRefreshTokenRepo) Exists(_ context.Context, token string) (bool, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	_, ok := tr.tokens[token]
	return ok, nil
}

func (tr *FakeRefreshTokenRepo) Create(_ context.Context, token, userID string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.tokens[token]; ok {
		return refresh.ErrConflict
	}
	tr.tokens[token] = userID
	return nil
}

func (tr *FakeRefreshTokenRepo) Delete(_ context.Context, token string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	delete(tr.tokens, token)
	return nil
}
