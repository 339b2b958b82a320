package fakeuserrepo

import (
	"context"
	"sync"
	"time"

	"github.com/bloghq/auth-service/users"
	"github.com/google/uuid"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	byEmail    map[string]*users.User
	byUsername map[string]*users.User
	lock       sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		byEmail:    make(map[string]*users.User),
		byUsername: make(map[string]*users.User),
	}
}

func (ur *FakeUserRepo) Create(_ context.Context, user *users.User) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.byEmail[user.Email]; ok {
		return nil, users.ErrDuplicate
	}
	if _, ok := ur.byUsername[user.Username]; ok {
		return nil, users.ErrDuplicate
	}

	created := *user
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	ur.byEmail[created.Email] = &created
	ur.byUsername[created.Username] = &created
	return &created, nil
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.byEmail[email]
	if !ok {
		return nil, users.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (ur *FakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	_, ok := ur.byEmail[email]
	return ok, nil
}
