package repository

import (
	"context"
	"strings"
	"sync"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"
)

// CredentialRepository stores login records keyed by normalized email.
type CredentialRepository struct {
	Store KVStore

	mu sync.Mutex
}

func NewCredentialRepository(store KVStore) *CredentialRepository {
	return &CredentialRepository{Store: store}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func credentialKey(email string) string {
	return util.KeyCredentialPrefix + NormalizeEmail(email)
}

// FindByEmail returns found=false for unknown emails. Unlike the learner data,
// a storage failure here is returned so login never silently succeeds or fails.
func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (model.Credential, bool, error) {
	var cred model.Credential
	found, err := Load(ctx, r.Store, credentialKey(email), &cred)
	if err != nil {
		return model.Credential{}, false, err
	}
	return cred, found, nil
}

// Create stores a new credential, or returns util.ErrEmailRegistered when the
// email is already taken.
func (r *CredentialRepository) Create(ctx context.Context, cred model.Credential) error {
	cred.Email = NormalizeEmail(cred.Email)
	key := credentialKey(cred.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	var existing model.Credential
	found, err := Load(ctx, r.Store, key, &existing)
	if err != nil {
		return err
	}
	if found {
		return util.ErrEmailRegistered
	}
	return Save(ctx, r.Store, key, cred)
}

func (r *CredentialRepository) Delete(ctx context.Context, email string) {
	if err := Remove(ctx, r.Store, credentialKey(email)); err != nil {
		logStorageError(err)
	}
}
