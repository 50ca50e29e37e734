package repository

import (
	"context"
	"sync"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"
	"talentbridge_backend/pkg/logger"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const defaultLearnerCacheSize = 1024

// LearnerRepository reads and writes learner records. The store is authoritative
// except for learners whose latest write failed: those are served from pending,
// and the write is retried on every read until the store accepts it. The LRU
// holds the last value seen so a store that cannot be read degrades to it.
type LearnerRepository struct {
	Store KVStore
	cache *lru.Cache[string, model.Learner]

	mu      sync.Mutex
	pending map[string]model.Learner
}

func NewLearnerRepository(store KVStore, cacheSize int) *LearnerRepository {
	if cacheSize <= 0 {
		cacheSize = defaultLearnerCacheSize
	}
	cache, _ := lru.New[string, model.Learner](cacheSize)
	return &LearnerRepository{Store: store, cache: cache, pending: make(map[string]model.Learner)}
}

func learnerKey(id string) string {
	return util.KeyLearnerPrefix + id
}

func (r *LearnerRepository) FindByID(ctx context.Context, id string) (model.Learner, error) {
	if l, ok := r.retryPending(ctx, id); ok {
		return l, nil
	}

	var rec model.LearnerRecord
	found, err := Load(ctx, r.Store, learnerKey(id), &rec)
	if err != nil {
		logStorageError(err)
		if cached, ok := r.cache.Get(id); ok {
			logger.Log.Warn("Serving cached learner after storage failure", zap.String("learner_id", id))
			return cached, nil
		}
		return model.Learner{}, util.ErrLearnerNotFound
	}
	if !found {
		r.cache.Remove(id)
		return model.Learner{}, util.ErrLearnerNotFound
	}

	learner, issues := model.LearnerFromRecord(rec)
	for _, issue := range issues {
		util.WarnDataIntegrity("learner/"+id, "%s", issue)
	}
	r.cache.Add(id, learner)
	return learner, nil
}

// retryPending returns the unsaved learner for id, if any, after trying its write again.
func (r *LearnerRepository) retryPending(ctx context.Context, id string) (model.Learner, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.pending[id]
	if !ok {
		return model.Learner{}, false
	}
	if Put(ctx, r.Store, learnerKey(id), l.Record()) {
		delete(r.pending, id)
		logger.Log.Info("Pending learner write persisted", zap.String("learner_id", id))
	}
	return l, true
}

// Save persists the learner and reports whether the store accepted it. A
// learner whose write failed keeps being served from memory, never from the
// older stored record.
func (r *LearnerRepository) Save(ctx context.Context, learner model.Learner) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Add(learner.ID, learner)
	if Put(ctx, r.Store, learnerKey(learner.ID), learner.Record()) {
		delete(r.pending, learner.ID)
		return true
	}
	r.pending[learner.ID] = learner
	return false
}

func (r *LearnerRepository) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pending, id)
	r.cache.Remove(id)
	if err := Remove(ctx, r.Store, learnerKey(id)); err != nil {
		logStorageError(err)
	}
}
