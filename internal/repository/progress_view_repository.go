package repository

import (
	"context"
	"slices"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"
)

// ProgressViewRepository maintains completedTasks/<learnerID>, a read-only copy of
// the learner's completed tasks. Only Sync writes it, always from a saved learner.
type ProgressViewRepository struct {
	Store KVStore
}

func NewProgressViewRepository(store KVStore) *ProgressViewRepository {
	return &ProgressViewRepository{Store: store}
}

func progressViewKey(learnerID string) string {
	return util.KeyCompletedTasksPrefix + learnerID
}

func (r *ProgressViewRepository) Sync(ctx context.Context, learner model.Learner) bool {
	return Put(ctx, r.Store, progressViewKey(learner.ID), learner.CompletedTasks())
}

func (r *ProgressViewRepository) Find(ctx context.Context, learnerID string) []string {
	return slices.Clone(Get(ctx, r.Store, progressViewKey(learnerID), []string{}))
}

func (r *ProgressViewRepository) Delete(ctx context.Context, learnerID string) {
	if err := Remove(ctx, r.Store, progressViewKey(learnerID)); err != nil {
		logStorageError(err)
	}
}
