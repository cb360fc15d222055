package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"interview-insights-be/internal/processing"
)

// JobRepository keeps processing state snapshots in memory for the lifetime
// of a session. Nothing here is durable; entries expire on their own, which
// matches the transient contract of the pipeline.
type JobRepository struct {
	cache *cache.Cache
}

func NewJobRepository() *JobRepository {
	// Snapshots live for an hour, expired entries are purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &JobRepository{
		cache: c,
	}
}

func (r *JobRepository) Save(state processing.State) {
	r.cache.Set(state.JobID.String(), state, cache.DefaultExpiration)
}

func (r *JobRepository) Get(jobID string) (processing.State, bool) {
	if x, found := r.cache.Get(jobID); found {
		return x.(processing.State), true
	}
	return processing.State{}, false
}

func (r *JobRepository) Delete(jobID string) {
	r.cache.Delete(jobID)
}
