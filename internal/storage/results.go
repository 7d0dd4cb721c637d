package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/wellnest/internal/assessment"
	"github.com/harrison/wellnest/internal/config"
)

// Record is one completed assessment kept in the history list.
type Record struct {
	ID          string                 `json:"id"`
	CompletedAt time.Time              `json:"completed_at"`
	Scores      assessment.ScoreResult `json:"scores"`
	Responses   assessment.ResponseSet `json:"responses,omitempty"`
}

// NewRecord builds a history record with a fresh id from an outcome.
func NewRecord(o assessment.Outcome) Record {
	return Record{
		ID:          uuid.NewString(),
		CompletedAt: o.CompletedAt.UTC(),
		Scores:      o.Scores,
		Responses:   o.Responses.Clone(),
	}
}

// Results reads and writes assessment results through a KV.
//
// The latest score lives under Key as a flat {"stress","mood","wellbeing"}
// object. History lives under HistoryKey as a newest-first JSON array capped
// at MaxHistory entries. Every failure is returned as an
// assessment.StorageError.
type Results struct {
	kv         KV
	key        string
	historyKey string
	maxHistory int
	timeout    time.Duration
}

// NewResults creates a Results repository over kv.
func NewResults(kv KV, cfg config.StorageConfig) *Results {
	return &Results{
		kv:         kv,
		key:        cfg.Key,
		historyKey: cfg.HistoryKey,
		maxHistory: cfg.MaxHistory,
		timeout:    cfg.Timeout,
	}
}

func (r *Results) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// SaveLatest writes score under the results key.
func (r *Results) SaveLatest(ctx context.Context, score assessment.ScoreResult) error {
	data, err := json.Marshal(score)
	if err != nil {
		return &assessment.StorageError{Op: "encode", Key: r.key, Err: err}
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.kv.Put(ctx, r.key, data); err != nil {
		return &assessment.StorageError{Op: "put", Key: r.key, Err: err}
	}
	return nil
}

// Latest reads the last saved score. A missing value is a StorageError
// wrapping ErrNotFound.
func (r *Results) Latest(ctx context.Context) (assessment.ScoreResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	data, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return assessment.ScoreResult{}, &assessment.StorageError{Op: "get", Key: r.key, Err: err}
	}

	var score assessment.ScoreResult
	if err := json.Unmarshal(data, &score); err != nil {
		return assessment.ScoreResult{}, &assessment.StorageError{Op: "decode", Key: r.key, Err: err}
	}
	return score, nil
}

// History returns stored records, newest first. No history is an empty slice.
func (r *Results) History(ctx context.Context) ([]Record, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.history(ctx)
}

func (r *Results) history(ctx context.Context) ([]Record, error) {
	data, err := r.kv.Get(ctx, r.historyKey)
	if errors.Is(err, ErrNotFound) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, &assessment.StorageError{Op: "get", Key: r.historyKey, Err: err}
	}

	records := []Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &assessment.StorageError{Op: "decode", Key: r.historyKey, Err: err}
	}
	return records, nil
}

// Append prepends rec to the history, replacing any record with the same id,
// and trims the list to MaxHistory.
func (r *Results) Append(ctx context.Context, rec Record) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	existing, err := r.history(ctx)
	if err != nil {
		return err
	}

	records := make([]Record, 0, len(existing)+1)
	records = append(records, rec)
	for _, old := range existing {
		if old.ID != rec.ID {
			records = append(records, old)
		}
	}
	if r.maxHistory > 0 && len(records) > r.maxHistory {
		records = records[:r.maxHistory]
	}

	data, err := json.Marshal(records)
	if err != nil {
		return &assessment.StorageError{Op: "encode", Key: r.historyKey, Err: err}
	}
	if err := r.kv.Put(ctx, r.historyKey, data); err != nil {
		return &assessment.StorageError{Op: "put", Key: r.historyKey, Err: err}
	}
	return nil
}

// Save writes rec's score as the latest result and adds rec to the history.
// Retrying after a failure is safe.
func (r *Results) Save(ctx context.Context, rec Record) error {
	if err := r.SaveLatest(ctx, rec.Scores); err != nil {
		return err
	}
	return r.Append(ctx, rec)
}

// Clear deletes the latest result and the history.
func (r *Results) Clear(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	for _, key := range []string{r.key, r.historyKey} {
		if err := r.kv.Delete(ctx, key); err != nil {
			return &assessment.StorageError{Op: "delete", Key: key, Err: err}
		}
	}
	return nil
}
