// Package jobcontext carries run metadata for a single pipeline execution
// through context.Context so every stage can log the same identifiers.
package jobcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KeyContext string

var (
	keyRunID     KeyContext = "run_id"
	keyRunKind   KeyContext = "run_kind"
	keySubjectID KeyContext = "subject_id"
	keyStartTime KeyContext = "run_start_time"
)

// RunMetadata holds metadata for a pipeline run
type RunMetadata struct {
	RunID     uuid.UUID
	Kind      string
	SubjectID uuid.UUID
	StartTime time.Time
}

// RunBegin tags ctx with a fresh run ID, the run kind and the record being processed.
// It adds no deadline; cancellation still comes from the parent.
func RunBegin(parentCtx context.Context, kind string, subjectID uuid.UUID) context.Context {
	ctx := context.WithValue(parentCtx, keyRunID, uuid.New())
	ctx = context.WithValue(ctx, keyRunKind, kind)
	ctx = context.WithValue(ctx, keySubjectID, subjectID)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx
}

// GetRunID extracts run ID from context
func GetRunID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyRunID).(uuid.UUID)
	return id, ok
}

// GetRunKind extracts run kind from context
func GetRunKind(ctx context.Context) (string, bool) {
	kind, ok := ctx.Value(keyRunKind).(string)
	return kind, ok
}

// GetSubjectID extracts the processed record ID from context
func GetSubjectID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keySubjectID).(uuid.UUID)
	return id, ok
}

// GetStartTime extracts run start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(keyStartTime).(time.Time)
	return t, ok
}

// Elapsed returns the time since RunBegin, or zero outside a run
func Elapsed(ctx context.Context) time.Duration {
	start, ok := GetStartTime(ctx)
	if !ok {
		return 0
	}
	return time.Since(start)
}

// GetRunMetadata extracts all run metadata from context
func GetRunMetadata(ctx context.Context) *RunMetadata {
	runID, _ := GetRunID(ctx)
	kind, _ := GetRunKind(ctx)
	subjectID, _ := GetSubjectID(ctx)
	start, _ := GetStartTime(ctx)

	return &RunMetadata{
		RunID:     runID,
		Kind:      kind,
		SubjectID: subjectID,
		StartTime: start,
	}
}

// Fields returns the run metadata as zap fields
func Fields(ctx context.Context) []zap.Field {
	md := GetRunMetadata(ctx)
	return []zap.Field{
		zap.String("run_id", md.RunID.String()),
		zap.String("run_kind", md.Kind),
		zap.String("subject_id", md.SubjectID.String()),
		zap.Duration("elapsed", Elapsed(ctx)),
	}
}
