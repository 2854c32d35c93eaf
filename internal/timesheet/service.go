package timesheet

import (
	"context"
	"time"
)

// ItemError records why one submission item (or one of its entries)
// was rejected while the rest of the batch proceeded.
type ItemError struct {
	Index    int    `json:"index"`
	TaskUUID string `json:"task_uuid"`
	JobID    string `json:"job_id"`
	Error    string `json:"error"`
}

// SubmitResult summarizes a submission batch: how many canonical entries
// were reconciled and which items failed.
type SubmitResult struct {
	Accepted int         `json:"accepted"`
	Errors   []ItemError `json:"errors,omitempty"`
}

// Service is the façade the HTTP layer talks to. It owns no state
// beyond its Reconciler and Aggregator.
type Service struct {
	reconciler *Reconciler
	aggregator *Aggregator
}

// NewService wires a Service from a store and the three resolvers.
func NewService(store Store, staff StaffResolver, tasks TaskResolver, jobs JobResolver) *Service {
	return &Service{
		reconciler: NewReconciler(store, staff, tasks, jobs),
		aggregator: NewAggregator(store, tasks),
	}
}

// SubmitTimesheet normalizes and reconciles a batch of submission items
// for one staff member. Failures are isolated per item: a malformed or
// unresolvable item is recorded in the result and the remaining items
// still run. There is no batch rollback — entries committed before a
// later failure stay committed. Context cancellation stops the batch
// before the next entry; nothing half-written is left behind because
// each reconciliation is atomic on its own.
func (s *Service) SubmitTimesheet(ctx context.Context, staffUUID string, items []SubmissionItem) (SubmitResult, error) {
	var res SubmitResult
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		entries, err := NormalizeItem(staffUUID, item)
		if err != nil {
			res.Errors = append(res.Errors, itemError(i, item, err))
			continue
		}
		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			if _, err := s.reconciler.Reconcile(ctx, e); err != nil {
				res.Errors = append(res.Errors, itemError(i, item, err))
				break
			}
			res.Accepted++
		}
	}
	return res, nil
}

// WeeklyHours returns the aggregated report for staffUUID and the week
// starting at weekStart; a zero weekStart means the current week.
func (s *Service) WeeklyHours(ctx context.Context, staffUUID string, weekStart time.Time) (*WeeklyReport, error) {
	return s.aggregator.WeeklyHours(ctx, staffUUID, weekStart)
}

func itemError(i int, item SubmissionItem, err error) ItemError {
	return ItemError{Index: i, TaskUUID: item.TaskUUID, JobID: item.JobID, Error: err.Error()}
}
