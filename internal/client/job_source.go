package client

import (
	"context"
	"sync"

	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/reorder"
)

// JobSource adapts a job listing to reorder.Source so a reorder.Controller
// can drive one page of jobs.
//
// The controller works in view indices; the server works in positions of the
// full ordering. JobSource keeps each visible job's global position from the
// last fetch and updates it after every accepted move, so a move is sent as
// (position of moved job, position of the job it displaced).
type JobSource struct {
	client *Client
	query  model.JobQuery

	mu     sync.Mutex
	orders map[string]int
	total  int
}

var _ reorder.Source[model.Job] = (*JobSource)(nil)

// NewJobSource creates a source for the jobs matching query.
func NewJobSource(c *Client, query model.JobQuery) *JobSource {
	return &JobSource{
		client: c,
		query:  query,
		orders: make(map[string]int),
	}
}

// Query returns the listing the source fetches.
func (s *JobSource) Query() model.JobQuery {
	return s.query
}

// Total returns the number of matching jobs reported by the last fetch.
func (s *JobSource) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Fetch implements reorder.Source.
func (s *JobSource) Fetch(ctx context.Context) ([]model.Job, error) {
	page, err := s.client.ListJobs(ctx, s.query)
	if err != nil {
		return nil, err
	}

	orders := make(map[string]int, len(page.Data))
	for _, job := range page.Data {
		orders[job.ID] = job.Order
	}

	s.mu.Lock()
	s.orders = orders
	s.total = page.Total
	s.mu.Unlock()

	return page.Data, nil
}

// Commit implements reorder.Source.
func (s *JobSource) Commit(ctx context.Context, move reorder.PendingMove[model.Job]) error {
	from := s.globalOrder(move.Item)
	to := s.globalOrder(move.Target)

	if err := s.client.ReorderJob(ctx, move.Item.ID, from, to); err != nil {
		return err
	}

	s.mu.Lock()
	shiftOrders(s.orders, move.Item.ID, from, to)
	s.mu.Unlock()
	return nil
}

func (s *JobSource) globalOrder(job model.Job) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.orders[job.ID]; ok {
		return order
	}
	return job.Order
}

// shiftOrders applies a server-side pop/insert of movedID from -> to to the
// known positions: everything between the two slots shifts by one.
func shiftOrders(orders map[string]int, movedID string, from, to int) {
	for id, order := range orders {
		switch {
		case id == movedID:
			orders[id] = to
		case from < to && order > from && order <= to:
			orders[id] = order - 1
		case from > to && order >= to && order < from:
			orders[id] = order + 1
		}
	}
}
