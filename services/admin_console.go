package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/eventnow/eventnow_backend/models"
	"github.com/eventnow/eventnow_backend/repositories"
)

// AdminConsoleService backs the dashboard: it lists every request newest
// first, filters the fetched snapshot in memory, and flips statuses.
type AdminConsoleService struct {
	repo repositories.RequestRepository
}

func NewAdminConsoleService(repo repositories.RequestRepository) *AdminConsoleService {
	return &AdminConsoleService{repo: repo}
}

// ListAll fetches the entire requests collection (no pagination) sorted
// by creation time descending. Records without a creation time keep
// their relative order.
func (s *AdminConsoleService) ListAll(ctx context.Context) ([]models.Request, error) {
	requests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	SortByCreatedAtDesc(requests)

	if requests == nil {
		requests = []models.Request{}
	}
	return requests, nil
}

// UpdateStatus writes the new status for one request and returns the
// updated record so the caller's list and selection stay in sync with
// the store. Any status can move to any status, including itself.
func (s *AdminConsoleService) UpdateStatus(ctx context.Context, id, status string) (*models.Request, error) {
	if !models.IsValidStatus(status) {
		return nil, models.ValidationErrors{"status": fmt.Sprintf("Unknown status %q", status)}
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// SortByCreatedAtDesc orders requests newest first, in place. A nil
// CreatedAt on either side compares as a tie; the sort is stable so such
// records keep their fetch order.
func SortByCreatedAtDesc(requests []models.Request) {
	sort.SliceStable(requests, func(i, j int) bool {
		if requests[i].CreatedAt == nil || requests[j].CreatedAt == nil {
			return false
		}
		return requests[i].CreatedAt.After(*requests[j].CreatedAt)
	})
}

// FilterRequests narrows a fetched snapshot. searchTerm matches
// case-insensitively against first name, last name, email or subject;
// statusFilter must match exactly, with "all" matching everything. Both
// conditions apply together.
func FilterRequests(requests []models.Request, searchTerm, statusFilter string) []models.Request {
	search := strings.ToLower(strings.TrimSpace(searchTerm))

	filtered := make([]models.Request, 0, len(requests))
	for _, req := range requests {
		if search != "" && !matchesSearch(req, search) {
			continue
		}
		if statusFilter != "all" && statusFilter != "" && req.Status != statusFilter {
			continue
		}
		filtered = append(filtered, req)
	}
	return filtered
}

func matchesSearch(req models.Request, search string) bool {
	return strings.Contains(strings.ToLower(req.FirstName), search) ||
		strings.Contains(strings.ToLower(req.LastName), search) ||
		strings.Contains(strings.ToLower(req.Email), search) ||
		strings.Contains(strings.ToLower(req.Subject), search)
}

// Stats derives the dashboard counters from a fetched snapshot. Counts
// are never persisted.
func Stats(requests []models.Request) models.RequestStats {
	stats := models.RequestStats{Total: len(requests)}
	for _, req := range requests {
		switch req.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusProcessed:
			stats.Processed++
		case models.StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}
