package services

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"salonmarket-backend/models"
)

// PromotionCatalog splits a service's promotions into active, upcoming and expired
// relative to a fixed instant. Each partition keeps start time descending order.
type PromotionCatalog struct {
	active   []models.Promotion
	upcoming []models.Promotion
	expired  []models.Promotion
}

// PromotionPage is one page of a paginated promotion list. Page is 1-indexed.
type PromotionPage struct {
	Results    []models.Promotion `json:"results"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	TotalItems int                `json:"totalItems"`
}

// PromotionCounts reports Active as a 0/1 flag since at most one promotion applies.
type PromotionCounts struct {
	Upcoming int `json:"upcoming"`
	Expired  int `json:"expired"`
	Active   int `json:"active"`
}

func NewPromotionCatalog(promotions []models.Promotion, now time.Time) *PromotionCatalog {
	sorted := make([]models.Promotion, len(promotions))
	copy(sorted, promotions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].StartTime.Equal(sorted[j].StartTime) {
			return sorted[i].StartTime.After(sorted[j].StartTime)
		}
		return bytes.Compare(sorted[i].ID[:], sorted[j].ID[:]) > 0
	})

	catalog := &PromotionCatalog{}
	for _, p := range sorted {
		switch {
		case p.ActiveAt(now):
			catalog.active = append(catalog.active, p)
		case p.StartTime.After(now):
			catalog.upcoming = append(catalog.upcoming, p)
		default:
			catalog.expired = append(catalog.expired, p)
		}
	}
	return catalog
}

// Active returns the most recently started active promotion, or nil.
func (c *PromotionCatalog) Active() *models.Promotion {
	if len(c.active) == 0 {
		return nil
	}
	p := c.active[0]
	return &p
}

// Upcoming returns up to limit promotions that have not started yet.
// The order is start time descending, so the latest scheduled promotions come first.
func (c *PromotionCatalog) Upcoming(limit int) []models.Promotion {
	if limit <= 0 {
		return []models.Promotion{}
	}
	if limit > len(c.upcoming) {
		limit = len(c.upcoming)
	}
	out := make([]models.Promotion, limit)
	copy(out, c.upcoming[:limit])
	return out
}

// Expired paginates the expired promotions. A page below 1 is treated as 1 and a page past
// the end returns the last page. An empty set has a single empty page.
func (c *PromotionCatalog) Expired(page, pageSize int) (PromotionPage, error) {
	if pageSize <= 0 {
		return PromotionPage{}, fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidInput, pageSize)
	}

	total := len(c.expired)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	results := make([]models.Promotion, end-start)
	copy(results, c.expired[start:end])

	return PromotionPage{
		Results:    results,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

func (c *PromotionCatalog) Counts() PromotionCounts {
	counts := PromotionCounts{
		Upcoming: len(c.upcoming),
		Expired:  len(c.expired),
	}
	if len(c.active) > 0 {
		counts.Active = 1
	}
	return counts
}
