package booking

import (
	"context"
	"sync"

	"github.com/glowtouch/booking-gateway/internal/availability"
)

// ServicesResult is the per-therapist outcome of the specialty fan-out.
// Failures stay observable instead of silently collapsing to an empty list.
type ServicesResult struct {
	Services []availability.Service
	Err      error
}

// LoadTherapistServices issues one concurrent service-list lookup per
// therapist and waits for all of them. A failed lookup for one therapist
// does not abort the batch.
func (s *Service) LoadTherapistServices(ctx context.Context, therapists []availability.Therapist) map[string]ServicesResult {
	results := make(map[string]ServicesResult, len(therapists))
	if len(therapists) == 0 {
		return results
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, t := range therapists {
		wg.Add(1)
		go func(therapistID string) {
			defer wg.Done()
			services, err := s.api.GetTherapistServices(ctx, therapistID)
			if err != nil {
				s.logger.Warn("therapist services lookup failed", "therapist_id", therapistID, "error", err)
			}
			mu.Lock()
			results[therapistID] = ServicesResult{Services: services, Err: err}
			mu.Unlock()
		}(t.ID)
	}
	wg.Wait()
	return results
}

// ServiceMap flattens fan-out results into the mapping the resolver expects.
// Failed keys contribute an empty list, matching the degrade-to-empty error
// handling of read failures.
func ServiceMap(results map[string]ServicesResult) map[string][]availability.Service {
	out := make(map[string][]availability.Service, len(results))
	for id, res := range results {
		if res.Err != nil {
			out[id] = nil
			continue
		}
		out[id] = res.Services
	}
	return out
}
