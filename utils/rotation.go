package utils

import (
	"errors"
	"sync"
)

// ErrNoCandidates is returned when rotation is asked to pick from an empty
// candidate list, e.g. after filtering to a category with no templates.
var ErrNoCandidates = errors.New("no templates available for rotation")

// TemplateRotator spreads template variety across a campaign run by cycling
// through candidate ids round-robin. Each campaign run owns its own rotator,
// so concurrent runs do not interleave rotation state. The counter is shared
// across categories within a run: a category filter changes the modulus, not
// the counter, which makes distribution uneven when categories alternate.
// That mirrors the observed product behavior and is kept on purpose.
type TemplateRotator struct {
	mu    sync.Mutex
	index int
}

func NewTemplateRotator() *TemplateRotator {
	return &TemplateRotator{}
}

// Next returns the next candidate in round-robin order and advances the
// counter. An empty candidate list is a configuration error.
func (r *TemplateRotator) Next(candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := candidates[r.index%len(candidates)]
	r.index++
	return id, nil
}

// SelectTemplate picks the template id for one prospect.
// An explicit pin always wins. With rotation disabled the fixed default id is
// returned. Otherwise the next id from the (optionally category-filtered)
// catalog order is used.
func (r *TemplateRotator) SelectTemplate(explicit string, rotationEnabled bool, category string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if !rotationEnabled {
		return DefaultTemplateID, nil
	}
	return r.Next(TemplateIDs(category))
}
