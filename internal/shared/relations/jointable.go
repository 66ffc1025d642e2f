package relations

import (
	"slices"
	"sync"
)

// JoinTable is an in-memory many-to-many association. Owners write their
// target sets; the inverse view is read through Owners.
type JoinTable struct {
	mu     sync.RWMutex
	owners map[int64]map[int64]struct{}
}

// NewJoinTable returns an empty association.
func NewJoinTable() *JoinTable {
	return &JoinTable{owners: map[int64]map[int64]struct{}{}}
}

// Replace sets the complete target set of owner.
func (j *JoinTable) Replace(owner int64, targets []int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	ids := Normalize(targets)
	if len(ids) == 0 {
		delete(j.owners, owner)
		return
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	j.owners[owner] = set
}

// Targets returns the sorted targets of owner.
func (j *JoinTable) Targets(owner int64) []int64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]int64, 0, len(j.owners[owner]))
	for id := range j.owners[owner] {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Owners returns the sorted owners that reference target.
func (j *JoinTable) Owners(target int64) []int64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := []int64{}
	for owner, targets := range j.owners {
		if _, ok := targets[target]; ok {
			out = append(out, owner)
		}
	}
	slices.Sort(out)
	return out
}

// RemoveOwner drops every row of owner.
func (j *JoinTable) RemoveOwner(owner int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.owners, owner)
}

// RemoveTarget drops every row pointing at target.
func (j *JoinTable) RemoveTarget(target int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for owner, targets := range j.owners {
		delete(targets, target)
		if len(targets) == 0 {
			delete(j.owners, owner)
		}
	}
}
