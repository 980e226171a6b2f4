package masking

import (
	"sort"

	"scratchrobin-hq/advanced/pkg/reject"
)

// Registry holds masking profiles keyed by profile id.
type Registry struct {
	profiles map[string]Rules
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]Rules)}
}

// Upsert stores rules under profileID, replacing any previous profile.
func (r *Registry) Upsert(profileID string, rules Rules) error {
	if profileID == "" {
		return reject.New(reject.CodeMaskingRule, "masking profile id missing", Component, "upsert_masking_profile")
	}
	if err := rules.validate("upsert_masking_profile"); err != nil {
		return err
	}
	r.profiles[profileID] = rules.Clone()
	return nil
}

// Get returns a copy of the named profile.
func (r *Registry) Get(profileID string) (Rules, bool) {
	rules, ok := r.profiles[profileID]
	if !ok {
		return nil, false
	}
	return rules.Clone(), true
}

// Remove deletes a profile. It reports whether the profile existed.
func (r *Registry) Remove(profileID string) bool {
	_, ok := r.profiles[profileID]
	delete(r.profiles, profileID)
	return ok
}

// IDs returns the registered profile ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	return len(r.profiles)
}

// PreviewWithProfile masks rows with a registered profile.
func (r *Registry) PreviewWithProfile(profileID string, rows []Row) ([]Row, error) {
	rules, ok := r.profiles[profileID]
	if !ok {
		return nil, reject.New(reject.CodeMaskingRule, "masking profile missing", Component, "preview_mask").WithDetail(profileID)
	}
	return Preview(rows, rules)
}

// Replace swaps every profile for the given set, validating all of them first.
// On error the registry is left unchanged.
func (r *Registry) Replace(profiles map[string]Rules) error {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	next := make(map[string]Rules, len(profiles))
	for _, id := range ids {
		rules := profiles[id]
		if id == "" {
			return reject.New(reject.CodeMaskingRule, "masking profile id missing", Component, "load_masking_profiles")
		}
		if err := rules.validate("load_masking_profiles"); err != nil {
			return err
		}
		next[id] = rules.Clone()
	}
	r.profiles = next
	return nil
}
