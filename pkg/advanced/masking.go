package advanced

import (
	"context"

	"scratchrobin-hq/advanced/pkg/masking"
)

// UpsertMaskingProfile stores rules under profileID, replacing any previous
// rule set.
func (s *Service) UpsertMaskingProfile(ctx context.Context, profileID string, rules masking.Rules) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.masking.Upsert(profileID, rules)
	return s.observe(ctx, masking.Component, "upsert_masking_profile", profileID, err)
}

// MaskingProfile returns a copy of the rules stored under profileID.
func (s *Service) MaskingProfile(profileID string) (masking.Rules, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.masking.Get(profileID)
}

// MaskingProfileIDs returns the registered profile ids in sorted order.
func (s *Service) MaskingProfileIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.masking.IDs()
}

// PreviewMask applies inline rules to rows.
func (s *Service) PreviewMask(ctx context.Context, rows []masking.Row, rules masking.Rules) ([]masking.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := masking.Preview(rows, rules)
	s.countRows("", out, err)
	return out, s.observe(ctx, masking.Component, "preview_mask", "", err)
}

// PreviewMaskWithProfile applies a registered profile to rows.
func (s *Service) PreviewMaskWithProfile(ctx context.Context, profileID string, rows []masking.Row) ([]masking.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.masking.PreviewWithProfile(profileID, rows)
	s.countRows(profileID, out, err)
	return out, s.observe(ctx, masking.Component, "preview_mask_profile", profileID, err)
}

func (s *Service) countRows(profileID string, rows []masking.Row, err error) {
	if err == nil && s.metrics.Enabled() {
		s.metrics.Masking().RecordRows(profileID, len(rows))
	}
}
