package advanced

import (
	"context"

	"scratchrobin-hq/advanced/pkg/integration"
	"scratchrobin-hq/advanced/pkg/integration/gitsync"
)

// ValidateAiProviderConfig fails with SRB1-R-7006 when the AI provider
// configuration cannot be used.
func (s *Service) ValidateAiProviderConfig(ctx context.Context, providerID string, asyncEnabled bool, endpointOrModel string, credential *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.integrations.ValidateAIProvider(providerID, asyncEnabled, endpointOrModel, credential)
	return s.observe(ctx, integration.Component, "validate_ai_provider", providerID, err)
}

// ValidateIssueTrackerConfig fails with SRB1-R-7007 when the tracker
// configuration cannot be used.
func (s *Service) ValidateIssueTrackerConfig(ctx context.Context, providerID, projectOrRepo string, credential *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.integrations.ValidateIssueTracker(providerID, projectOrRepo, credential)
	return s.observe(ctx, integration.Component, "validate_issue_tracker", providerID, err)
}

// ValidateGitSyncState fails with SRB1-R-8201 unless all conditions hold.
func (s *Service) ValidateGitSyncState(ctx context.Context, branchSelected, remoteReachable, conflictsResolved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := integration.ValidateGitSync(branchSelected, remoteReachable, conflictsResolved)
	return s.observe(ctx, integration.Component, "validate_git_sync", "", err)
}

// CheckGitRepository inspects the working copy at path and validates its
// sync readiness. The state is returned even when validation fails.
func (s *Service) CheckGitRepository(ctx context.Context, path string, reachable gitsync.ReachableFunc) (*gitsync.State, error) {
	state, err := gitsync.Inspect(path, reachable)
	if err != nil {
		return nil, err
	}
	return state, s.ValidateGitSyncState(ctx, state.BranchSelected, state.RemoteReachable, state.ConflictsResolved)
}
