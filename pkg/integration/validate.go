package integration

import (
	"slices"

	"scratchrobin-hq/advanced/pkg/reject"
)

// Component is the reject component name for integration failures.
const Component = "integration"

// Default supported providers.
var (
	DefaultAIProviders   = []string{"openai", "ollama", "anthropic", "local_mock"}
	DefaultIssueTrackers = []string{"github", "gitlab", "jira"}
)

// Validator holds the supported provider sets.
type Validator struct {
	aiProviders   []string
	issueTrackers []string
}

// NewValidator creates a validator. Empty sets fall back to the defaults.
func NewValidator(aiProviders, issueTrackers []string) *Validator {
	if len(aiProviders) == 0 {
		aiProviders = DefaultAIProviders
	}
	if len(issueTrackers) == 0 {
		issueTrackers = DefaultIssueTrackers
	}
	return &Validator{
		aiProviders:   slices.Clone(aiProviders),
		issueTrackers: slices.Clone(issueTrackers),
	}
}

// ValidateAIProvider fails with SRB1-R-7006 unless async is enabled, the
// provider is supported, endpointOrModel is set and a non-empty credential
// is present. A nil credential means none was supplied.
func (v *Validator) ValidateAIProvider(providerID string, asyncEnabled bool, endpointOrModel string, credential *string) error {
	var reason string
	switch {
	case !asyncEnabled:
		reason = "async disabled"
	case !slices.Contains(v.aiProviders, providerID):
		reason = "unsupported provider"
	case endpointOrModel == "":
		reason = "endpoint or model missing"
	case credential == nil || *credential == "":
		reason = "credential missing"
	default:
		return nil
	}
	return reject.New(reject.CodeAIProvider, "AI provider configuration invalid", Component, "validate_ai_provider").
		WithDetail(reason)
}

// ValidateIssueTracker fails with SRB1-R-7007 unless the provider is
// supported, projectOrRepo is set and a non-empty credential is present.
func (v *Validator) ValidateIssueTracker(providerID, projectOrRepo string, credential *string) error {
	var reason string
	switch {
	case !slices.Contains(v.issueTrackers, providerID):
		reason = "unsupported provider"
	case projectOrRepo == "":
		reason = "project or repository missing"
	case credential == nil || *credential == "":
		reason = "credential missing"
	default:
		return nil
	}
	return reject.New(reject.CodeIssueTracker, "issue tracker integration invalid configuration/path", Component, "validate_issue_tracker").
		WithDetail(reason)
}

// ValidateGitSync fails with SRB1-R-8201 unless all three conditions hold.
func ValidateGitSync(branchSelected, remoteReachable, conflictsResolved bool) error {
	var reason string
	switch {
	case !branchSelected:
		reason = "no branch selected"
	case !remoteReachable:
		reason = "remote unreachable"
	case !conflictsResolved:
		reason = "unresolved conflicts"
	default:
		return nil
	}
	return reject.New(reject.CodeGitSync, "git sync conflict unresolved", Component, "validate_git_sync").
		WithDetail(reason)
}
