package reject

// Stable reject codes. These values are part of the external contract and must
// never change meaning.
const (
	// CodeCdcExhausted indicates a CDC event exhausted all delivery attempts.
	CodeCdcExhausted = "SRB1-R-7004"

	// CodeMaskingRule indicates an unsupported masking rule or unknown masking profile.
	CodeMaskingRule = "SRB1-R-7005"

	// CodeAIProvider indicates an invalid AI provider configuration.
	CodeAIProvider = "SRB1-R-7006"

	// CodeIssueTracker indicates an invalid issue-tracker configuration.
	CodeIssueTracker = "SRB1-R-7007"

	// CodeClusterManager indicates the cluster manager surface is unavailable.
	CodeClusterManager = "SRB1-R-7008"

	// CodeReplicationManager indicates the replication manager surface is unavailable.
	CodeReplicationManager = "SRB1-R-7009"

	// CodeEtlManager indicates the ETL manager surface is unavailable.
	CodeEtlManager = "SRB1-R-7010"

	// CodeDockerManager indicates the Docker manager surface is unavailable.
	CodeDockerManager = "SRB1-R-7011"

	// CodeTestRunner indicates the test runner surface is unavailable.
	CodeTestRunner = "SRB1-R-7012"

	// CodeReviewQuorum indicates the review quorum was not met or the review
	// action is invalid.
	CodeReviewQuorum = "SRB1-R-7301"

	// CodeExtensionTrust indicates an extension failed signature, compatibility
	// or registration checks.
	CodeExtensionTrust = "SRB1-R-7303"

	// CodeExtensionCapability indicates a requested capability outside the allowlist.
	CodeExtensionCapability = "SRB1-R-7304"

	// CodeAdvisoryNotApproved indicates the advisory state is not "Approved".
	CodeAdvisoryNotApproved = "SRB1-R-7305"

	// CodeGitSync indicates Git sync is not ready.
	CodeGitSync = "SRB1-R-8201"

	// CodeAuditWrite indicates a required audit write failed.
	CodeAuditWrite = "SRB1-R-3201"

	// CodeGovernanceDenied indicates the governance policy denied the action.
	CodeGovernanceDenied = "SRB1-R-3202"
)

var catalog = map[string]string{
	CodeCdcExhausted:        "CDC event exhausted all delivery attempts",
	CodeMaskingRule:         "unsupported masking rule or unknown masking profile",
	CodeAIProvider:          "AI provider configuration invalid",
	CodeIssueTracker:        "issue tracker configuration invalid",
	CodeClusterManager:      "cluster manager unavailable in the current profile",
	CodeReplicationManager:  "replication manager unavailable in the current profile",
	CodeEtlManager:          "ETL manager unavailable in the current profile",
	CodeDockerManager:       "Docker manager unavailable in the current profile",
	CodeTestRunner:          "test runner unavailable in the current profile",
	CodeReviewQuorum:        "review quorum not met",
	CodeExtensionTrust:      "extension signature or compatibility check failed",
	CodeExtensionCapability: "extension requested a capability outside the allowlist",
	CodeAdvisoryNotApproved: "review advisory state not approved",
	CodeGitSync:             "git sync not ready",
	CodeAuditWrite:          "required audit write failed",
	CodeGovernanceDenied:    "governance policy denied action",
}

// Describe returns the catalog condition for a code, or "" for unknown codes.
func Describe(code string) string {
	return catalog[code]
}

// Known reports whether code belongs to the catalog.
func Known(code string) bool {
	_, ok := catalog[code]
	return ok
}
