package integration

import (
	"testing"

	"scratchrobin-hq/advanced/internal/testutil"
	"scratchrobin-hq/advanced/pkg/reject"
)

func strPtr(s string) *string { return &s }

func TestValidateAIProvider(t *testing.T) {
	v := NewValidator(nil, nil)
	tests := []struct {
		name       string
		provider   string
		async      bool
		endpoint   string
		credential *string
		detail     string
	}{
		{"valid", "openai", true, "gpt-4o", strPtr("sk-test"), ""},
		{"local mock", "local_mock", true, "mock", strPtr("x"), ""},
		{"async disabled", "openai", false, "gpt-4o", strPtr("sk-test"), "async disabled"},
		{"unsupported provider", "acme", true, "m", strPtr("x"), "unsupported provider"},
		{"missing endpoint", "ollama", true, "", strPtr("x"), "endpoint or model missing"},
		{"absent credential", "anthropic", true, "model-large", nil, "credential missing"},
		{"empty credential", "anthropic", true, "model-large", strPtr(""), "credential missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateAIProvider(tt.provider, tt.async, tt.endpoint, tt.credential)
			if tt.detail == "" {
				testutil.AssertNoError(t, err)
				return
			}
			testutil.AssertRejectDetail(t, err, reject.CodeAIProvider, tt.detail)
		})
	}
}

func TestValidateIssueTracker(t *testing.T) {
	v := NewValidator(nil, nil)
	tests := []struct {
		name       string
		provider   string
		project    string
		credential *string
		detail     string
	}{
		{"github", "github", "org/repo", strPtr("ghp_x"), ""},
		{"jira", "jira", "DB", strPtr("token"), ""},
		{"unsupported", "trello", "board", strPtr("token"), "unsupported provider"},
		{"missing project", "gitlab", "", strPtr("token"), "project or repository missing"},
		{"missing credential", "gitlab", "grp/repo", nil, "credential missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateIssueTracker(tt.provider, tt.project, tt.credential)
			if tt.detail == "" {
				testutil.AssertNoError(t, err)
				return
			}
			testutil.AssertRejectDetail(t, err, reject.CodeIssueTracker, tt.detail)
		})
	}
}

func TestValidator_ConfiguredProviders(t *testing.T) {
	v := NewValidator([]string{"acme"}, []string{"trello"})
	testutil.AssertNoError(t, v.ValidateAIProvider("acme", true, "m", strPtr("x")))
	testutil.AssertReject(t, v.ValidateAIProvider("openai", true, "m", strPtr("x")), reject.CodeAIProvider)
	testutil.AssertNoError(t, v.ValidateIssueTracker("trello", "board", strPtr("x")))
	testutil.AssertReject(t, v.ValidateIssueTracker("github", "org/repo", strPtr("x")), reject.CodeIssueTracker)
}

func TestValidateGitSync(t *testing.T) {
	testutil.AssertNoError(t, ValidateGitSync(true, true, true))

	for _, tc := range [][3]bool{
		{false, true, true},
		{true, false, true},
		{true, true, false},
		{false, false, false},
	} {
		err := ValidateGitSync(tc[0], tc[1], tc[2])
		r := testutil.AssertReject(t, err, reject.CodeGitSync)
		if r.Message != "git sync conflict unresolved" {
			t.Errorf("%v: message = %q", tc, r.Message)
		}
	}
}
