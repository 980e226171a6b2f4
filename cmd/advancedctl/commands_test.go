package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	"scratchrobin-hq/advanced/internal/testutil"
	"scratchrobin-hq/advanced/pkg/audit"
	"scratchrobin-hq/advanced/pkg/cli"
	"scratchrobin-hq/advanced/pkg/lineage"
	"scratchrobin-hq/advanced/pkg/reject"
)

const sampleRows = `[{"email":"ada@example.com","name":"Ada"},{"email":"bob@example.com","name":"Bo"}]`

func TestMask(t *testing.T) {
	dir := t.TempDir()
	rows := writeFile(t, dir, "rows.json", sampleRows)
	cfg := writeEngineConfig(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{"inline rules", []string{"mask", "--rows", rows, "--rule", "email=redact", "--rule", "name=prefix_mask", "--format", "json"}},
		{"profile", []string{"mask", "--rows", rows, "--profile", "pii", "--config", cfg, "--format", "json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			testutil.AssertNoError(t, err)

			var got []map[string]string
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("output is not JSON: %v\n%s", err, out)
			}
			want := []map[string]string{
				{"email": "***", "name": "Ad*"},
				{"email": "***", "name": "**"},
			}
			if len(got) != len(want) {
				t.Fatalf("got %d rows, want %d", len(got), len(want))
			}
			for i := range want {
				for k, v := range want[i] {
					if got[i][k] != v {
						t.Errorf("row %d field %s = %q, want %q", i, k, got[i][k], v)
					}
				}
			}
		})
	}
}

func TestMask_TextTable(t *testing.T) {
	rows := writeFile(t, t.TempDir(), "rows.json", sampleRows)

	out, err := execute(t, "mask", "--rows", rows, "--rule", "email=redact")
	testutil.AssertNoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if fields := strings.Fields(lines[0]); len(fields) != 2 || fields[0] != "EMAIL" || fields[1] != "NAME" {
		t.Errorf("header = %q, want EMAIL NAME", lines[0])
	}
	testutil.AssertContains(t, out, "***")
	testutil.AssertContains(t, out, "Ada")
}

func TestMask_Errors(t *testing.T) {
	dir := t.TempDir()
	rows := writeFile(t, dir, "rows.json", sampleRows)

	_, err := execute(t, "mask", "--rows", rows, "--rule", "email=shuffle")
	testutil.AssertRejectDetail(t, err, reject.CodeMaskingRule, "shuffle")
	if cli.ExitCode(err) != cli.ExitReject {
		t.Errorf("ExitCode = %d, want %d", cli.ExitCode(err), cli.ExitReject)
	}

	_, err = execute(t, "mask", "--rows", rows, "--profile", "missing")
	if err == nil {
		t.Error("expected error for unknown profile")
	}

	_, err = execute(t, "mask", "--rows", rows)
	if err == nil {
		t.Error("expected error without --profile or --rule")
	}

	_, err = execute(t, "mask", "--rows", rows, "--rule", "email")
	if err == nil {
		t.Error("expected error for malformed rule")
	}
}

const sampleGraph = `
nodes: [reports, orders, customers, order_summary]
edges:
  - {node: orders}
  - {node: customers}
  - {node: order_summary, parent: orders}
  - {node: reports, parent: order_summary}
`

func TestLineage(t *testing.T) {
	graph := writeFile(t, t.TempDir(), "graph.yaml", sampleGraph)

	tests := []struct {
		name  string
		order string
		want  []string
	}{
		{"lexicographic", "lexicographic", []string{"customers", "order_summary", "orders", "reports"}},
		{"topological", "topological", []string{"customers", "orders", "order_summary", "reports"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "lineage", "--graph", graph, "--order", tt.order, "--format", "json")
			testutil.AssertNoError(t, err)

			var got lineage.Result
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("output is not JSON: %v\n%s", err, out)
			}
			if strings.Join(got.Nodes, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Nodes = %v, want %v", got.Nodes, tt.want)
			}
			if got.Roots != 2 {
				t.Errorf("Roots = %d, want 2", got.Roots)
			}
		})
	}
}

func TestLineage_DepthCSV(t *testing.T) {
	graph := writeFile(t, t.TempDir(), "graph.yaml", sampleGraph)

	out, err := execute(t, "lineage", "--graph", graph, "--depth", "--format", "csv")
	testutil.AssertNoError(t, err)

	want := "NODE,DEPTH,UNRESOLVED_PARENT\n" +
		"customers,0,true\n" +
		"orders,0,true\n" +
		"order_summary,1,false\n" +
		"reports,2,false\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestLineage_UnknownOrder(t *testing.T) {
	graph := writeFile(t, t.TempDir(), "graph.yaml", sampleGraph)
	if _, err := execute(t, "lineage", "--graph", graph, "--order", "random"); err == nil {
		t.Error("expected error for unknown order")
	}
}

func TestSurfaces(t *testing.T) {
	out, err := execute(t, "surfaces", "--profile", "ga", "--format", "json")
	testutil.AssertNoError(t, err)

	var gate map[string]string
	if err := json.Unmarshal([]byte(out), &gate); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if gate["ClusterManagerFrame"] != reject.CodeClusterManager {
		t.Errorf("ClusterManagerFrame = %q, want %q", gate["ClusterManagerFrame"], reject.CodeClusterManager)
	}
	if len(gate) != 5 {
		t.Errorf("got %d surfaces, want 5", len(gate))
	}

	out, err = execute(t, "surfaces")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "enabled")
}

func TestSurfacesOpen(t *testing.T) {
	out, err := execute(t, "surfaces", "open", "ClusterManagerFrame", "--target", "cluster_main")
	testutil.AssertNoError(t, err)
	if strings.TrimSpace(out) != `{"surface":"ClusterManagerFrame","cluster_id":"cluster_main"}` {
		t.Errorf("payload = %s", out)
	}

	_, err = execute(t, "surfaces", "open", "DockerManagerPanel", "--profile", "ga", "--target", "ps")
	testutil.AssertReject(t, err, reject.CodeDockerManager)

	_, err = execute(t, "surfaces", "open", "Nope", "--target", "x")
	if err == nil {
		t.Error("expected error for unknown surface")
	}
}

func writeManifest(t *testing.T, dir string) string {
	t.Helper()
	return writeFile(t, dir, "ext.yaml", `
id: pkg.audit
signature_sha256: `+strings.Repeat("ab", 32)+`
compatibility: srb1
capabilities: [read_catalog, write_catalog]
`)
}

func TestExtensionVerify(t *testing.T) {
	manifest := writeManifest(t, t.TempDir())

	out, err := execute(t, "extension", "verify", "--manifest", manifest, "--request", "read_catalog")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "pkg.audit")

	_, err = execute(t, "extension", "verify", "--manifest", manifest, "--request", "read_catalog,write_catalog")
	testutil.AssertRejectDetail(t, err, reject.CodeExtensionCapability, "write_catalog")

	_, err = execute(t, "extension", "verify", "--manifest", manifest, "--request", "write_catalog", "--sandbox", "read_catalog,write_catalog")
	testutil.AssertNoError(t, err)
}

func TestExtensionVerify_BadSignature(t *testing.T) {
	manifest := writeFile(t, t.TempDir(), "ext.yaml", `
id: pkg.audit
signature_sha256: deadbeef
compatibility: srb1
capabilities: [read_catalog]
`)
	_, err := execute(t, "extension", "verify", "--manifest", manifest, "--request", "read_catalog")
	testutil.AssertReject(t, err, reject.CodeExtensionTrust)
}

func TestIntegrationsAI(t *testing.T) {
	t.Setenv("SCRATCHROBIN_SECRET_CTL_TEST_AI_KEY", "sk-test")

	out, err := execute(t, "integrations", "ai", "--provider", "openai", "--endpoint", "gpt-4o", "--credential", "ctl-test-ai-key")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "openai")
	if strings.Contains(out, "sk-test") {
		t.Error("credential value leaked to output")
	}

	_, err = execute(t, "integrations", "ai", "--provider", "openai", "--endpoint", "gpt-4o", "--credential", "ctl-test-unset")
	testutil.AssertRejectDetail(t, err, reject.CodeAIProvider, "credential missing")

	_, err = execute(t, "integrations", "ai", "--provider", "openai", "--endpoint", "gpt-4o", "--async=false", "--credential", "ctl-test-ai-key")
	testutil.AssertRejectDetail(t, err, reject.CodeAIProvider, "async disabled")
}

func TestIntegrationsTracker(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ctl-test-tracker", "ghp-test\n")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("failed to chmod: %v", err)
	}

	_, err := execute(t, "integrations", "tracker", "--provider", "github", "--project", "org/repo", "--credential", "ctl-test-tracker", "--secrets-dir", dir)
	testutil.AssertNoError(t, err)

	_, err = execute(t, "integrations", "tracker", "--provider", "github", "--project", "org/repo", "--credential", "ctl-test-tracker")
	testutil.AssertRejectDetail(t, err, reject.CodeIssueTracker, "credential missing")

	_, err = execute(t, "integrations", "tracker", "--provider", "bugzilla", "--project", "org/repo", "--credential", "ctl-test-tracker", "--secrets-dir", dir)
	testutil.AssertRejectDetail(t, err, reject.CodeIssueTracker, "unsupported provider")
}

func initRepo(t *testing.T, dir string) *gogit.Repository {
	t.Helper()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	writeFile(t, dir, "schema.sql", "create table t(id int);")
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}
	if _, err := wt.Add("schema.sql"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if _, err := wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	}); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	return repo
}

func TestIntegrationsGit(t *testing.T) {
	dir := t.TempDir()
	repo := initRepo(t, dir)

	out, err := execute(t, "integrations", "git", "--path", dir)
	testutil.AssertRejectDetail(t, err, reject.CodeGitSync, "remote unreachable")
	testutil.AssertContains(t, out, "remote_reachable")

	if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{"https://git.example.com/db.git"}}); err != nil {
		t.Fatalf("failed to create remote: %v", err)
	}
	out, err = execute(t, "integrations", "git", "--path", dir, "--format", "csv")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "remotes,origin")

	_, err = execute(t, "integrations", "git", "--path", t.TempDir())
	if err == nil {
		t.Error("expected error outside a repository")
	}
}

func TestCdcDeliver(t *testing.T) {
	dir := t.TempDir()
	events := writeFile(t, dir, "events.txt", "evt-1\n\nevt-2\n")
	sink := filepath.Join(dir, "sink.log")

	out, err := execute(t, "cdc", "deliver", "--events", events, "--out", sink, "--attempts", "1", "--format", "json")
	testutil.AssertNoError(t, err)

	var res struct {
		Published    int `json:"published"`
		DeadLettered int `json:"dead_lettered"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if res.Published != 2 || res.DeadLettered != 0 {
		t.Errorf("result = %+v, want 2 published", res)
	}

	data, err := os.ReadFile(sink)
	if err != nil {
		t.Fatalf("failed to read sink: %v", err)
	}
	if string(data) != "evt-1\nevt-2\n" {
		t.Errorf("sink = %q", data)
	}
}

func TestGovernanceAndAudit(t *testing.T) {
	dir := t.TempDir()
	cfg := writeEngineConfig(t, dir)

	out, err := execute(t, "governance", "--config", cfg, "--environment", "prod", "--actor", "alice", "--role", "dba", "--action", "deploy", "--approvals", "2")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "deploy allowed in prod")

	_, err = execute(t, "governance", "--config", cfg, "--environment", "prod", "--actor", "bob", "--role", "dev", "--action", "deploy", "--approvals", "2")
	testutil.AssertRejectDetail(t, err, reject.CodeGovernanceDenied, "actor role not allowed")

	_, err = execute(t, "governance", "--config", cfg, "--environment", "staging", "--role", "dba", "--action", "deploy")
	testutil.AssertRejectDetail(t, err, reject.CodeGovernanceDenied, "environment not configured")

	out, err = execute(t, "audit", "query", "--config", cfg, "--outcome", "rejected", "--format", "json")
	testutil.AssertNoError(t, err)
	var records []audit.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(records) != 2 {
		t.Fatalf("got %d rejected records, want 2", len(records))
	}
	for _, r := range records {
		if r.Code != reject.CodeGovernanceDenied {
			t.Errorf("record code = %q, want %q", r.Code, reject.CodeGovernanceDenied)
		}
	}

	out, err = execute(t, "audit", "query", "--config", cfg, "--limit", "1", "--format", "csv")
	testutil.AssertNoError(t, err)
	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Errorf("csv output has %d lines, want header plus one record:\n%s", lines, out)
	}

	out, err = execute(t, "audit", "prune", "--config", cfg)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "deleted 0 audit records")
}

func TestAuditQuery_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad outcome", []string{"audit", "query", "--outcome", "maybe"}},
		{"bad since", []string{"audit", "query", "--since", "yesterday"}},
		{"negative limit", []string{"audit", "query", "--limit", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuildAuditQuery_Last(t *testing.T) {
	resetFlags(rootCmd)
	auditFlags.last = time.Hour
	auditFlags.component = "masking"
	defer resetFlags(rootCmd)

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	q, err := buildAuditQuery(now)
	testutil.AssertNoError(t, err)
	if !q.Since.Equal(now.Add(-time.Hour)) {
		t.Errorf("Since = %v, want %v", q.Since, now.Add(-time.Hour))
	}
	if q.Component != "masking" || q.Limit != 100 {
		t.Errorf("query = %+v", q)
	}
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	cfg := writeEngineConfig(t, dir)

	out, err := execute(t, "config", "validate", "--config", cfg)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, out, "masking_profiles")

	bad := writeFile(t, dir, "bad.yaml", `
masking:
  profiles:
    pii:
      email: shuffle
`)
	if _, err := execute(t, "config", "validate", "--config", bad); err == nil {
		t.Error("expected error for unsupported masking rule")
	}

	if _, err := execute(t, "config", "validate"); err == nil {
		t.Error("expected error without --config")
	}
}

func TestDoctor(t *testing.T) {
	dir := t.TempDir()
	cfg := writeEngineConfig(t, dir)

	out, err := execute(t, "doctor", "--config", cfg, "--format", "json")
	testutil.AssertNoError(t, err)

	var report struct {
		Status string `json:"status"`
		Checks []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"checks"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if report.Status != "ready" {
		t.Errorf("Status = %q, want ready", report.Status)
	}
	names := make(map[string]bool)
	for _, c := range report.Checks {
		names[c.Name] = true
	}
	for _, want := range []string{"audit_storage", "metrics_registry", "masking_profiles"} {
		if !names[want] {
			t.Errorf("missing check %q in %+v", want, report.Checks)
		}
	}
}

func TestDoctor_MissingSecretsDir(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "engine.yaml", `
integrations:
  secrets_dir: "`+filepath.Join(dir, "absent")+`"
`)

	out, err := execute(t, "doctor", "--config", cfg)
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	testutil.AssertContains(t, out, "secrets_dir")
	testutil.AssertContains(t, out, "degraded")
}
