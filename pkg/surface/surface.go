package surface

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"scratchrobin-hq/advanced/pkg/reject"
)

// Component is the reject component name for surface failures.
const Component = "surface"

// Surface names.
const (
	ClusterManager     = "ClusterManagerFrame"
	ReplicationManager = "ReplicationManagerFrame"
	EtlManager         = "EtlManagerFrame"
	DockerManager      = "DockerManagerPanel"
	TestRunner         = "TestRunnerPanel"
)

type descriptor struct {
	name      string
	code      string
	targetKey string
	label     string
	operation string
}

var surfaces = []descriptor{
	{ClusterManager, reject.CodeClusterManager, "cluster_id", "cluster manager", "open_cluster_manager"},
	{ReplicationManager, reject.CodeReplicationManager, "replication_id", "replication manager", "open_replication_manager"},
	{EtlManager, reject.CodeEtlManager, "job_id", "etl manager", "open_etl_manager"},
	{DockerManager, reject.CodeDockerManager, "operation", "docker manager", "open_docker_manager"},
	{TestRunner, reject.CodeTestRunner, "suite_id", "test runner", "open_test_runner"},
}

// Names returns the surface names in a stable order.
func Names() []string {
	out := make([]string, len(surfaces))
	for i, s := range surfaces {
		out[i] = s.name
	}
	return out
}

// Gate decides surface availability per deployment profile.
type Gate struct {
	previewProfiles []string
}

// NewGate creates a gate. With no profiles given, only "preview" enables
// the surfaces.
func NewGate(previewProfiles ...string) *Gate {
	if len(previewProfiles) == 0 {
		previewProfiles = []string{"preview"}
	}
	return &Gate{previewProfiles: slices.Clone(previewProfiles)}
}

// PreviewProfiles returns the profiles that enable every surface.
func (g *Gate) PreviewProfiles() []string {
	return slices.Clone(g.previewProfiles)
}

// Register maps every surface to "" when profileID enables it, or to the
// surface's reject code when it is disabled.
func (g *Gate) Register(profileID string) map[string]string {
	enabled := g.enabled(profileID)
	out := make(map[string]string, len(surfaces))
	for _, s := range surfaces {
		if enabled {
			out[s.name] = ""
		} else {
			out[s.name] = s.code
		}
	}
	return out
}

func (g *Gate) enabled(profileID string) bool {
	return slices.Contains(g.previewProfiles, profileID)
}

// OpenClusterManager opens the cluster manager for clusterID.
func (g *Gate) OpenClusterManager(profileID, clusterID string) (string, error) {
	return g.open(surfaces[0], profileID, clusterID)
}

// OpenReplicationManager opens the replication manager for replicationID.
func (g *Gate) OpenReplicationManager(profileID, replicationID string) (string, error) {
	return g.open(surfaces[1], profileID, replicationID)
}

// OpenEtlManager opens the ETL manager for jobID.
func (g *Gate) OpenEtlManager(profileID, jobID string) (string, error) {
	return g.open(surfaces[2], profileID, jobID)
}

// OpenDockerManager opens the Docker manager for operation.
func (g *Gate) OpenDockerManager(profileID, operation string) (string, error) {
	return g.open(surfaces[3], profileID, operation)
}

// OpenTestRunner opens the test runner for suiteID.
func (g *Gate) OpenTestRunner(profileID, suiteID string) (string, error) {
	return g.open(surfaces[4], profileID, suiteID)
}

// Open opens the named surface. Unknown names are a plain error, not a reject.
func (g *Gate) Open(surface, profileID, targetID string) (string, error) {
	for _, s := range surfaces {
		if s.name == surface {
			return g.open(s, profileID, targetID)
		}
	}
	return "", fmt.Errorf("unknown surface %q", surface)
}

func (g *Gate) open(s descriptor, profileID, targetID string) (string, error) {
	if !g.enabled(profileID) {
		return "", reject.New(s.code, s.label+" surface disabled in profile", Component, s.operation).WithDetail(profileID)
	}
	if targetID == "" {
		return "", reject.New(s.code, s.targetKey+" required", Component, s.operation)
	}
	return payload(s, targetID), nil
}

// payload renders {"surface":"<name>","<target key>":"<target>"} with the
// surface field first.
func payload(s descriptor, targetID string) string {
	var b strings.Builder
	b.WriteString(`{"surface":`)
	b.Write(quote(s.name))
	b.WriteByte(',')
	b.Write(quote(s.targetKey))
	b.WriteByte(':')
	b.Write(quote(targetID))
	b.WriteByte('}')
	return b.String()
}

func quote(v string) []byte {
	// Marshaling a string cannot fail.
	out, _ := json.Marshal(v)
	return out
}
