package advanced

import (
	"context"

	"scratchrobin-hq/advanced/pkg/surface"
)

// RegisterOptionalSurfaces maps each optional surface to "" when profileID
// enables it, or to its reject code.
func (s *Service) RegisterOptionalSurfaces(profileID string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.Register(profileID)
}

// OpenClusterManager returns the cluster manager descriptor for clusterID.
func (s *Service) OpenClusterManager(ctx context.Context, profileID, clusterID string) (string, error) {
	return s.openSurface(ctx, surface.ClusterManager, profileID, clusterID)
}

// OpenReplicationManager returns the replication manager descriptor.
func (s *Service) OpenReplicationManager(ctx context.Context, profileID, replicationID string) (string, error) {
	return s.openSurface(ctx, surface.ReplicationManager, profileID, replicationID)
}

// OpenEtlManager returns the ETL manager descriptor for jobID.
func (s *Service) OpenEtlManager(ctx context.Context, profileID, jobID string) (string, error) {
	return s.openSurface(ctx, surface.EtlManager, profileID, jobID)
}

// OpenDockerManager returns the Docker manager descriptor for operation.
func (s *Service) OpenDockerManager(ctx context.Context, profileID, operation string) (string, error) {
	return s.openSurface(ctx, surface.DockerManager, profileID, operation)
}

// OpenTestRunner returns the test runner descriptor for suiteID.
func (s *Service) OpenTestRunner(ctx context.Context, profileID, suiteID string) (string, error) {
	return s.openSurface(ctx, surface.TestRunner, profileID, suiteID)
}

func (s *Service) openSurface(ctx context.Context, name, profileID, targetID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.gate.Open(name, profileID, targetID)
	return out, s.observe(ctx, surface.Component, "open_surface", name, err)
}
