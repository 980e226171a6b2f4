package advanced

import (
	"context"

	"scratchrobin-hq/advanced/pkg/extension"
)

// ValidateExtensionRuntime checks verification flags (SRB1-R-7303) and that
// requested is within allowlist (SRB1-R-7304).
func (s *Service) ValidateExtensionRuntime(ctx context.Context, signatureOK, compatibilityOK bool, requested, allowlist extension.Capabilities) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := extension.ValidateRuntime(signatureOK, compatibilityOK, requested, allowlist)
	return s.observe(ctx, extension.Component, "validate_extension_runtime", "", err)
}

// RegisterExtensionPackage records a package and its capability ceiling.
func (s *Service) RegisterExtensionPackage(ctx context.Context, packageID, signatureSHA256, compatibilityTag string, capabilities extension.Capabilities) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.extensions.Register(packageID, signatureSHA256, compatibilityTag, capabilities)
	return s.observe(ctx, extension.Component, "register_extension_package", packageID, err)
}

// ExecuteExtensionPackage checks that a registered package may run with
// requested inside sandbox. A nil sandbox uses the configured allowlist.
func (s *Service) ExecuteExtensionPackage(ctx context.Context, packageID string, requested, sandbox extension.Capabilities) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sandbox == nil {
		sandbox = s.sandbox
	}
	err := s.extensions.Execute(packageID, requested, sandbox)
	return s.observe(ctx, extension.Component, "execute_extension_package", packageID, err)
}

// SandboxAllowlist returns the configured default sandbox capabilities.
func (s *Service) SandboxAllowlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sandbox.Sorted()
}
