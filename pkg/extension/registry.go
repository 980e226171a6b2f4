package extension

import (
	"sort"

	"scratchrobin-hq/advanced/pkg/reject"
)

// Package is a registered extension package.
type Package struct {
	ID              string
	SignatureSHA256 string
	Compatibility   string
	Capabilities    Capabilities
}

// Registry holds registered packages keyed by id. It is not safe for
// concurrent use.
type Registry struct {
	packages map[string]*Package
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{packages: make(map[string]*Package)}
}

// Register records a package and its capability ceiling. The id and
// compatibility tag must be non-empty, the signature a lowercase hex SHA-256
// digest and the capability set non-empty; otherwise SRB1-R-7303.
// Registering an existing id replaces it.
func (r *Registry) Register(id, signature, compatibility string, caps Capabilities) error {
	if id == "" || !ValidSignature(signature) || compatibility == "" || len(caps) == 0 {
		return reject.New(reject.CodeExtensionTrust, "extension package registration invalid", Component, "register_extension_package").
			WithDetail(id)
	}
	r.packages[id] = &Package{
		ID:              id,
		SignatureSHA256: signature,
		Compatibility:   compatibility,
		Capabilities:    caps.clone(),
	}
	return nil
}

// RegisterManifest registers the package described by m.
func (r *Registry) RegisterManifest(m *Manifest) error {
	return r.Register(m.ID, m.SignatureSHA256, m.Compatibility, NewCapabilities(m.Capabilities...))
}

// Execute checks that a registered package may run with requested inside
// sandbox. An unknown id fails with SRB1-R-7303. A registered package counts
// as verified; the signature is not re-checked here. Capabilities beyond the
// registered ceiling or the sandbox fail with SRB1-R-7304.
func (r *Registry) Execute(id string, requested, sandbox Capabilities) error {
	pkg, ok := r.packages[id]
	if !ok {
		return reject.New(reject.CodeExtensionTrust, "unknown extension package", Component, "execute_extension_package").
			WithDetail(id)
	}
	if err := ValidateRuntime(true, true, requested, pkg.Capabilities); err != nil {
		return err
	}
	return enforceAllowlist(requested, sandbox)
}

// Get returns a copy of the registered package.
func (r *Registry) Get(id string) (Package, bool) {
	pkg, ok := r.packages[id]
	if !ok {
		return Package{}, false
	}
	out := *pkg
	out.Capabilities = pkg.Capabilities.clone()
	return out, true
}

// IDs returns the registered package ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.packages))
	for id := range r.packages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
