package extension

import "scratchrobin-hq/advanced/pkg/reject"

// Component is the reject component name for extension failures.
const Component = "extension"

// ValidateRuntime fails with SRB1-R-7303 when either verification flag is
// false, then with SRB1-R-7304 when requested is not a subset of allowlist.
// The 7304 detail names the first offending capability in sorted order.
func ValidateRuntime(signatureOK, compatibilityOK bool, requested, allowlist Capabilities) error {
	if !signatureOK || !compatibilityOK {
		return reject.New(reject.CodeExtensionTrust, "extension signature/compatibility invalid", Component, "validate_extension")
	}
	return enforceAllowlist(requested, allowlist)
}

func enforceAllowlist(requested, allowlist Capabilities) error {
	if missing := requested.Difference(allowlist); len(missing) > 0 {
		return reject.New(reject.CodeExtensionCapability, "extension capability not allowed", Component, "enforce_extension_allowlist").
			WithDetail(missing[0])
	}
	return nil
}

// ValidSignature reports whether sig is a SHA-256 digest written as 64
// lowercase hex characters.
func ValidSignature(sig string) bool {
	if len(sig) != 64 {
		return false
	}
	for i := 0; i < len(sig); i++ {
		c := sig[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
