package extension

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxManifestSize is the largest manifest file LoadManifest accepts.
const MaxManifestSize = 1 << 20

// Manifest is the on-disk description of an extension package.
type Manifest struct {
	ID              string   `yaml:"id"`
	SignatureSHA256 string   `yaml:"signature_sha256"`
	Compatibility   string   `yaml:"compatibility"`
	Capabilities    []string `yaml:"capabilities"`
}

// LoadManifest reads a YAML manifest from path. Field validation is left to
// Registry.Register so that rejects carry their stable codes.
func LoadManifest(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access manifest: %w", err)
	}
	if info.Size() > MaxManifestSize {
		return nil, fmt.Errorf("manifest size %d exceeds maximum %d bytes", info.Size(), MaxManifestSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes a YAML manifest. Unknown fields are an error.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
