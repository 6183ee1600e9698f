// Package yaml reads and writes source registries as YAML documents.
package yaml

import (
	"io"
	"os"

	"github.com/fwojciec/texdex"
	"gopkg.in/yaml.v3"
)

// registry is the on-disk layout of a source registry file.
type registry struct {
	Sources []*texdex.Source `yaml:"sources"`
}

// LoadSourcesFile reads and validates the source registry at path.
func LoadSourcesFile(path string) ([]*texdex.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, texdex.WrapError(texdex.EINVALID, err, "failed to open source registry %s", path)
	}
	defer f.Close()

	return DecodeSources(f)
}

// DecodeSources parses a source registry document. Title rules without a
// kind read the node text. The result is validated with
// texdex.ValidateSources.
func DecodeSources(r io.Reader) ([]*texdex.Source, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var reg registry
	if err := dec.Decode(&reg); err != nil {
		if err == io.EOF {
			return nil, texdex.Errorf(texdex.EINVALID, "source registry is empty")
		}
		return nil, texdex.WrapError(texdex.EINVALID, err, "failed to parse source registry")
	}
	if len(reg.Sources) == 0 {
		return nil, texdex.Errorf(texdex.EINVALID, "source registry lists no sources")
	}

	for _, s := range reg.Sources {
		if s == nil {
			return nil, texdex.Errorf(texdex.EINVALID, "source registry contains an empty entry")
		}
		if s.Title.Kind == "" {
			s.Title.Kind = texdex.RuleText
		}
	}

	if err := texdex.ValidateSources(reg.Sources); err != nil {
		return nil, err
	}
	return reg.Sources, nil
}

// EncodeSources writes sources in the format read by DecodeSources.
func EncodeSources(w io.Writer, sources []*texdex.Source) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(registry{Sources: sources}); err != nil {
		return err
	}
	return enc.Close()
}
