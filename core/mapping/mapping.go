package mapping

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ComparePair associates a source column with a target column.
// It serializes as a two element array: ["FreeStock2", "FreeStock"].
type ComparePair struct {
	Source string
	Target string
}

// MarshalJSON encodes the pair as [source, target].
func (p ComparePair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Source, p.Target})
}

// UnmarshalJSON decodes a two element array.
func (p *ComparePair) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("compare pair: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("compare pair must have exactly 2 columns, got %d", len(raw))
	}
	p.Source, p.Target = raw[0], raw[1]
	return nil
}

// MarshalYAML encodes the pair as a flow sequence.
func (p ComparePair) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []string{p.Source, p.Target} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v})
	}
	return node, nil
}

// UnmarshalYAML decodes a two element sequence.
func (p *ComparePair) UnmarshalYAML(value *yaml.Node) error {
	var raw []string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("compare pair: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("compare pair must have exactly 2 columns, got %d", len(raw))
	}
	p.Source, p.Target = raw[0], raw[1]
	return nil
}

// Mapping configures one reconciliation between a source and a target table.
type Mapping struct {
	// SrcKey1 is the primary source key column.
	SrcKey1 string `json:"src_key1" yaml:"src_key1"`
	// SrcKey2 is the optional secondary source key column.
	SrcKey2 string `json:"src_key2,omitempty" yaml:"src_key2,omitempty"`
	// TgtKey1 is the primary target key column.
	TgtKey1 string `json:"tgt_key1" yaml:"tgt_key1"`
	// TgtKey2 is the optional secondary target key column.
	TgtKey2 string `json:"tgt_key2,omitempty" yaml:"tgt_key2,omitempty"`
	// ComparePairs lists the columns to compare. The first pair is the primary quantity.
	ComparePairs []ComparePair `json:"compare_pairs" yaml:"compare_pairs"`
	// SrcPassthrough lists descriptive source columns carried into the results.
	SrcPassthrough []string `json:"src_passthrough,omitempty" yaml:"src_passthrough,omitempty"`
	// TgtPassthrough lists descriptive target columns carried into the results.
	TgtPassthrough []string `json:"tgt_passthrough,omitempty" yaml:"tgt_passthrough,omitempty"`
}

// SourceKeys returns the configured source key columns (1 or 2).
func (m Mapping) SourceKeys() []string {
	return keys(m.SrcKey1, m.SrcKey2)
}

// TargetKeys returns the configured target key columns (1 or 2).
func (m Mapping) TargetKeys() []string {
	return keys(m.TgtKey1, m.TgtKey2)
}

func keys(k1, k2 string) []string {
	var out []string
	for _, k := range []string{k1, k2} {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Primary returns the first compare pair. It panics on an unvalidated mapping
// without pairs.
func (m Mapping) Primary() ComparePair {
	return m.ComparePairs[0]
}

// SourceCompareColumns returns the distinct source columns of the compare pairs.
func (m Mapping) SourceCompareColumns() []string {
	cols := make([]string, 0, len(m.ComparePairs))
	for _, p := range m.ComparePairs {
		cols = append(cols, p.Source)
	}
	return dedupe(cols)
}

// TargetCompareColumns returns the distinct target columns of the compare pairs.
func (m Mapping) TargetCompareColumns() []string {
	cols := make([]string, 0, len(m.ComparePairs))
	for _, p := range m.ComparePairs {
		cols = append(cols, p.Target)
	}
	return dedupe(cols)
}

// SourceColumns returns every source column the mapping references.
func (m Mapping) SourceColumns() []string {
	return dedupe(append(append(m.SourceKeys(), m.SourceCompareColumns()...), m.SrcPassthrough...))
}

// TargetColumns returns every target column the mapping references.
func (m Mapping) TargetColumns() []string {
	return dedupe(append(append(m.TargetKeys(), m.TargetCompareColumns()...), m.TgtPassthrough...))
}

// IsComposite reports whether the join key spans two columns.
func (m Mapping) IsComposite() bool {
	return len(m.SourceKeys()) == 2
}

// Validate checks the structural invariants of the mapping. All problems are
// reported together in a single *ConfigurationError.
func (m Mapping) Validate() error {
	var problems []string

	if strings.TrimSpace(m.SrcKey1) == "" {
		problems = append(problems, "source key 1 is required")
	}
	if strings.TrimSpace(m.TgtKey1) == "" {
		problems = append(problems, "target key 1 is required")
	}
	src, tgt := m.SourceKeys(), m.TargetKeys()
	if len(src) != len(tgt) {
		problems = append(problems, fmt.Sprintf("source and target must use the same number of key columns (source %d, target %d)", len(src), len(tgt)))
	}
	if len(m.ComparePairs) == 0 {
		problems = append(problems, "at least one compare pair is required")
	}
	for i, p := range m.ComparePairs {
		if strings.TrimSpace(p.Source) == "" || strings.TrimSpace(p.Target) == "" {
			problems = append(problems, fmt.Sprintf("compare pair %d has a blank column", i+1))
		}
	}

	if len(problems) > 0 {
		return &ConfigurationError{Problems: problems}
	}
	return nil
}

// ConfigurationError reports an invalid Mapping.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return "invalid mapping: " + strings.Join(e.Problems, "; ")
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
