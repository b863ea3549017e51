package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Paths records the files a saved mapping was last used with.
type Paths struct {
	SrcPath   string `json:"src_path" yaml:"src_path"`
	TgtPath   string `json:"tgt_path" yaml:"tgt_path"`
	ExportDir string `json:"export_dir" yaml:"export_dir"`
}

// File is the on-disk form of a mapping.
type File struct {
	Mapping Mapping   `json:"mapping_state" yaml:"mapping_state"`
	Paths   Paths     `json:"paths" yaml:"paths"`
	SavedAt time.Time `json:"saved_at,omitempty" yaml:"saved_at,omitempty"`
}

// Load reads a mapping file. The format follows the extension (.yaml/.yml or JSON).
// A document without a mapping_state wrapper is read as a bare Mapping.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping %s: %w", path, err)
	}

	var f File
	if isYAML(path) {
		err = yaml.Unmarshal(data, &f)
	} else {
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping %s: %w", path, err)
	}

	if f.Mapping.SrcKey1 == "" && len(f.Mapping.ComparePairs) == 0 {
		var bare Mapping
		if isYAML(path) {
			err = yaml.Unmarshal(data, &bare)
		} else {
			err = json.Unmarshal(data, &bare)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse mapping %s: %w", path, err)
		}
		f.Mapping = bare
	}

	return &f, nil
}

// Save writes the file, stamping SavedAt.
func (f *File) Save(path string) error {
	f.SavedAt = time.Now().Truncate(time.Second)

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(f)
	} else {
		data, err = json.MarshalIndent(f, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping %s: %w", path, err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
