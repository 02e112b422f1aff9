package rename

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// jobFile is the on-disk shape of a batch rename file.
type jobFile struct {
	Renames []Options `yaml:"renames"`
}

// LoadJobs reads a YAML batch file of rename jobs:
//
//	renames:
//	  - old: alice
//	    new: alicia
//	  - old: bob
//	    new: rob
//	    dry_run: true
//
// Decoding is strict: unrecognized keys are an error, so a typoed option
// cannot silently turn a rename destructive. Every job is validated before
// any is returned.
func LoadJobs(path string) ([]Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load rename jobs: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var file jobFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("load rename jobs %s: %w", path, err)
	}
	if len(file.Renames) == 0 {
		return nil, fmt.Errorf("load rename jobs %s: no renames listed", path)
	}
	for i, job := range file.Renames {
		if err := job.Validate(); err != nil {
			return nil, fmt.Errorf("load rename jobs %s: job %d: %w", path, i+1, err)
		}
	}
	return file.Renames, nil
}
