// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

var ErrActivityNotFound = errors.New("activity not found")

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return &reg, nil
}

// Find returns the activity registered for a Zeebe task type.
func (r *ActivityRegistry) Find(taskType string) (*Activity, error) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrActivityNotFound, taskType)
}

// InputSchema returns the input schema for taskType, or nil when the activity
// is unknown or declares none.
func (r *ActivityRegistry) InputSchema(taskType string) map[string]interface{} {
	a, err := r.Find(taskType)
	if err != nil || len(a.InputSchema) == 0 {
		return nil
	}
	return a.InputSchema
}

// Validate checks the registry for duplicate ids or task types, unparseable
// timeouts and input schemas that do not compile.
func (r *ActivityRegistry) Validate() error {
	var problems []error
	ids := map[string]bool{}
	taskTypes := map[string]bool{}

	for _, a := range r.Activities {
		if a.ID == "" || a.TaskType == "" {
			problems = append(problems, fmt.Errorf("activity %q: id and taskType are required", a.ID))
			continue
		}
		if ids[a.ID] {
			problems = append(problems, fmt.Errorf("duplicate activity id %q", a.ID))
		}
		if taskTypes[a.TaskType] {
			problems = append(problems, fmt.Errorf("duplicate taskType %q", a.TaskType))
		}
		ids[a.ID] = true
		taskTypes[a.TaskType] = true

		if _, err := a.TimeoutDuration(); err != nil {
			problems = append(problems, fmt.Errorf("activity %q: timeout: %w", a.ID, err))
		}
		if a.Retries < 0 {
			problems = append(problems, fmt.Errorf("activity %q: retries must not be negative", a.ID))
		}
		if len(a.InputSchema) > 0 {
			if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(a.InputSchema)); err != nil {
				problems = append(problems, fmt.Errorf("activity %q: input schema: %w", a.ID, err))
			}
		}
	}
	return errors.Join(problems...)
}
