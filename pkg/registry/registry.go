// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"prospect-dashboard/internal/common/validation"
)

var ErrActivityNotFound = errors.New("activity not found")

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return ParseRegistry(data)
}

func ParseRegistry(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return &reg, nil
}

// Activity returns the activity registered for taskType.
func (r *ActivityRegistry) Activity(taskType string) (*Activity, error) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrActivityNotFound, taskType)
}

// TimeoutDuration parses Timeout, falling back to def when unset or invalid.
func (a *Activity) TimeoutDuration(def time.Duration) time.Duration {
	if a.Timeout == "" {
		return def
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Validate returns every problem found in the registry.
func (r *ActivityRegistry) Validate() []error {
	var problems []error
	seen := map[string]bool{}
	for _, a := range r.Activities {
		if err := validation.ValidateTaskType(a.TaskType); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", a.ID, err))
		}
		if seen[a.TaskType] {
			problems = append(problems, fmt.Errorf("%s: duplicate task type %q", a.ID, a.TaskType))
		}
		seen[a.TaskType] = true

		if len(a.InputSchema) == 0 {
			problems = append(problems, fmt.Errorf("%s: missing input schema", a.ID))
		} else if err := validation.CompileSchema(a.InputSchema); err != nil {
			problems = append(problems, fmt.Errorf("%s: input schema: %w", a.ID, err))
		}
		if len(a.OutputSchema) > 0 {
			if err := validation.CompileSchema(a.OutputSchema); err != nil {
				problems = append(problems, fmt.Errorf("%s: output schema: %w", a.ID, err))
			}
		}
		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				problems = append(problems, fmt.Errorf("%s: timeout: %w", a.ID, err))
			}
		}
	}
	return problems
}

// Save writes the registry as indented JSON, creating parent directories.
func (r *ActivityRegistry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

// SetField updates one scalar field of the activity with id and stamps
// LastUpdated.
func (r *ActivityRegistry) SetField(id, field, value string, now time.Time) error {
	var a *Activity
	for i := range r.Activities {
		if r.Activities[i].ID == id {
			a = &r.Activities[i]
			break
		}
	}
	if a == nil {
		return fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}

	switch field {
	case "status":
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil || retries < 0 {
			return fmt.Errorf("invalid retries value %q", value)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	r.LastUpdated = now.Format("2006-01-02")
	return nil
}
