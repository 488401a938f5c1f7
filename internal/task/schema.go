package task

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasklist-go/internal/utils"
)

const (
	schemaBaseURL  = "https://tasklist.nibzard.dev/schema/"
	taskSchemaURL  = schemaBaseURL + "task.schema.json"
	tasksSchemaURL = schemaBaseURL + "tasks.schema.json"
)

var (
	//go:embed task.schema.json
	taskSchemaJSON string
	//go:embed tasks.schema.json
	tasksSchemaJSON string

	schemaOnce  sync.Once
	taskSchema  *jsonschema.Schema
	tasksSchema *jsonschema.Schema
	schemaErr   error
)

func compileSchemas() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(taskSchemaURL, strings.NewReader(taskSchemaJSON)); err != nil {
		schemaErr = fmt.Errorf("add task schema: %w", err)
		return
	}
	if err := compiler.AddResource(tasksSchemaURL, strings.NewReader(tasksSchemaJSON)); err != nil {
		schemaErr = fmt.Errorf("add task list schema: %w", err)
		return
	}

	taskSchema, schemaErr = compiler.Compile(taskSchemaURL)
	if schemaErr != nil {
		return
	}
	tasksSchema, schemaErr = compiler.Compile(tasksSchemaURL)
}

// ValidatePayload checks a service response body against the task wire shape.
// With many set, the body must be a list of tasks. Schema violations are
// returned as *ValidationError values joined together.
func ValidatePayload(data []byte, many bool) error {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return fmt.Errorf("compile task schema: %w", schemaErr)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema := taskSchema
	if many {
		schema = tasksSchema
	}

	err := schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	var errs []error
	collectSchemaErrors(&errs, ve)
	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}
