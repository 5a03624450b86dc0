package model

import (
	"errors"
	"fmt"

	pkgopenapi "github.com/goliatone/go-stationreg/pkg/openapi"
)

var (
	errOperationIDMissing     = errors.New("model builder: operation id is required")
	errOperationPathMissing   = errors.New("model builder: operation path is required")
	errOperationMethodMissing = errors.New("model builder: operation method is required")
)

func validateOperation(op pkgopenapi.Operation) error {
	if op.ID == "" {
		return errOperationIDMissing
	}
	if op.Path == "" {
		return errOperationPathMissing
	}
	if op.Method == "" {
		return errOperationMethodMissing
	}
	body := op.RequestBody
	if body.Type != "" && body.Type != "object" {
		return fmt.Errorf("model builder: request body must be an object, got %q", body.Type)
	}
	for name, property := range body.Properties {
		switch property.Type {
		case "object", "array":
			return fmt.Errorf("model builder: field %q: nested %s fields are not supported", name, property.Type)
		}
	}
	return nil
}
