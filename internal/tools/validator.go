/*-------------------------------------------------------------------------
 *
 * validator.go
 *    JSON Schema validator for tool arguments
 *
 * Validates model-supplied tool arguments against the subset of JSON
 * Schema the tool definitions use: types, required fields, and enums.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/tools/validator.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"fmt"
	"math"
	"reflect"
)

/* ValidateArgs validates arguments against a JSON Schema */
func ValidateArgs(args map[string]interface{}, schema map[string]interface{}) error {
	if schema == nil {
		return fmt.Errorf("invalid schema: schema is nil")
	}

	properties, ok := schema["properties"].(map[string]interface{})
	if !ok {
		/* If no properties, allow any args (empty schema) */
		if len(args) > 0 {
			return fmt.Errorf("invalid schema: missing properties but arguments provided")
		}
		return nil
	}

	required, _ := schema["required"].([]interface{})
	requiredSet := make(map[string]bool)
	for _, req := range required {
		if reqStr, ok := req.(string); ok {
			requiredSet[reqStr] = true
		}
	}

	for fieldName := range requiredSet {
		if _, exists := args[fieldName]; !exists {
			return fmt.Errorf("missing required field: %s", fieldName)
		}
	}

	for key, value := range args {
		propSchema, exists := properties[key]
		if !exists {
			if additionalProps, ok := schema["additionalProperties"].(bool); ok && !additionalProps {
				return fmt.Errorf("unknown field: %s (additionalProperties is false)", key)
			}
			/* Allow extra fields by default */
			continue
		}

		propMap, ok := propSchema.(map[string]interface{})
		if !ok {
			return fmt.Errorf("invalid schema for field %s: property definition must be an object", key)
		}

		if err := validateProperty(value, propMap); err != nil {
			return fmt.Errorf("validation failed for field '%s': %w", key, err)
		}
	}

	return nil
}

/* validateProperty validates a single property against its schema */
func validateProperty(value interface{}, schema map[string]interface{}) error {
	if value == nil {
		if typeVal, ok := schema["type"].(string); ok && typeVal == "null" {
			return nil
		}
		if nullable, ok := schema["nullable"].(bool); ok && nullable {
			return nil
		}
		return fmt.Errorf("field cannot be null")
	}

	if expectedType, ok := schema["type"].(string); ok {
		if err := validateType(value, expectedType); err != nil {
			return err
		}
	}

	if enum, ok := schema["enum"].([]interface{}); ok {
		if err := validateEnum(value, enum); err != nil {
			return err
		}
	}

	return nil
}

/* validateType validates the basic type */
func validateType(value interface{}, expectedType string) error {
	actualType := reflect.TypeOf(value).Kind()

	switch expectedType {
	case "string":
		if actualType != reflect.String {
			return fmt.Errorf("expected string, got %v", actualType)
		}
	case "number":
		if actualType != reflect.Float64 && actualType != reflect.Int && actualType != reflect.Int64 {
			return fmt.Errorf("expected number, got %v", actualType)
		}
	case "integer":
		if actualType != reflect.Int && actualType != reflect.Int64 {
			/* JSON decodes every number as float64; accept whole values */
			if actualType == reflect.Float64 {
				floatVal := value.(float64)
				if floatVal != math.Trunc(floatVal) {
					return fmt.Errorf("expected integer, got float64 with decimal part")
				}
				return nil
			}
			return fmt.Errorf("expected integer, got %v", actualType)
		}
	case "boolean":
		if actualType != reflect.Bool {
			return fmt.Errorf("expected boolean, got %v", actualType)
		}
	case "array":
		if actualType != reflect.Slice && actualType != reflect.Array {
			return fmt.Errorf("expected array, got %v", actualType)
		}
	case "object":
		if actualType != reflect.Map {
			return fmt.Errorf("expected object, got %v", actualType)
		}
	default:
		/* Unknown type, skip validation */
	}

	return nil
}

/* validateEnum validates that the value is one of the allowed values */
func validateEnum(value interface{}, enum []interface{}) error {
	for _, allowed := range enum {
		if reflect.DeepEqual(value, allowed) {
			return nil
		}
	}
	return fmt.Errorf("value %v is not one of the allowed values %v", value, enum)
}
