/*-------------------------------------------------------------------------
 *
 * validator_test.go
 *    Tests for tool argument validation
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/tools/validator_test.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import "testing"

func refundSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"order_id": map[string]interface{}{"type": "string"},
			"reason":   map[string]interface{}{"type": "string"},
		},
		"required": []interface{}{"order_id", "reason"},
	}
}

/* TestValidateArgsValid tests well-formed arguments */
func TestValidateArgsValid(t *testing.T) {
	args := map[string]interface{}{
		"order_id": "a2b8f5e1-1c7e-4f11-9f3a-1234567890ab",
		"reason":   "arrived damaged",
	}
	if err := ValidateArgs(args, refundSchema()); err != nil {
		t.Errorf("ValidateArgs = %v, want nil", err)
	}
}

/* TestValidateArgsMissingRequired tests required field enforcement */
func TestValidateArgsMissingRequired(t *testing.T) {
	args := map[string]interface{}{"order_id": "abc"}
	if err := ValidateArgs(args, refundSchema()); err == nil {
		t.Error("expected error for missing required field")
	}
}

/* TestValidateArgsWrongType tests type checking */
func TestValidateArgsWrongType(t *testing.T) {
	args := map[string]interface{}{
		"order_id": 42.0,
		"reason":   "bad",
	}
	if err := ValidateArgs(args, refundSchema()); err == nil {
		t.Error("expected error for non-string order_id")
	}
}

/* TestValidateArgsInteger tests JSON float64 handling for integers */
func TestValidateArgsInteger(t *testing.T) {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"limit": map[string]interface{}{"type": "integer"},
		},
	}

	if err := ValidateArgs(map[string]interface{}{"limit": 5.0}, schema); err != nil {
		t.Errorf("whole float64 should pass integer check: %v", err)
	}
	if err := ValidateArgs(map[string]interface{}{"limit": 5.5}, schema); err == nil {
		t.Error("fractional float64 should fail integer check")
	}
}

/* TestValidateArgsEnum tests enum constraint */
func TestValidateArgsEnum(t *testing.T) {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"decision": map[string]interface{}{
				"type": "string",
				"enum": []interface{}{"approve", "reject"},
			},
		},
	}

	if err := ValidateArgs(map[string]interface{}{"decision": "approve"}, schema); err != nil {
		t.Errorf("allowed enum value rejected: %v", err)
	}
	if err := ValidateArgs(map[string]interface{}{"decision": "maybe"}, schema); err == nil {
		t.Error("expected error for value outside enum")
	}
}

/* TestValidateArgsEmptySchema tests the no-arguments case */
func TestValidateArgsEmptySchema(t *testing.T) {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
	if err := ValidateArgs(map[string]interface{}{}, schema); err != nil {
		t.Errorf("empty args with empty properties should pass: %v", err)
	}
	/* Extra fields allowed unless additionalProperties is false */
	if err := ValidateArgs(map[string]interface{}{"extra": "x"}, schema); err != nil {
		t.Errorf("extra field should be allowed by default: %v", err)
	}

	schema["additionalProperties"] = false
	if err := ValidateArgs(map[string]interface{}{"extra": "x"}, schema); err == nil {
		t.Error("extra field should fail when additionalProperties is false")
	}
}

/* TestValidateArgsNil tests nil schema and null values */
func TestValidateArgsNil(t *testing.T) {
	if err := ValidateArgs(map[string]interface{}{}, nil); err == nil {
		t.Error("expected error for nil schema")
	}

	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"note": map[string]interface{}{"type": "string", "nullable": true},
			"name": map[string]interface{}{"type": "string"},
		},
	}
	if err := ValidateArgs(map[string]interface{}{"note": nil}, schema); err != nil {
		t.Errorf("nullable field should accept null: %v", err)
	}
	if err := ValidateArgs(map[string]interface{}{"name": nil}, schema); err == nil {
		t.Error("non-nullable field should reject null")
	}
}
