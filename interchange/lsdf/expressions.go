package lsdf

import (
	"math"
	"strconv"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
)

// expressionVariables is the ambient scope available to numeric scene
// fields.
func expressionVariables(width, height int) map[string]interface{} {
	return map[string]interface{}{
		"width":  float64(width),
		"height": float64(height),
		"pi":     math.Pi,
	}
}

// evalExpression evaluates a numeric scene field. Plain scalars skip the
// expression engine entirely.
func evalExpression(asString string, variables map[string]interface{}) (float64, error) {
	if scalar, err := strconv.ParseFloat(asString, 64); err == nil {
		return scalar, nil
	}

	evaluable, err := govaluate.NewEvaluableExpression(asString)
	if err != nil {
		return 0, errors.Wrapf(err, "Error while parsing expression %q", asString)
	}

	result, err := evaluable.Evaluate(variables)
	if err != nil {
		return 0, errors.Wrapf(err, "Error while evaluating expression %q", asString)
	}

	asFloat, ok := result.(float64)
	if !ok {
		return 0, errors.Errorf("Expression %q does not evaluate to a number", asString)
	}
	return asFloat, nil
}

// evalField resolves an optional expression field to its value, or to the
// default when the field is absent.
func evalField(name, asString string, fallback float64, variables map[string]interface{}) (float64, error) {
	if asString == "" {
		return fallback, nil
	}
	value, err := evalExpression(asString, variables)
	if err != nil {
		return 0, errors.Wrapf(err, "Error while evaluating field %s", name)
	}
	return value, nil
}
