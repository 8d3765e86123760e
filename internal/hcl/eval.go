package hcl

import (
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions is the set of functions available to manifest expressions.
var functions = map[string]function.Function{
	"lower":  stdlib.LowerFunc,
	"upper":  stdlib.UpperFunc,
	"format": stdlib.FormatFunc,
	"join":   stdlib.JoinFunc,
}

// evalContext builds the evaluation context for a single manifest file.
func evalContext(file string) *hcl.EvalContext {
	dir := filepath.Dir(file)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"manifest_dir": cty.StringVal(filepath.ToSlash(dir)),
		},
		Functions: functions,
	}
}
