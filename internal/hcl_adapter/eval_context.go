package hcl_adapter

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions available to every expression.
var functions = map[string]function.Function{
	"concat": stdlib.ConcatFunc,
	"format": stdlib.FormatFunc,
	"join":   stdlib.JoinFunc,
	"lower":  stdlib.LowerFunc,
	"upper":  stdlib.UpperFunc,
}

// declaredVariable is a variable block together with the file it came from.
type declaredVariable struct {
	block  *hclVariable
	source string
}

// resolveVariables merges declared defaults with caller-supplied overrides.
// Overrides are strings and are converted to the type of the default when
// one exists.
func resolveVariables(declared map[string]declaredVariable, overrides map[string]string) (map[string]cty.Value, error) {
	for name := range overrides {
		if _, ok := declared[name]; !ok {
			return nil, fmt.Errorf("value given for undeclared variable %q", name)
		}
	}

	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make(map[string]cty.Value, len(declared))
	for _, name := range names {
		decl := declared[name]
		raw, overridden := overrides[name]
		switch {
		case overridden && decl.block.Default != nil && !decl.block.Default.IsNull():
			v, err := convert.Convert(cty.StringVal(raw), decl.block.Default.Type())
			if err != nil {
				return nil, fmt.Errorf("variable %q (%s): cannot use %q: %w", name, decl.source, raw, err)
			}
			values[name] = v
		case overridden:
			values[name] = cty.StringVal(raw)
		case decl.block.Default != nil:
			values[name] = *decl.block.Default
		default:
			return nil, fmt.Errorf("variable %q (%s) has no default and no value was given", name, decl.source)
		}
	}
	return values, nil
}

// resolveLocals evaluates every local attribute. Locals may refer to
// variables and to other locals; evaluation repeats until every local is
// known or a pass makes no progress.
func resolveLocals(vars map[string]cty.Value, attrs hcl.Attributes) (map[string]cty.Value, error) {
	locals := make(map[string]cty.Value, len(attrs))
	pending := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		pending = append(pending, attr)
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Name < pending[j].Name })

	for len(pending) > 0 {
		ctx := newEvalContext(vars, locals)
		var next []*hcl.Attribute
		var lastDiags hcl.Diagnostics
		for _, attr := range pending {
			v, diags := attr.Expr.Value(ctx)
			if diags.HasErrors() {
				next = append(next, attr)
				lastDiags = diags
				continue
			}
			locals[attr.Name] = v
		}
		if len(next) == len(pending) {
			return nil, fmt.Errorf("failed to evaluate locals: %w", lastDiags)
		}
		pending = next
	}
	return locals, nil
}

func newEvalContext(vars, locals map[string]cty.Value) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var":   cty.ObjectVal(vars),
			"local": cty.ObjectVal(locals),
		},
		Functions: functions,
	}
}
