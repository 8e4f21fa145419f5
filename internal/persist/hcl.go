package persist

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ParseHCL reads top-level attributes of an HCL file. Values must be
// literals convertible to strings; blocks are a structural mismatch.
func ParseHCL(data []byte) (map[string]string, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, "persisted.hcl")
	if diags.HasErrors() {
		return nil, diags
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	values := make(map[string]string, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(&hcl.EvalContext{})
		if diags.HasErrors() {
			return nil, diags
		}
		if val.IsNull() {
			continue
		}
		str, err := convert.Convert(val, cty.String)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		values[name] = str.AsString()
	}
	return values, nil
}
