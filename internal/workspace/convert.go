package workspace

import (
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// toCty converts a decoded YAML tree into a cty value. Maps become objects
// and sequences become tuples so heterogeneous documents stay addressable.
func toCty(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(val), nil
	case bool:
		return cty.BoolVal(val), nil
	case int, int64, uint64, float64:
		return gocty.ToCtyValue(val, cty.Number)
	case *big.Int:
		return cty.NumberVal(new(big.Float).SetInt(val)), nil
	case time.Time:
		return cty.StringVal(val.Format(time.RFC3339)), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(val))
		for i, e := range val {
			ev, err := toCty(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("[%d]: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		attrs := make(map[string]cty.Value, len(val))
		for _, k := range keys {
			av, err := toCty(val[k])
			if err != nil {
				return cty.NilVal, fmt.Errorf(".%s: %w", k, err)
			}
			attrs[k] = av
		}
		return cty.ObjectVal(attrs), nil
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[fmt.Sprint(k)] = e
		}
		return toCty(m)
	default:
		return cty.NilVal, fmt.Errorf("unsupported value type %T", v)
	}
}
