package ffmpeg

import (
	"fmt"
	"strconv"
)

// FilterSpec is one declarative appearance adjustment in an export recipe.
// Type selects the adjustment; Params holds its knobs as a loosely-typed map
// so specs survive JSON round trips through the job catalog unchanged.
type FilterSpec struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// CompileFilters converts appearance FilterSpecs into video filter options,
// preserving order. Specs sitting at their neutral value compile to nothing.
// Unknown types are an error so bad extension payloads surface before the
// encoder runs.
func CompileFilters(specs []FilterSpec) ([]Option, error) {
	var opts []Option
	for i, spec := range specs {
		opt, err := compileFilter(spec)
		if err != nil {
			return nil, fmt.Errorf("filter[%d] (%s): %w", i, spec.Type, err)
		}
		if opt != nil {
			opts = append(opts, opt)
		}
	}
	return opts, nil
}

func compileFilter(spec FilterSpec) (Option, error) {
	switch spec.Type {
	case "brightness":
		v := paramFloat(spec.Params, "value", 0)
		if v == 0 {
			return nil, nil
		}
		if v < -1 || v > 1 {
			return nil, fmt.Errorf("value must be between -1 and 1")
		}
		return Filter(fmt.Sprintf("eq=brightness=%.4f", v)), nil

	case "contrast":
		return eqUnitParam(spec.Params, "contrast")

	case "saturation":
		return eqUnitParam(spec.Params, "saturation")

	case "gamma":
		return eqUnitParam(spec.Params, "gamma")

	case "hue":
		degrees := paramFloat(spec.Params, "degrees", 0)
		if degrees == 0 {
			return nil, nil
		}
		return Filter(fmt.Sprintf("hue=h=%.1f", degrees)), nil

	case "grayscale":
		return Filter("hue=s=0"), nil

	case "sharpen":
		amount := paramFloat(spec.Params, "amount", 1.0)
		if amount <= 0 {
			return nil, nil
		}
		return Filter(fmt.Sprintf("unsharp=5:5:%.2f:5:5:0", amount)), nil

	default:
		return nil, fmt.Errorf("unknown filter type")
	}
}

// eqUnitParam handles the eq= adjustments whose neutral value is 1.0.
func eqUnitParam(params map[string]any, name string) (Option, error) {
	v := paramFloat(params, "value", 1.0)
	if v == 1.0 {
		return nil, nil
	}
	if v < 0 {
		return nil, fmt.Errorf("value must be non-negative")
	}
	return Filter(fmt.Sprintf("eq=%s=%.4f", name, v)), nil
}

// paramFloat reads a numeric parameter, tolerating the string and float64
// forms JSON decoding produces.
func paramFloat(params map[string]any, key string, def float64) float64 {
	v, ok := params[key]
	if !ok || v == nil {
		return def
	}
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return def
}
