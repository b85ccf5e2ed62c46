package schema

// baseAttributes are shared by every trace type. "type" is resolved
// separately by SupplyTraceDefaults.
func baseAttributes() Attributes {
	return Attributes{
		"visible":    {ValType: Enumerated, Values: []any{true, false, "legendonly"}, Dflt: true},
		"name":       {ValType: String, Description: "Trace name shown in the legend."},
		"showlegend": {ValType: Boolean, Dflt: true},
		"opacity":    {ValType: Number, Min: Float(0), Max: Float(1), Dflt: 1.0},
		"ids":        {ValType: DataArray, Description: "Per-point identifiers for object constancy."},
		"customdata": {ValType: DataArray},
		"hoverinfo":  {ValType: String, ArrayOk: true, Dflt: "all"},
	}
}

func markerAttributes(colorArrayOk bool) Attributes {
	return Attributes{
		"marker.color":      {ValType: Color, ArrayOk: colorArrayOk},
		"marker.opacity":    {ValType: Number, ArrayOk: true, Min: Float(0), Max: Float(1)},
		"marker.line.color": {ValType: Color, ArrayOk: true},
		"marker.line.width": {ValType: Number, ArrayOk: true, Min: Float(0)},
	}
}

func builtinTraceTypes() map[string]Attributes {
	symbols := []any{"circle", "square", "diamond", "cross", "x", "triangle-up", "triangle-down"}
	dashes := []any{"solid", "dot", "dash", "longdash", "dashdot"}

	return map[string]Attributes{
		"scatter": markerAttributes(true).Merge(Attributes{
			"x":             {ValType: DataArray},
			"y":             {ValType: DataArray},
			"x0":            {ValType: Number, Dflt: 0.0},
			"dx":            {ValType: Number, Dflt: 1.0},
			"y0":            {ValType: Number, Dflt: 0.0},
			"dy":            {ValType: Number, Dflt: 1.0},
			"text":          {ValType: String, ArrayOk: true, Dflt: ""},
			"mode":          {ValType: Enumerated, Values: []any{"lines", "markers", "lines+markers", "text", "none"}, Dflt: "markers"},
			"marker.size":   {ValType: Number, ArrayOk: true, Min: Float(0), Dflt: 6.0},
			"marker.symbol": {ValType: Enumerated, ArrayOk: true, Values: symbols, Dflt: "circle"},
			"line.color":    {ValType: Color},
			"line.width":    {ValType: Number, Min: Float(0), Dflt: 2.0},
			"line.dash":     {ValType: Enumerated, Values: dashes, Dflt: "solid"},
			"error_y.array": {ValType: DataArray},
		}),
		"bar": markerAttributes(true).Merge(Attributes{
			"x":           {ValType: DataArray},
			"y":           {ValType: DataArray},
			"text":        {ValType: String, ArrayOk: true, Dflt: ""},
			"orientation": {ValType: Enumerated, Values: []any{"v", "h"}, Dflt: "v"},
			"width":       {ValType: Number, ArrayOk: true, Min: Float(0)},
			"offset":      {ValType: Number, ArrayOk: true},
			"base":        {ValType: Any, ArrayOk: true},
		}),
		"histogram": markerAttributes(true).Merge(Attributes{
			"x":           {ValType: DataArray},
			"y":           {ValType: DataArray},
			"histfunc":    {ValType: Enumerated, Values: []any{"count", "sum", "avg", "min", "max"}, Dflt: "count"},
			"histnorm":    {ValType: Enumerated, Values: []any{"", "percent", "probability", "density"}, Dflt: ""},
			"nbinsx":      {ValType: Integer, Min: Float(0), Dflt: 0.0},
			"nbinsy":      {ValType: Integer, Min: Float(0), Dflt: 0.0},
			"orientation": {ValType: Enumerated, Values: []any{"v", "h"}, Dflt: "v"},
		}),
		"box": markerAttributes(false).Merge(Attributes{
			"x":          {ValType: DataArray},
			"y":          {ValType: DataArray},
			"boxpoints":  {ValType: Enumerated, Values: []any{"all", "outliers", "suspectedoutliers", false}, Dflt: "outliers"},
			"boxmean":    {ValType: Enumerated, Values: []any{true, "sd", false}, Dflt: false},
			"jitter":     {ValType: Number, Min: Float(0), Max: Float(1)},
			"line.color": {ValType: Color},
			"line.width": {ValType: Number, Min: Float(0), Dflt: 2.0},
		}),
	}
}
