package components

// Choice is one option of a select control.
type Choice struct {
	Value string
	Label string
}

// ModuleStyles are the styles offered for data modules.
var ModuleStyles = []Choice{
	{Value: "square", Label: "Square"},
	{Value: "rounded", Label: "Rounded"},
	{Value: "dots", Label: "Dots"},
	{Value: "extra-rounded", Label: "Extra rounded"},
}

// CornerStyles are the styles offered for finder patterns.
var CornerStyles = []Choice{
	{Value: "square", Label: "Square"},
	{Value: "dot", Label: "Dot"},
	{Value: "extra-rounded", Label: "Extra rounded"},
}

// LogoSizes are the logo size presets, as a fraction of the code.
var LogoSizes = []Choice{
	{Value: "0.1", Label: "10%"},
	{Value: "0.15", Label: "15%"},
	{Value: "0.2", Label: "20%"},
	{Value: "0.25", Label: "25%"},
	{Value: "0.3", Label: "30%"},
	{Value: "0.4", Label: "40%"},
}
