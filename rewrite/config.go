package rewrite

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CaptureNames holds the callee identifiers the engine matches as capture
// calls.
type CaptureNames struct {
	Typed     string `yaml:"typed"`
	TypedLHS  string `yaml:"typed_lhs"`
	TypedList string `yaml:"typed_list"`
	Value     string `yaml:"value"`
	ValueList string `yaml:"value_list"`
}

// FrameworkNames holds the host quoting framework's native quoting
// primitives the engine emits.
type FrameworkNames struct {
	QuoteTyped     string `yaml:"quote_typed"`
	QuoteTypedList string `yaml:"quote_typed_list"`
	QuoteValue     string `yaml:"quote_value"`
	QuoteValueList string `yaml:"quote_value_list"`
}

// Config maps capture-call names to native framework names. Zero-valued
// fields fall back to the defaults.
type Config struct {
	Capture   CaptureNames   `yaml:"capture"`
	Framework FrameworkNames `yaml:"framework"`
}

// DefaultConfig returns the stock name mapping: the friendly capture
// functions on one side, the framework's ensym/sym family on the other.
func DefaultConfig() Config {
	return Config{
		Capture: CaptureNames{
			Typed:     "typed_as_name",
			TypedLHS:  "typed_as_name_lhs",
			TypedList: "typed_list_as_name_list",
			Value:     "value_as_name",
			ValueList: "value_list_as_name_list",
		},
		Framework: FrameworkNames{
			QuoteTyped:     "ensym",
			QuoteTypedList: "ensyms",
			QuoteValue:     "sym",
			QuoteValueList: "syms",
		},
	}
}

// LoadConfig reads a YAML config file. Fields left empty in the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

// normalized fills any empty field from the defaults so a sparse config
// file still yields a complete mapping.
func (c Config) normalized() Config {
	def := DefaultConfig()
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&c.Capture.Typed, def.Capture.Typed)
	fill(&c.Capture.TypedLHS, def.Capture.TypedLHS)
	fill(&c.Capture.TypedList, def.Capture.TypedList)
	fill(&c.Capture.Value, def.Capture.Value)
	fill(&c.Capture.ValueList, def.Capture.ValueList)
	fill(&c.Framework.QuoteTyped, def.Framework.QuoteTyped)
	fill(&c.Framework.QuoteTypedList, def.Framework.QuoteTypedList)
	fill(&c.Framework.QuoteValue, def.Framework.QuoteValue)
	fill(&c.Framework.QuoteValueList, def.Framework.QuoteValueList)
	return c
}

// variantOf resolves a callee identifier to its capture variant.
func (c Config) variantOf(callee string) (CaptureVariant, bool) {
	switch callee {
	case c.Capture.Typed:
		return VariantTypedName, true
	case c.Capture.TypedLHS:
		return VariantTypedNameLHS, true
	case c.Capture.TypedList:
		return VariantTypedList, true
	case c.Capture.Value:
		return VariantValueName, true
	case c.Capture.ValueList:
		return VariantValueList, true
	}
	return 0, false
}

// nativeName returns the framework primitive a variant rewrites to. The
// switch is total over the closed variant enumeration.
func (c Config) nativeName(v CaptureVariant) string {
	switch v {
	case VariantTypedName, VariantTypedNameLHS:
		return c.Framework.QuoteTyped
	case VariantTypedList:
		return c.Framework.QuoteTypedList
	case VariantValueName:
		return c.Framework.QuoteValue
	case VariantValueList:
		return c.Framework.QuoteValueList
	default:
		panic(fmt.Sprintf("rewrite: no native form for variant %d", int(v)))
	}
}
