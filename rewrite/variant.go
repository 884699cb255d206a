package rewrite

// CaptureVariant is the closed enumeration of the five capture-call
// shapes the engine recognizes. The emit switch over it is total; adding
// a variant without extending the switch is a compile-visible hole.
type CaptureVariant int

const (
	VariantTypedName CaptureVariant = iota
	VariantTypedNameLHS
	VariantTypedList
	VariantValueName
	VariantValueList
)

func (v CaptureVariant) String() string {
	switch v {
	case VariantTypedName:
		return "typed-name"
	case VariantTypedNameLHS:
		return "typed-name-lhs"
	case VariantTypedList:
		return "typed-list"
	case VariantValueName:
		return "value-name"
	case VariantValueList:
		return "value-list"
	default:
		return "unknown"
	}
}

// IsList reports whether the variant produces a name list rather than a
// single name.
func (v CaptureVariant) IsList() bool {
	return v == VariantTypedList || v == VariantValueList
}

// IsAssignTarget reports whether the variant's artifact is tagged for
// assignment-target injection.
func (v CaptureVariant) IsAssignTarget() bool {
	return v == VariantTypedNameLHS
}

// MarkerKind identifies the injection marker a capture call was found
// under.
type MarkerKind int

const (
	MarkerSingle       MarkerKind = iota // !!
	MarkerSplice                         // !!!
	MarkerAssignTarget                   // !! on the left of := (or =)
)

func (m MarkerKind) String() string {
	switch m {
	case MarkerSingle:
		return "single"
	case MarkerSplice:
		return "splice"
	case MarkerAssignTarget:
		return "assign-target"
	default:
		return "unknown"
	}
}
