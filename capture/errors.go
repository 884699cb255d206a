package capture

import "errors"

var (
	// ErrNotAnArgument is returned by the typed capture operations when the
	// requested slot is not a formal parameter of the enclosing call.
	ErrNotAnArgument = errors.New("not an argument of the enclosing call")

	// ErrNotScalarNameLike is returned by ValueAsName when the bound value
	// cannot be read as exactly one name-like scalar.
	ErrNotScalarNameLike = errors.New("value is not a single name-like scalar")

	// ErrNotNameLike is returned by ValueListAsNameList when an element of
	// the collection is not name-like.
	ErrNotNameLike = errors.New("value is not name-like")

	// ErrShapeMismatch is returned at injection time when a list artifact
	// reaches a single-injection site or vice versa.
	ErrShapeMismatch = errors.New("quoted name shape mismatch")

	// ErrAssignTargetOnly is returned at injection time when an artifact
	// tagged for assignment-target use reaches any other injection site.
	ErrAssignTargetOnly = errors.New("quoted name is valid only as an assignment target")
)
