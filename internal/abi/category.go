package abi

// Category identifies one entity group of a TranslationUnit.
type Category uint8

const (
	CategoryRecordType Category = iota
	CategoryEnumType
	CategoryBuiltinType
	CategoryPointerType
	CategoryLvalueReferenceType
	CategoryRvalueReferenceType
	CategoryArrayType
	CategoryQualifiedType
	CategoryFunction
	CategoryGlobalVar
)

// TypeCategories lists the type categories in link order.
var TypeCategories = []Category{
	CategoryRecordType,
	CategoryEnumType,
	CategoryBuiltinType,
	CategoryPointerType,
	CategoryRvalueReferenceType,
	CategoryLvalueReferenceType,
	CategoryArrayType,
	CategoryQualifiedType,
}

// Categories lists every linkable category in link order: types, functions, globals.
var Categories = append(append([]Category(nil), TypeCategories...), CategoryFunction, CategoryGlobalVar)

func (c Category) String() string {
	switch c {
	case CategoryRecordType:
		return "record_types"
	case CategoryEnumType:
		return "enum_types"
	case CategoryBuiltinType:
		return "builtin_types"
	case CategoryPointerType:
		return "pointer_types"
	case CategoryLvalueReferenceType:
		return "lvalue_reference_types"
	case CategoryRvalueReferenceType:
		return "rvalue_reference_types"
	case CategoryArrayType:
		return "array_types"
	case CategoryQualifiedType:
		return "qualified_types"
	case CategoryFunction:
		return "functions"
	case CategoryGlobalVar:
		return "global_vars"
	}
	return "unknown"
}

// IsType reports whether c holds types, which are never symbol-filtered.
func (c Category) IsType() bool {
	return c <= CategoryQualifiedType
}
