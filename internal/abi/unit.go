package abi

// TranslationUnit is one ABI descriptor. A per-file descriptor leaves the
// Elf* slices empty; the linked descriptor fills them from the resolved
// exported symbol surface.
type TranslationUnit struct {
	RecordTypes          []RecordType          `json:"record_types,omitempty" yaml:"record_types,omitempty"`
	EnumTypes            []EnumType            `json:"enum_types,omitempty" yaml:"enum_types,omitempty"`
	BuiltinTypes         []BuiltinType         `json:"builtin_types,omitempty" yaml:"builtin_types,omitempty"`
	PointerTypes         []PointerType         `json:"pointer_types,omitempty" yaml:"pointer_types,omitempty"`
	LvalueReferenceTypes []LvalueReferenceType `json:"lvalue_reference_types,omitempty" yaml:"lvalue_reference_types,omitempty"`
	RvalueReferenceTypes []RvalueReferenceType `json:"rvalue_reference_types,omitempty" yaml:"rvalue_reference_types,omitempty"`
	ArrayTypes           []ArrayType           `json:"array_types,omitempty" yaml:"array_types,omitempty"`
	QualifiedTypes       []QualifiedType       `json:"qualified_types,omitempty" yaml:"qualified_types,omitempty"`
	Functions            []FunctionDecl        `json:"functions,omitempty" yaml:"functions,omitempty"`
	GlobalVars           []GlobalVarDecl       `json:"global_vars,omitempty" yaml:"global_vars,omitempty"`
	ElfFunctions         []ElfFunction         `json:"elf_functions,omitempty" yaml:"elf_functions,omitempty"`
	ElfObjects           []ElfObject           `json:"elf_objects,omitempty" yaml:"elf_objects,omitempty"`
}

// Len returns the number of entities of category c.
func (tu *TranslationUnit) Len(c Category) int {
	if tu == nil {
		return 0
	}
	switch c {
	case CategoryRecordType:
		return len(tu.RecordTypes)
	case CategoryEnumType:
		return len(tu.EnumTypes)
	case CategoryBuiltinType:
		return len(tu.BuiltinTypes)
	case CategoryPointerType:
		return len(tu.PointerTypes)
	case CategoryLvalueReferenceType:
		return len(tu.LvalueReferenceTypes)
	case CategoryRvalueReferenceType:
		return len(tu.RvalueReferenceTypes)
	case CategoryArrayType:
		return len(tu.ArrayTypes)
	case CategoryQualifiedType:
		return len(tu.QualifiedTypes)
	case CategoryFunction:
		return len(tu.Functions)
	case CategoryGlobalVar:
		return len(tu.GlobalVars)
	}
	return 0
}

// Entities returns the entities of category c in declaration order.
func (tu *TranslationUnit) Entities(c Category) []Entity {
	if tu.Len(c) == 0 {
		return nil
	}
	switch c {
	case CategoryRecordType:
		return entities(tu.RecordTypes)
	case CategoryEnumType:
		return entities(tu.EnumTypes)
	case CategoryBuiltinType:
		return entities(tu.BuiltinTypes)
	case CategoryPointerType:
		return entities(tu.PointerTypes)
	case CategoryLvalueReferenceType:
		return entities(tu.LvalueReferenceTypes)
	case CategoryRvalueReferenceType:
		return entities(tu.RvalueReferenceTypes)
	case CategoryArrayType:
		return entities(tu.ArrayTypes)
	case CategoryQualifiedType:
		return entities(tu.QualifiedTypes)
	case CategoryFunction:
		return entities(tu.Functions)
	case CategoryGlobalVar:
		return entities(tu.GlobalVars)
	}
	return nil
}

func entities[T Entity](src []T) []Entity {
	out := make([]Entity, len(src))
	for i, e := range src {
		out[i] = e
	}
	return out
}

// Keys returns the linkage keys of category c in declaration order.
func (tu *TranslationUnit) Keys(c Category) []string {
	es := tu.Entities(c)
	if len(es) == 0 {
		return nil
	}
	keys := make([]string, len(es))
	for i, e := range es {
		keys[i] = e.LinkageKey()
	}
	return keys
}
