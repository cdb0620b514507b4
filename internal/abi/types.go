package abi

// RecordKind distinguishes struct, class, and union records.
type RecordKind string

const (
	RecordStruct RecordKind = "struct"
	RecordClass  RecordKind = "class"
	RecordUnion  RecordKind = "union"
)

type RecordField struct {
	FieldName      string `json:"field_name,omitempty" yaml:"field_name,omitempty"`
	ReferencedType string `json:"referenced_type" yaml:"referenced_type"`
	FieldOffset    uint64 `json:"field_offset,omitempty" yaml:"field_offset,omitempty"`
	Access         Access `json:"access,omitempty" yaml:"access,omitempty"`
}

type BaseSpecifier struct {
	ReferencedType string `json:"referenced_type" yaml:"referenced_type"`
	IsVirtual      bool   `json:"is_virtual,omitempty" yaml:"is_virtual,omitempty"`
	Access         Access `json:"access,omitempty" yaml:"access,omitempty"`
}

type VTableComponent struct {
	Kind        string `json:"kind" yaml:"kind"`
	MangledName string `json:"mangled_component_name,omitempty" yaml:"mangled_component_name,omitempty"`
	Value       int64  `json:"component_value,omitempty" yaml:"component_value,omitempty"`
	IsPure      bool   `json:"is_pure,omitempty" yaml:"is_pure,omitempty"`
}

type TemplateArg struct {
	ReferencedType string `json:"referenced_type" yaml:"referenced_type"`
}

type RecordType struct {
	TypeInfo         `yaml:",inline"`
	Fields           []RecordField     `json:"fields,omitempty" yaml:"fields,omitempty"`
	BaseSpecifiers   []BaseSpecifier   `json:"base_specifiers,omitempty" yaml:"base_specifiers,omitempty"`
	VTableComponents []VTableComponent `json:"vtable_components,omitempty" yaml:"vtable_components,omitempty"`
	TemplateArgs     []TemplateArg     `json:"template_args,omitempty" yaml:"template_args,omitempty"`
	Access           Access            `json:"access,omitempty" yaml:"access,omitempty"`
	RecordKind       RecordKind        `json:"record_kind,omitempty" yaml:"record_kind,omitempty"`
	IsAnonymous      bool              `json:"is_anonymous,omitempty" yaml:"is_anonymous,omitempty"`
}

type EnumField struct {
	Name  string `json:"name" yaml:"name"`
	Value int64  `json:"enum_field_value" yaml:"enum_field_value"`
}

type EnumType struct {
	TypeInfo       `yaml:",inline"`
	UnderlyingType string      `json:"underlying_type" yaml:"underlying_type"`
	Fields         []EnumField `json:"enum_fields,omitempty" yaml:"enum_fields,omitempty"`
	Access         Access      `json:"access,omitempty" yaml:"access,omitempty"`
}

type BuiltinType struct {
	TypeInfo   `yaml:",inline"`
	IsUnsigned bool `json:"is_unsigned,omitempty" yaml:"is_unsigned,omitempty"`
	IsIntegral bool `json:"is_integral,omitempty" yaml:"is_integral,omitempty"`
}

type PointerType struct {
	TypeInfo `yaml:",inline"`
}

type LvalueReferenceType struct {
	TypeInfo `yaml:",inline"`
}

type RvalueReferenceType struct {
	TypeInfo `yaml:",inline"`
}

type ArrayType struct {
	TypeInfo `yaml:",inline"`
}

type QualifiedType struct {
	TypeInfo     `yaml:",inline"`
	IsConst      bool `json:"is_const,omitempty" yaml:"is_const,omitempty"`
	IsVolatile   bool `json:"is_volatile,omitempty" yaml:"is_volatile,omitempty"`
	IsRestricted bool `json:"is_restricted,omitempty" yaml:"is_restricted,omitempty"`
}
