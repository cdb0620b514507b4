package abi

// Entity is implemented by every declared type, function, and global variable.
type Entity interface {
	// LinkageKey returns the stable identity used for dedup and symbol lookup.
	LinkageKey() string
	// SourceFile returns the declaring header, or "" for builtin/implicit entities.
	SourceFile() string
}

// Access is the C++ access specifier of a member or declaration.
type Access string

const (
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
)

// TypeInfo holds the attributes shared by every type kind.
type TypeInfo struct {
	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
	Size           uint64 `json:"size,omitempty" yaml:"size,omitempty"`
	Alignment      uint32 `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	ReferencedType string `json:"referenced_type,omitempty" yaml:"referenced_type,omitempty"`
	SelfType       string `json:"self_type,omitempty" yaml:"self_type,omitempty"`
	SourcePath     string `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	LinkerSetKey   string `json:"linker_set_key" yaml:"linker_set_key"`
}

func (t TypeInfo) LinkageKey() string { return t.LinkerSetKey }

func (t TypeInfo) SourceFile() string { return t.SourcePath }
