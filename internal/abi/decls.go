package abi

type Parameter struct {
	ReferencedType string `json:"referenced_type" yaml:"referenced_type"`
	DefaultArg     bool   `json:"default_arg,omitempty" yaml:"default_arg,omitempty"`
	IsThisPtr      bool   `json:"is_this_ptr,omitempty" yaml:"is_this_ptr,omitempty"`
}

type FunctionDecl struct {
	FunctionName string        `json:"function_name" yaml:"function_name"`
	LinkerSetKey string        `json:"linker_set_key" yaml:"linker_set_key"`
	SourcePath   string        `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	ReturnType   string        `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	Parameters   []Parameter   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	TemplateArgs []TemplateArg `json:"template_args,omitempty" yaml:"template_args,omitempty"`
	Access       Access        `json:"access,omitempty" yaml:"access,omitempty"`
}

func (f FunctionDecl) LinkageKey() string { return f.LinkerSetKey }
func (f FunctionDecl) SourceFile() string { return f.SourcePath }

type GlobalVarDecl struct {
	Name           string `json:"name" yaml:"name"`
	LinkerSetKey   string `json:"linker_set_key" yaml:"linker_set_key"`
	SourcePath     string `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	ReferencedType string `json:"referenced_type,omitempty" yaml:"referenced_type,omitempty"`
	Access         Access `json:"access,omitempty" yaml:"access,omitempty"`
}

func (g GlobalVarDecl) LinkageKey() string { return g.LinkerSetKey }
func (g GlobalVarDecl) SourceFile() string { return g.SourcePath }

// ElfFunction is a synthesized entry naming one exported function symbol.
type ElfFunction struct {
	Name string `json:"name" yaml:"name"`
}

// ElfObject is a synthesized entry naming one exported data symbol.
type ElfObject struct {
	Name string `json:"name" yaml:"name"`
}
