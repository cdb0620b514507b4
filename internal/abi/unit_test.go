package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesOrder(t *testing.T) {
	assert.Len(t, Categories, 10)
	for _, c := range Categories[:len(TypeCategories)] {
		assert.True(t, c.IsType(), c.String())
	}
	assert.Equal(t, CategoryFunction, Categories[len(Categories)-2])
	assert.Equal(t, CategoryGlobalVar, Categories[len(Categories)-1])
	assert.False(t, CategoryFunction.IsType())
	assert.False(t, CategoryGlobalVar.IsType())
}

func TestKeysFollowDeclarationOrder(t *testing.T) {
	tu := &TranslationUnit{
		RecordTypes: []RecordType{
			{TypeInfo: TypeInfo{LinkerSetKey: "struct_b", SourcePath: "b.h"}},
			{TypeInfo: TypeInfo{LinkerSetKey: "struct_a", SourcePath: "a.h"}},
		},
		Functions: []FunctionDecl{{LinkerSetKey: "_Z3foov", SourcePath: "a.h"}},
	}
	assert.Equal(t, []string{"struct_b", "struct_a"}, tu.Keys(CategoryRecordType))
	assert.Equal(t, []string{"_Z3foov"}, tu.Keys(CategoryFunction))
	assert.Nil(t, tu.Keys(CategoryGlobalVar))
	assert.Equal(t, 2, tu.Len(CategoryRecordType))

	var nilUnit *TranslationUnit
	assert.Zero(t, nilUnit.Len(CategoryFunction))
}

func TestEntityAccessors(t *testing.T) {
	var e Entity = PointerType{TypeInfo: TypeInfo{LinkerSetKey: "int *", SourcePath: "p.h"}}
	assert.Equal(t, "int *", e.LinkageKey())
	assert.Equal(t, "p.h", e.SourceFile())

	e = BuiltinType{TypeInfo: TypeInfo{LinkerSetKey: "int"}}
	assert.Empty(t, e.SourceFile())

	e = GlobalVarDecl{LinkerSetKey: "errno_v", SourcePath: "g.h"}
	assert.Equal(t, "errno_v", e.LinkageKey())
}
