package starlark

import (
	"github.com/leapstack-labs/incantata/pkg/core"
	"github.com/leapstack-labs/incantata/pkg/dict"
	"go.starlark.net/starlark"
)

// Predeclared returns the globals every filter script can use:
// structure, vowels, consonants and length.
func Predeclared(info *StructureInfo) starlark.StringDict {
	globals := starlark.StringDict{
		"vowels":     starlark.String(core.Vowels),
		"consonants": starlark.String(core.Consonants),
		"length":     starlark.NewBuiltin("length", length),
	}
	if info != nil {
		globals["structure"] = info.ToStarlark()
	}
	return globals
}

// length counts user-perceived characters, so length("é") is 1 whether
// the accent is precomposed or combining.
func length(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	return starlark.MakeInt(dict.Len(s)), nil
}
