package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codesage/src/model"
)

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path string
		lang model.Language
		ok   bool
	}{
		{"main.go", model.LangGo, true},
		{"src/app.PY", model.LangPython, true},
		{"web/App.tsx", model.LangTypeScript, true},
		{"native/impl.cc", model.LangCPP, true},
		{"README.md", "", false},
		{"Makefile", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			lang, ok := LanguageForPath(tc.path)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.lang, lang)
			}
		})
	}
}

func TestParse_AllLanguages(t *testing.T) {
	sources := map[model.Language]string{
		model.LangGo:         "package p\n\nfunc f() {}\n",
		model.LangPython:     "def f():\n    return 1\n",
		model.LangJavaScript: "function f() { return 1; }\n",
		model.LangTypeScript: "function f(): number { return 1; }\n",
		model.LangJava:       "class A { int f() { return 1; } }\n",
		model.LangRust:       "fn f() -> i32 { 1 }\n",
		model.LangCPP:        "int f() { return 1; }\n",
		model.LangCSharp:     "class A { int F() { return 1; } }\n",
	}

	r := NewRegistry()
	for lang, src := range sources {
		t.Run(string(lang), func(t *testing.T) {
			unit := &model.SourceUnit{Path: "x", Language: lang, Source: []byte(src)}
			tree, err := r.Parse(unit)
			require.NoError(t, err)
			defer tree.Close()
			assert.False(t, tree.RootNode().HasError())
		})
	}
}

func TestParse_SyntaxErrorIsRejected(t *testing.T) {
	r := NewRegistry()
	unit := &model.SourceUnit{Path: "bad.go", Language: model.LangGo, Source: []byte("package p\n\nfunc {{{\n")}

	_, err := r.Parse(unit)
	require.Error(t, err)

	var parseErr *model.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "bad.go", parseErr.Path)
	assert.Greater(t, parseErr.Line, 0)
}

func TestParse_UnknownLanguage(t *testing.T) {
	r := NewRegistry()
	unit := &model.SourceUnit{Path: "x.zig", Language: "zig", Source: []byte("")}

	_, err := r.Parse(unit)
	var langErr *model.UnsupportedLanguageError
	require.ErrorAs(t, err, &langErr)
}
