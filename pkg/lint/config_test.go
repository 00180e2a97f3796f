package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleConfigHash(t *testing.T) {
	a := NewModuleConfig(CheckerModule).Add(NewModuleConfig(TreeWalkerModule).Add(
		NewModuleConfig("X").Set("b", "2").Set("a", "1"),
	))
	b := NewModuleConfig(CheckerModule).Add(NewModuleConfig(TreeWalkerModule).Add(
		NewModuleConfig("X").Set("a", "1").Set("b", "2"),
	))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Len(t, a.Hash(), 64)

	b.Modules[0].Modules[0].Set("a", "3")
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestModuleConfigClone(t *testing.T) {
	orig := NewModuleConfig(CheckerModule).Set("tabWidth", "4").Add(
		NewModuleConfig(TreeWalkerModule).Add(NewModuleConfig("X").SetMessage("k", "v")),
	)
	clone := orig.Clone()
	require.Equal(t, orig, clone)

	clone.Set("tabWidth", "2")
	clone.Modules[0].Modules[0].SetMessage("k", "changed")
	v, _ := orig.Property("tabWidth")
	assert.Equal(t, "4", v)
	assert.Equal(t, "v", orig.Modules[0].Modules[0].Messages["k"])
}

func TestDefaultConfig(t *testing.T) {
	Register(ModuleInfo{Name: "TestDefaultOn", Default: true, New: func(Properties) (Check, error) { return &badWord{}, nil }})
	Register(ModuleInfo{Name: "TestDefaultOff", New: func(Properties) (Check, error) { return &badWord{}, nil }})
	t.Cleanup(func() {
		Unregister("TestDefaultOn")
		Unregister("TestDefaultOff")
	})

	cfg := DefaultConfig()
	assert.Equal(t, CheckerModule, cfg.Name)
	require.Len(t, cfg.Modules, 1)
	var names []string
	for _, m := range cfg.Modules[0].Modules {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "TestDefaultOn")
	assert.NotContains(t, names, "TestDefaultOff")
}

func TestProperties(t *testing.T) {
	props := Properties{"n": " 4 ", "flag": "true", "bad": "x", "list": " a, ,b ,"}

	n, err := props.Int("n", 8, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = props.Int("missing", 8, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	_, err = props.Int("bad", 8, 1)
	assert.EqualError(t, err, "Cannot set property 'bad' to 'x'")

	_, err = Properties{"n": "0"}.Int("n", 8, 1)
	assert.EqualError(t, err, "Cannot set property 'n' to '0'")

	b, err := props.Bool("flag", false)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = props.Bool("bad", false)
	var propErr *PropertyError
	require.ErrorAs(t, err, &propErr)
	assert.Equal(t, "bad", propErr.Name)

	assert.Equal(t, []string{"a", "b"}, props.Strings("list"))
	assert.Nil(t, props.Strings("missing"))
	assert.Equal(t, "dflt", props.String("missing", "dflt"))
}

func TestRegistryLookup(t *testing.T) {
	registerBadWord(t)

	info, ok := Lookup("TestBadWord")
	require.True(t, ok)
	assert.Equal(t, "TestBadWord", info.Name)

	_, ok = Lookup("TestBadWordCheck")
	assert.True(t, ok)

	_, ok = Lookup("Nope")
	assert.False(t, ok)

	all := All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Name, all[i].Name)
	}

	desc, err := info.Describe()
	require.NoError(t, err)
	assert.Equal(t, "TestBadWord", desc.Name)
	assert.Equal(t, []string{"IDENT"}, desc.DefaultTokens)
	assert.Equal(t, []string{"bad.word"}, desc.MessageKeys)
}
