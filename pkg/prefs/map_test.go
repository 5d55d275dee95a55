package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andybarron/preferences-go/pkg/errors"
	"github.com/andybarron/preferences-go/pkg/testutil"
)

func TestMapSaveLoad(t *testing.T) {
	testutil.SandboxEnv(t)

	faves := NewMap()
	faves.Set("color", "blue")
	faves.Set("programming language", "Go")

	require.NoError(t, faves.Save(appInfo, "tests/docs/basic-example"))

	loaded, err := LoadMap(appInfo, "tests/docs/basic-example")
	require.NoError(t, err)
	assert.Equal(t, faves, loaded)
}

func TestLoadMapMissing(t *testing.T) {
	testutil.SandboxEnv(t)

	_, err := LoadMap(appInfo, "tests/docs/nothing-here")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestMapGet(t *testing.T) {
	m := Map{"color": "blue"}

	v, ok := m.Get("color")
	assert.True(t, ok)
	assert.Equal(t, "blue", v)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}
