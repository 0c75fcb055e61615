package sheet_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/modalsheet/pkg/errors"
	"github.com/go-drift/modalsheet/pkg/sheet"
	sheettest "github.com/go-drift/modalsheet/pkg/testing"
)

func registered(t *testing.T, reg *sheet.Registry, name string) *sheettest.SheetTester {
	t.Helper()
	cfg := threeSnaps()
	cfg.Name = name
	cfg.Registry = reg
	return openTester(t, cfg)
}

func TestRegistry_AutoRegistersAndDismisses(t *testing.T) {
	reg := sheet.NewRegistry()
	a := registered(t, reg, "filters")
	b := registered(t, reg, "details")

	assert.Equal(t, []string{"filters", "details"}, reg.Keys())
	got, ok := reg.Lookup("filters")
	require.True(t, ok)
	assert.Same(t, a.Sheet(), got)

	assert.True(t, reg.Dismiss("filters"))
	assert.False(t, reg.Dismiss("missing"))
	a.MustSettle(t)
	b.MustSettle(t)

	assert.Equal(t, sheet.PhaseHidden, a.Sheet().Phase())
	assert.Equal(t, sheet.PhaseVisible, b.Sheet().Phase())
}

func TestRegistry_DismissLast(t *testing.T) {
	reg := sheet.NewRegistry()
	a := registered(t, reg, "first")
	b := registered(t, reg, "second")

	require.True(t, reg.DismissLast())
	a.MustSettle(t)
	b.MustSettle(t)

	assert.Equal(t, sheet.PhaseVisible, a.Sheet().Phase())
	assert.Equal(t, sheet.PhaseHidden, b.Sheet().Phase())
}

func TestRegistry_ReRegisterKeepsOrder(t *testing.T) {
	reg := sheet.NewRegistry()
	a := registered(t, reg, "first")
	registered(t, reg, "second")

	reg.Register("first", a.Sheet())

	assert.Equal(t, []string{"first", "second"}, reg.Keys())
}

func TestRegistry_DismissAll(t *testing.T) {
	reg := sheet.NewRegistry()
	a := registered(t, reg, "first")
	b := registered(t, reg, "second")

	reg.DismissAll()
	a.MustSettle(t)
	b.MustSettle(t)

	assert.Equal(t, 1, a.Recorder().Closes())
	assert.Equal(t, 1, b.Recorder().Closes())
}

func TestRegistry_EmptyDismissLast(t *testing.T) {
	assert.False(t, sheet.NewRegistry().DismissLast())
}

func TestRegistry_DisposeUnregisters(t *testing.T) {
	reg := sheet.NewRegistry()
	a := registered(t, reg, "first")

	a.Dispose()

	_, ok := reg.Lookup("first")
	assert.False(t, ok)
	assert.Empty(t, reg.Keys())
}

func TestRegistry_DisposeKeepsReplacement(t *testing.T) {
	reg := sheet.NewRegistry()
	old := registered(t, reg, "shared")
	replacement := registered(t, reg, "shared")

	old.Dispose()

	got, ok := reg.Lookup("shared")
	require.True(t, ok)
	assert.Same(t, replacement.Sheet(), got)
}

func TestRegistry_GeneratedName(t *testing.T) {
	reg := sheet.NewRegistry()
	cfg := threeSnaps()
	cfg.Registry = reg
	a := sheettest.NewSheetTesterWithT(t, cfg)
	b := sheettest.NewSheetTesterWithT(t, cfg)

	assert.True(t, strings.HasPrefix(a.Sheet().Name(), "modal-sheet-"))
	assert.NotEqual(t, a.Sheet().Name(), b.Sheet().Name())
	assert.Len(t, reg.Keys(), 2)
}

func TestRegistryFromContext(t *testing.T) {
	reg := sheet.NewRegistry()
	ctx := sheet.WithRegistry(context.Background(), reg)

	got, err := sheet.RegistryFromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, reg, got)
	assert.Same(t, reg, sheet.MustRegistry(ctx))
}

func TestRegistryFromContext_Missing(t *testing.T) {
	_, err := sheet.RegistryFromContext(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindUsage))
	assert.Panics(t, func() { sheet.MustRegistry(context.Background()) })
}
