package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartfill/smartfill/internal/docx"
	"github.com/smartfill/smartfill/internal/fields"
)

func newTestLocator(t *testing.T) *FieldLocator {
	t.Helper()
	return NewFieldLocator(fields.MustDictionary())
}

func TestLocateVertical(t *testing.T) {
	locator := newTestLocator(t)
	table := docx.NewTable([][]string{
		{"姓名", "张三"},
		{"电话", ""},
	})

	locations, keys := locator.Locate(table, LayoutVertical)
	require.Len(t, keys, 2)

	name, ok := locations["name"]
	require.True(t, ok)
	assert.Equal(t, CellRef{Row: 0, Col: 0}, name.Label)
	assert.Equal(t, []CellRef{{Row: 0, Col: 1}}, name.Values)
	assert.Equal(t, "姓名", name.LabelText)
	assert.Equal(t, LayoutVertical, name.Layout)

	phone, ok := locations["phone"]
	require.True(t, ok)
	assert.Equal(t, []CellRef{{Row: 1, Col: 1}}, phone.Values)
}

func TestLocateVerticalLastWriteWins(t *testing.T) {
	locator := newTestLocator(t)
	table := docx.NewTable([][]string{
		{"姓名", "第一"},
		{"姓名", "第二"},
	})

	locations, keys := locator.Locate(table, LayoutVertical)
	require.Equal(t, []string{"name"}, keys)
	assert.Equal(t, CellRef{Row: 1, Col: 1}, locations["name"].Values[0],
		"a repeated vertical label rebinds to the later row")
}

func TestLocateVerticalSkipsLastColumn(t *testing.T) {
	locator := newTestLocator(t)
	// The label sits in the row's last cell: no next-column value exists,
	// so nothing is bound.
	table := docx.NewTable([][]string{
		{"张三", "姓名"},
	})

	locations, _ := locator.Locate(table, LayoutVertical)
	assert.Empty(t, locations)
}

func TestLocateHorizontal(t *testing.T) {
	locator := newTestLocator(t)
	table := docx.NewTable([][]string{
		{"姓名", "电话", "邮箱"},
		{"", "", ""},
		{"", "", ""},
	})

	locations, keys := locator.Locate(table, LayoutHorizontal)
	require.Len(t, keys, 3)

	name, ok := locations["name_0"]
	require.True(t, ok)
	assert.Equal(t, CellRef{Row: 0, Col: 0}, name.Label)
	assert.Equal(t, []CellRef{{Row: 1, Col: 0}, {Row: 2, Col: 0}}, name.Values)
	assert.Equal(t, "name", name.Field)

	email, ok := locations["email_2"]
	require.True(t, ok)
	assert.Equal(t, []CellRef{{Row: 1, Col: 2}, {Row: 2, Col: 2}}, email.Values)
}

func TestLocateHorizontalDuplicateHeaders(t *testing.T) {
	locator := newTestLocator(t)
	table := docx.NewTable([][]string{
		{"姓名", "姓名"},
		{"", ""},
	})

	locations, keys := locator.Locate(table, LayoutHorizontal)
	assert.ElementsMatch(t, []string{"name_0", "name_1"}, keys)
	assert.Equal(t, "name", locations["name_0"].Field)
	assert.Equal(t, "name", locations["name_1"].Field)
}

func TestLocateHorizontalNoDataRows(t *testing.T) {
	locator := newTestLocator(t)
	table := docx.NewTable([][]string{
		{"姓名", "电话"},
	})

	locations, _ := locator.Locate(table, LayoutHorizontal)
	assert.Empty(t, locations, "a header row with no data rows binds nothing")
}

func TestLocateMixedPrefersRightNeighbor(t *testing.T) {
	locator := newTestLocator(t)
	table := docx.NewTable([][]string{
		{"姓名", ""},
		{"张三", ""},
	})

	locations, _ := locator.Locate(table, LayoutMixed)
	loc, ok := locations["name_0_0"]
	require.True(t, ok)
	assert.Equal(t, []CellRef{{Row: 0, Col: 1}}, loc.Values)
	assert.False(t, loc.SharesLabelCell())
}

func TestLocateMixedFallsBackBelow(t *testing.T) {
	locator := newTestLocator(t)
	// Right neighbor is itself a label, so the value goes below.
	table := docx.NewTable([][]string{
		{"姓名", "电话"},
		{"", ""},
	})

	locations, _ := locator.Locate(table, LayoutMixed)
	name, ok := locations["name_0_0"]
	require.True(t, ok)
	assert.Equal(t, []CellRef{{Row: 1, Col: 0}}, name.Values)

	// The rightmost label has no right neighbor; below is free.
	phone, ok := locations["phone_0_1"]
	require.True(t, ok)
	assert.Equal(t, []CellRef{{Row: 1, Col: 1}}, phone.Values)
}

func TestLocateMixedFallsBackToLabelCell(t *testing.T) {
	locator := newTestLocator(t)
	// 备注 is the last cell of the table: no right, no below.
	table := docx.NewTable([][]string{
		{"张三", "李四"},
		{"王五", "备注"},
	})

	locations, _ := locator.Locate(table, LayoutMixed)
	loc, ok := locations["notes_1_1"]
	require.True(t, ok)
	assert.Equal(t, []CellRef{{Row: 1, Col: 1}}, loc.Values)
	assert.True(t, loc.SharesLabelCell())
}

func TestLocateMixedSeparatorGlyphBlocksNeighbor(t *testing.T) {
	locator := newTestLocator(t)
	// The right neighbor contains a separator glyph, which makes it
	// label-like even though no pattern matches it.
	table := docx.NewTable([][]string{
		{"姓名", "单位：清华"},
		{"", ""},
	})

	locations, _ := locator.Locate(table, LayoutMixed)
	loc, ok := locations["name_0_0"]
	require.True(t, ok)
	assert.Equal(t, []CellRef{{Row: 1, Col: 0}}, loc.Values)
}

func TestLocateMixedSkipsEmptyCells(t *testing.T) {
	locator := newTestLocator(t)
	table := docx.NewTable([][]string{
		{"", ""},
		{"", ""},
	})

	locations, keys := locator.Locate(table, LayoutMixed)
	assert.Empty(t, locations)
	assert.Empty(t, keys)
}

func TestLocateEmptyLayout(t *testing.T) {
	locator := newTestLocator(t)
	locations, keys := locator.Locate(docx.NewTable(nil), LayoutEmpty)
	assert.Empty(t, locations)
	assert.Empty(t, keys)
}

func TestLocateIsIdempotent(t *testing.T) {
	locator := newTestLocator(t)
	table := docx.NewTable([][]string{
		{"姓名", "张三"},
		{"电话", ""},
	})

	first, firstKeys := locator.Locate(table, LayoutVertical)
	second, secondKeys := locator.Locate(table, LayoutVertical)
	assert.Equal(t, first, second)
	assert.Equal(t, firstKeys, secondKeys)
}

func TestLocateCustomDictionary(t *testing.T) {
	dict := fields.MustDictionary(fields.WithCustomPatterns(
		fields.PatternSpec{ID: "lab_name", Exprs: []string{`实验室名称`}},
	))
	locator := NewFieldLocator(dict)
	table := docx.NewTable([][]string{
		{"实验室名称", ""},
		{"姓名", ""},
	})

	locations, _ := locator.Locate(table, LayoutVertical)
	assert.Contains(t, locations, "lab_name")
	assert.Contains(t, locations, "name")
}
