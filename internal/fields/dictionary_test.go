package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDictionaryDefaults(t *testing.T) {
	d, err := NewDictionary()
	require.NoError(t, err)

	if d.Len() == 0 {
		t.Fatal("expected default patterns to be loaded")
	}
	assert.Contains(t, d.IDs(), "name")
	assert.Contains(t, d.IDs(), "phone")
}

func TestLookupMatchesLabelTexts(t *testing.T) {
	d := MustDictionary()

	tests := []struct {
		text string
		want string
	}{
		{"姓名", "name"},
		{"姓 名", "name"},
		{"申请人", "name"},
		{"联系电话", "phone"},
		{"E-mail", "email"},
		{"Email", "email"},
		{"项目名称", "project_name"},
		{"备注", "notes"},
		{"职称", "title"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ids := d.Lookup(tt.text)
			assert.Contains(t, ids, tt.want, "Lookup(%q)", tt.text)

			id, ok := d.Match(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestLookupNoMatch(t *testing.T) {
	d := MustDictionary()

	assert.Empty(t, d.Lookup("张三"))
	_, ok := d.Match("13800138000")
	assert.False(t, ok)
}

func TestMatchTieBreakIsDictionaryOrder(t *testing.T) {
	d := MustDictionary()

	// "负责人签名" matches both name (负责人) and signature (负责人签名);
	// name is registered first and must win.
	ids := d.Lookup("负责人签名")
	require.NotEmpty(t, ids)
	assert.Equal(t, "name", ids[0])

	id, ok := d.Match("负责人签名")
	require.True(t, ok)
	assert.Equal(t, "name", id)
}

func TestCustomPatternsTakePrecedence(t *testing.T) {
	d, err := NewDictionary(WithCustomPatterns(
		PatternSpec{ID: "grant_code", Exprs: []string{`编号`}},
	))
	require.NoError(t, err)

	// 项目编号 matches the built-in project_number too, but the custom
	// identifier is checked first.
	id, ok := d.Match("项目编号")
	require.True(t, ok)
	assert.Equal(t, "grant_code", id)
}

func TestWithoutDefaults(t *testing.T) {
	d, err := NewDictionary(
		WithoutDefaults(),
		WithCustomPatterns(PatternSpec{ID: "special", Exprs: []string{`特殊字段`}}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"special"}, d.IDs())
	_, ok := d.Match("姓名")
	assert.False(t, ok)
}

func TestNewDictionaryRejectsBadInput(t *testing.T) {
	_, err := NewDictionary(WithCustomPatterns(PatternSpec{ID: "", Exprs: []string{`x`}}))
	assert.Error(t, err)

	_, err = NewDictionary(WithCustomPatterns(PatternSpec{ID: "name", Exprs: []string{`x`}}))
	assert.Error(t, err, "duplicate of a default identifier")

	_, err = NewDictionary(WithCustomPatterns(PatternSpec{ID: "bad", Exprs: []string{`(`}}))
	assert.Error(t, err)
}

func TestIsLabel(t *testing.T) {
	d := MustDictionary()

	tests := []struct {
		text string
		want bool
	}{
		{"姓名", true},
		{"联系方式", true},
		{"张三：李四", true}, // separator glyph
		{"a/b", true},
		{"金额（万元）", true},
		{"张三", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, d.IsLabel(tt.text), "IsLabel(%q)", tt.text)
	}
}

func TestLabelCount(t *testing.T) {
	d := MustDictionary()

	// 姓名 matches several identifiers but still counts once.
	assert.Equal(t, 2, d.LabelCount([]string{"姓名", "张三", "电话"}))
	assert.Equal(t, 0, d.LabelCount(nil))
	assert.Equal(t, 0, d.LabelCount([]string{"张三", "李四"}))
}
