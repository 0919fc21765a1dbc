package term

import (
	"reflect"
	"testing"

	"calc.elv.sh/pkg/ui"
)

var bufferBuilderWritesTests = []struct {
	bb    *BufferBuilder
	text  string
	style string
	want  *Buffer
}{
	// Writing nothing.
	{NewBufferBuilder(10), "", "", &Buffer{Width: 10, Lines: [][]Cell{{}}}},
	// Writing a single rune.
	{NewBufferBuilder(10), "a", "1",
		&Buffer{Width: 10, Lines: [][]Cell{{{"a", "1"}}}}},
	// Writing control character.
	{NewBufferBuilder(10), "\033", "",
		&Buffer{Width: 10, Lines: [][]Cell{{{"^[", "7"}}}}},
	// Writing styled control character.
	{NewBufferBuilder(10), "a\033b", "1",
		&Buffer{Width: 10, Lines: [][]Cell{{
			{"a", "1"},
			{"^[", "1;7"},
			{"b", "1"}}}}},
	// Writing text containing a newline.
	{NewBufferBuilder(10), "a\nb", "1",
		&Buffer{Width: 10, Lines: [][]Cell{
			{{"a", "1"}}, {{"b", "1"}}}}},
	// Writing text containing a newline when there is indent.
	{NewBufferBuilder(10).SetIndent(2), "a\nb", "1",
		&Buffer{Width: 10, Lines: [][]Cell{
			{{"a", "1"}},
			{{" ", ""}, {" ", ""}, {"b", "1"}},
		}}},
	// Writing long text that triggers wrapping.
	{NewBufferBuilder(4), "aaaab", "1",
		&Buffer{Width: 4, Lines: [][]Cell{
			{{"a", "1"}, {"a", "1"}, {"a", "1"}, {"a", "1"}},
			{{"b", "1"}}}}},
	// Writing long text that triggers eager wrapping.
	{NewBufferBuilder(4).SetIndent(2).SetEagerWrap(true), "aaaa", "1",
		&Buffer{Width: 4, Lines: [][]Cell{
			{{"a", "1"}, {"a", "1"}, {"a", "1"}, {"a", "1"}},
			{{" ", ""}, {" ", ""}}}}},
}

// TestBufferBuilderWrites tests BufferBuilder.Writes by calling Writes on a
// BufferBuilder and see if the built Buffer matches what is expected.
func TestBufferBuilderWrites(t *testing.T) {
	for _, test := range bufferBuilderWritesTests {
		bb := test.bb
		bb.WriteStringSGR(test.text, test.style)
		buf := bb.Buffer()
		if !reflect.DeepEqual(buf, test.want) {
			t.Errorf("buf.writes(%q, %q) makes it %v, want %v",
				test.text, test.style, buf, test.want)
		}
	}
}

func TestBufferBuilder_WriteStyledAndDot(t *testing.T) {
	buf := NewBufferBuilder(10).
		Write("ab", ui.Bold).SetDotHere().
		WriteSpaces(2).Newline().
		Write("c").Buffer()
	want := &Buffer{Width: 10, Dot: Pos{0, 2}, Lines: [][]Cell{
		{{"a", "1"}, {"b", "1"}, {" ", ""}, {" ", ""}},
		{{"c", ""}},
	}}
	if !reflect.DeepEqual(buf, want) {
		t.Errorf("got %s, want %s", buf.TTYString(), want.TTYString())
	}
}

func TestBuffer_ExtendDownAndTrim(t *testing.T) {
	b := NewBufferBuilder(5).Write("a").Buffer()
	b.ExtendDown(NewBufferBuilder(7).Write("b").SetDotHere().Buffer(), true)
	if b.Width != 7 || len(b.Lines) != 2 || b.Dot != (Pos{1, 1}) {
		t.Errorf("ExtendDown -> %s", b.TTYString())
	}
	b.TrimToLines(1, 2)
	if len(b.Lines) != 1 || b.Lines[0][0].Text != "b" || b.Dot != (Pos{0, 1}) {
		t.Errorf("TrimToLines -> %s", b.TTYString())
	}
}
