package abi

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

func TestReadDescriptor(t *testing.T) {
	cases := []struct {
		text   string
		offset int
		want   Descriptor
	}{
		{"I", 0, Descriptor{Type: Int, Size: 1}},
		{"ZA", 1, Descriptor{Type: AddressT, Size: 1}},
		{"[B3]", 0, Descriptor{Type: Byte, Dim: 1, Len: 3, Size: 4}},
		{"[C0]", 0, Descriptor{Type: CharT, Dim: 1, Len: 0, Size: 4}},
		{"I[L123]Z", 1, Descriptor{Type: Long, Dim: 1, Len: 123, Size: 6}},
		{"[[I]2](2)(1)", 0, Descriptor{Type: Int, Dim: 2, Len: 2, RowLens: []int{2, 1}, Size: 12}},
		{"[[I]0]", 0, Descriptor{Type: Int, Dim: 2, Len: 0, RowLens: []int{}, Size: 6}},
		{"[[C]1](3)L", 0, Descriptor{Type: CharT, Dim: 2, Len: 1, RowLens: []int{3}, Size: 9}},
		{"[[D]2](0)(10)", 0, Descriptor{Type: Double, Dim: 2, Len: 2, RowLens: []int{0, 10}, Size: 13}},

		// Legacy form with an empty row count.
		{"[[I]](2)(1)", 0, Descriptor{Type: Int, Dim: 2, Len: 2, RowLens: []int{2, 1}, Size: 11}},
		{"[[S]](4)Z", 0, Descriptor{Type: Short, Dim: 2, Len: 1, RowLens: []int{4}, Size: 8}},
	}

	for _, tc := range cases {
		desc, err := ReadDescriptor([]byte(tc.text), tc.offset)
		if err != nil {
			t.Fatalf("reading %q at %v: %+v", tc.text, tc.offset, err)
		}
		if !reflect.DeepEqual(desc, tc.want) {
			t.Fatalf("reading %q at %v: expected:\n%v\ngot:\n%v", tc.text, tc.offset, spew.Sdump(tc.want), spew.Sdump(desc))
		}
	}
}

func TestReadDescriptorMalformed(t *testing.T) {
	inputs := []string{
		"",
		"X",
		"b",
		"[",
		"[[",
		"[X3]",
		"[B]",
		"[B3",
		"[Bx]",
		"[B-1]",
		"[B+1]",
		"[B 1]",
		"[B1234567890]",
		"[[I]]",
		"[[I]](2",
		"[[I]](x)",
		"[[I]]()",
		"[[I2](1)",
		"[[I]x](1)",
		"[[I]2](2)",
		"[[I]2](1)X",
		"[[I]1]",
		"[[I]999999999](1)",
		"[[[I]]]",

		// Each number has exactly one spelling.
		"[B00]",
		"[B03]",
		"[[B]01](1)",
		"[[B]1](02)",
		"[[B]](1)(00)",
	}

	for _, input := range inputs {
		_, err := ReadDescriptor([]byte(input), 0)
		if !errors.Is(err, ErrMalformedDescriptor) {
			t.Fatalf("reading %q: expected ErrMalformedDescriptor, got %+v", input, err)
		}
	}

	_, err := ReadDescriptor([]byte("I"), 1)
	if !errors.Is(err, ErrMalformedDescriptor) {
		t.Fatalf("expected ErrMalformedDescriptor at the end of input, got %+v", err)
	}
	_, err = ReadDescriptor([]byte("I"), -1)
	if !errors.Is(err, ErrMalformedDescriptor) {
		t.Fatalf("expected ErrMalformedDescriptor at a negative offset, got %+v", err)
	}
}

func TestDescriptorText(t *testing.T) {
	inputs := []string{"B", "A", "[Z1]", "[F100]", "[[L]0]", "[[C]3](0)(1)(2)"}

	for _, input := range inputs {
		desc, err := ReadDescriptor([]byte(input), 0)
		if err != nil {
			t.Fatalf("reading %q: %+v", input, err)
		}
		if desc.String() != input {
			t.Fatalf("expected %q, got %q", input, desc)
		}
		if desc.Size != len(input) {
			t.Fatalf("%q: expected size %v, got %v", input, len(input), desc.Size)
		}
	}

	desc, err := ReadDescriptor([]byte("[[I]](2)(1)"), 0)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if desc.String() != "[[I]2](2)(1)" {
		t.Fatalf("expected the legacy form to print canonically, got %q", desc)
	}
}

func TestDescriptorElements(t *testing.T) {
	desc := Descriptor{Type: Int, Dim: 2, Len: 3, RowLens: []int{2, 3, 4}}
	if total, ok := desc.elements(9); !ok || total != 9 {
		t.Fatalf("expected 9 elements within a limit of 9, got %v %v", total, ok)
	}
	if _, ok := desc.elements(8); ok {
		t.Fatalf("expected 9 elements to exceed a limit of 8")
	}

	huge := Descriptor{Type: Byte, Dim: 2, Len: 2, RowLens: []int{int(^uint(0) >> 1), int(^uint(0) >> 1)}}
	if _, ok := huge.elements(100); ok {
		t.Fatalf("expected an overflowing sum to exceed the limit")
	}
}
