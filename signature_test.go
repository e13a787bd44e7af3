package abi

import (
	"bytes"
	"reflect"
	"testing"

	"golang.org/x/crypto/sha3"
)

func TestParseSignature(t *testing.T) {
	cases := []struct {
		sig    string
		name   string
		params []Shape
	}{
		{"ping()", "ping", nil},
		{"ping( )", "ping", nil},
		{"transfer(address,long)", "transfer", []Shape{{AddressT, 0}, {Long, 0}}},
		{"transfer(A, int64)", "transfer", []Shape{{AddressT, 0}, {Long, 0}}},
		{"setRows(int[][], [B], Z)", "setRows", []Shape{{Int, 2}, {Byte, 1}, {Boolean, 0}}},
		{"text(char[], [[C]])", "text", []Shape{{CharT, 1}, {CharT, 2}}},
		{"überweisung(float32,double[])", "überweisung", []Shape{{Float, 0}, {Double, 1}}},
	}

	for _, tc := range cases {
		name, params, err := ParseSignature(tc.sig)
		if err != nil {
			t.Fatalf("parsing %q: %+v", tc.sig, err)
		}
		if name != tc.name || !reflect.DeepEqual(params, tc.params) {
			t.Fatalf("parsing %q: expected %v %v, got %v %v", tc.sig, tc.name, tc.params, name, params)
		}
	}
}

func TestParseSignatureMalformed(t *testing.T) {
	inputs := []string{
		"",
		"ping",
		"ping(",
		"(int)",
		"a<b(int)",
		"a,b(int)",
		"f(string)",
		"f(int[][][])",
		"f([[[I]]])",
		"f(int,)",
		"f([B3])",
	}

	for _, input := range inputs {
		_, _, err := ParseSignature(input)
		if err == nil {
			t.Fatalf("parsing %q: expected an error", input)
		}
	}
}

func TestCanonicalSignature(t *testing.T) {
	_, params, err := ParseSignature("f(address, long[], int[][])")
	if err != nil {
		t.Fatalf("%+v", err)
	}

	sig := CanonicalSignature("f", params)
	if sig != "f(A,[L],[[I]])" {
		t.Fatalf(`expected "f(A,[L],[[I]])", got %q`, sig)
	}

	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(sig))
	want := hash.Sum(nil)

	if !bytes.Equal(SignatureChecksum("f", params), want) {
		t.Fatalf("expected the Keccak256 of %q", sig)
	}
	if CanonicalSignature("ping", nil) != "ping()" {
		t.Fatalf(`expected "ping()", got %q`, CanonicalSignature("ping", nil))
	}
}

func TestShapeAccepts(t *testing.T) {
	desc, err := ReadDescriptor([]byte("[[I]1](3)"), 0)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if !(Shape{Type: Int, Dim: 2}).Accepts(desc) {
		t.Fatalf("expected [[I]] to accept %v", desc)
	}
	if (Shape{Type: Int, Dim: 1}).Accepts(desc) {
		t.Fatalf("expected [I] to reject %v", desc)
	}
	if (Shape{Type: Long, Dim: 2}).Accepts(desc) {
		t.Fatalf("expected [[L]] to reject %v", desc)
	}
	// Booleans have their own array form; a byte array is not a boolean array.
	bytesDesc, err := ReadDescriptor([]byte("[B2]"), 0)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if (Shape{Type: Boolean, Dim: 1}).Accepts(bytesDesc) || (Shape{Type: Boolean}).Accepts(bytesDesc) {
		t.Fatalf("expected boolean shapes to reject %v", bytesDesc)
	}
	if !(Shape{Type: Byte, Dim: 1}).Accepts(bytesDesc) {
		t.Fatalf("expected [B] to accept %v", bytesDesc)
	}

	if (Shape{Type: Int, Dim: 3}).Valid() || (Shape{Type: Type(100)}).Valid() {
		t.Fatalf("expected out-of-range shapes to be invalid")
	}
}
