package abi

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// Package-level tables are built before "init" functions run. The type lookup
// tables must already be usable at that point.
var packageLevelOperation = MustOperation("store(address,char[],int[][])", false, widthOfIntOp)

func TestPackageLevelOperation(t *testing.T) {
	want := []Shape{{Type: AddressT}, {Type: CharT, Dim: 1}, {Type: Int, Dim: 2}}
	if packageLevelOperation.Name != "store" || len(packageLevelOperation.Params) != len(want) {
		t.Fatalf("unexpected operation:\n%v", spew.Sdump(packageLevelOperation))
	}
	for i, param := range packageLevelOperation.Params {
		if param != want[i] {
			t.Fatalf("parameter %v: expected %v, got %v", i, want[i], param)
		}
	}

	found, ok := TypeOf('A')
	if !ok || found != AddressT {
		t.Fatalf("expected 'A' to resolve to address, got %v", found)
	}
}

func TestAddressScan(t *testing.T) {
	var addr Address

	err := addr.Scan(testAddress[:])
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if addr != testAddress {
		t.Fatalf("scanning raw bytes: expected %v, got %v", testAddress, addr)
	}

	addr = Address{}
	err = addr.Scan(testAddress.String())
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if addr != testAddress {
		t.Fatalf("scanning hex text: expected %v, got %v", testAddress, addr)
	}

	addr = Address{}
	err = addr.Scan([]byte(testAddress.String()))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if addr != testAddress {
		t.Fatalf("scanning hex bytes: expected %v, got %v", testAddress, addr)
	}

	err = addr.Scan(nil)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if addr != ZeroAddress {
		t.Fatalf("scanning nil: expected the zero address, got %v", addr)
	}

	err = addr.Scan(int64(1))
	if err == nil {
		t.Fatalf("expected an error when scanning an integer")
	}
	err = addr.Scan([]byte{1, 2, 3})
	if err == nil {
		t.Fatalf("expected an error when scanning 3 raw bytes")
	}
}

func TestAddressValue(t *testing.T) {
	val, err := testAddress.Value()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	raw, ok := val.([]byte)
	if !ok || !bytes.Equal(raw, testAddress[:]) {
		t.Fatalf("expected the raw 32 bytes, got:\n%v", spew.Sdump(val))
	}

	var addr Address
	err = addr.Scan(val)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if addr != testAddress {
		t.Fatalf("expected %v, got %v", testAddress, addr)
	}
}
