/*
A CLI tool that decodes hex-encoded call-data and prints the operation name and
each argument as Go code. Useful for inspecting transactions and test fixtures.

Installation:

	go get -u github.com/purelabio/abi/abi_inspect

Example usage:

	abi_inspect -help
	abi_inspect 0x7472616e736665723c414c3e...
	abi_inspect -value 0x490000002a
	cat calldata.hex | abi_inspect -out decoded.txt

Each input must be "0x"-prefixed hex. When no inputs are given on the command
line, they are read from stdin, one per line.
*/
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Mitranim/repr"
	"github.com/pkg/errors"
	"github.com/purelabio/abi"
)

var (
	flagValue = flag.Bool("value", false, "decode each input as a single value, such as an operation result")
	flagOut   = flag.String("out", "", "output path; defaults to stdout")
	flagBare  = flag.Bool("bare", false, "print Go values without package prefixes")
)

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "%+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	execName := os.Args[0]

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %v:

	%v <flags> <inputs ...>

Inputs must be "0x"-prefixed hex. Examples:

	%v 0x7472616e736665723c3e
	%v -value 0x490000002a
	cat calldata.hex | %v

`, execName, execName, execName, execName, execName)
		flag.PrintDefaults()
		flag.CommandLine.Output().Write([]byte("\n"))
	}

	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		var err error
		inputs, err = readLines(os.Stdin)
		if err != nil {
			return err
		}
	}
	if len(inputs) == 0 {
		return errors.New(`must specify at least one "0x"-prefixed hex input`)
	}

	var buf bytes.Buffer
	for i, input := range inputs {
		raw, err := abi.HexDecode([]byte(input))
		if err != nil {
			return errors.WithMessagef(err, `input %v`, i)
		}

		if i > 0 {
			buf.WriteString("\n")
		}

		if *flagValue {
			err = printValue(&buf, raw)
		} else {
			err = printCall(&buf, raw)
		}
		if err != nil {
			return errors.WithMessagef(err, `input %v`, i)
		}
	}

	if *flagOut == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return errors.WithStack(err)
	}

	const readWriteMode = os.FileMode(0600)
	err := os.WriteFile(*flagOut, buf.Bytes(), readWriteMode)
	if err != nil {
		return errors.Wrapf(err, "failed to write %q", *flagOut)
	}
	return nil
}

func printCall(out io.Writer, input []byte) error {
	call, err := abi.DecodeCall(input)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "name: %q\n", call.Name)
	for i, arg := range call.Args {
		fmt.Fprintf(out, "arg %v %v: %v\n", i, call.Descriptors[i], reprString(arg.Native()))
	}
	return nil
}

func printValue(out io.Writer, input []byte) error {
	val, err := abi.DecodeValue(input)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%v: %v\n", val.Descriptor(), reprString(val.Native()))
	return nil
}

func readLines(src io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(src)
	scanner.Buffer(nil, 1<<24)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	return out, errors.Wrap(scanner.Err(), "failed to read stdin")
}

func reprString(val interface{}) string {
	if *flagBare {
		return repr.StringC(val, repr.Config{
			PackageMap: map[string]string{
				"github.com/purelabio/abi": "",
			},
		})
	}
	return repr.String(val)
}
