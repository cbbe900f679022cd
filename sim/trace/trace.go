// Package trace loads memory-address traces for replay through the cache.
//
// The format is one hexadecimal address per line. Blank lines and lines
// starting with '#' are skipped. Addresses may carry an optional "0x"
// prefix and must fit the 32-bit address space.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MaxAddress is the largest address a trace line may carry. Traces model
// a 32-bit physical address space.
const MaxAddress = 0xFFFFFFFF

// ReadFile loads a trace file from disk.
func ReadFile(path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer f.Close()

	addrs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return addrs, nil
}

// Parse reads addresses from r. Malformed lines are reported with their
// 1-based line number; nothing past the bad line is parsed, so a broken
// trace never reaches the cache partially.
func Parse(r io.Reader) ([]uint64, error) {
	var addrs []uint64

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		digits := strings.TrimPrefix(strings.TrimPrefix(line, "0x"), "0X")
		addr, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid hex address %q", lineNo, line)
		}
		if addr > MaxAddress {
			return nil, fmt.Errorf("line %d: address 0x%x outside the 32-bit address space", lineNo, addr)
		}
		addrs = append(addrs, addr)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return addrs, nil
}
