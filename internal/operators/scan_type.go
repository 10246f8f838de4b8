package operators

import (
	"fmt"
)

// ScanType selects the comparison a TableScan evaluates between the
// scanned column and the search value.
type ScanType uint8

const (
	ScanEquals ScanType = iota
	ScanNotEquals
	ScanGreaterThan
	ScanGreaterThanEquals
	ScanLessThan
	ScanLessThanEquals
)

// ParseScanType maps a comparison operator string to its ScanType.
func ParseScanType(op string) (ScanType, error) {
	switch op {
	case "=", "==":
		return ScanEquals, nil
	case "!=", "<>":
		return ScanNotEquals, nil
	case ">":
		return ScanGreaterThan, nil
	case ">=":
		return ScanGreaterThanEquals, nil
	case "<":
		return ScanLessThan, nil
	case "<=":
		return ScanLessThanEquals, nil
	}
	return 0, fmt.Errorf("unknown scan operator %q", op)
}

func (s ScanType) String() string {
	switch s {
	case ScanEquals:
		return "="
	case ScanNotEquals:
		return "!="
	case ScanGreaterThan:
		return ">"
	case ScanGreaterThanEquals:
		return ">="
	case ScanLessThan:
		return "<"
	case ScanLessThanEquals:
		return "<="
	}
	return fmt.Sprintf("ScanType(%d)", uint8(s))
}
