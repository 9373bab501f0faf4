package rowdata

import "strconv"

func itoa(i int) string {
	return strconv.Itoa(i)
}

// formatNumberID renders a numeric PO id without a trailing ".0" for
// whole numbers, since spreadsheet sources commonly store ids as floats.
func formatNumberID(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
