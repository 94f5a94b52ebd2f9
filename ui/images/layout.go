package images

import "fmt"

// Caption labels the 1-based image index in lists and the gallery.
func Caption(index int) string { return fmt.Sprintf("Image %d", index) }

// Rows splits n items into rows of at most columns items, holding item
// positions 0..n-1 in reading order. columns < 1 is treated as 1.
func Rows(n, columns int) [][]int {
	if columns < 1 {
		columns = 1
	}
	var rows [][]int
	for i := 0; i < n; i++ {
		if i%columns == 0 {
			rows = append(rows, make([]int, 0, columns))
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], i)
	}
	return rows
}
