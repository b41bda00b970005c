package linalg

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/mat"
)

// SpatialLabels names the rows and columns of a spatial inertia matrix, rotational first.
var SpatialLabels = []string{"p", "q", "r", "x", "y", "z"}

// RenderMatrix prints m as a table. If labels has one entry per column they head the rows and
// columns, otherwise they are numbered.
func RenderMatrix(m mat.Matrix, labels ...string) string {
	r, c := m.Dims()
	label := func(i int) string {
		if len(labels) == c && i < len(labels) {
			return labels[i]
		}
		return strconv.Itoa(i)
	}

	t := table.NewWriter()
	header := table.Row{""}
	for j := 0; j < c; j++ {
		header = append(header, label(j))
	}
	t.AppendHeader(header)
	for i := 0; i < r; i++ {
		row := table.Row{label(i)}
		for j := 0; j < c; j++ {
			row = append(row, strconv.FormatFloat(m.At(i, j), 'g', 6, 64))
		}
		t.AppendRow(row)
	}
	return t.Render()
}
