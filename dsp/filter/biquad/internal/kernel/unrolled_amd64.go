//go:build amd64 && !purego

package kernel

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Global.Register(Entry{
		Name:         "unrolled4",
		SIMDLevel:    cpu.SIMDAVX2,
		Priority:     20,
		ProcessBlock: processBlockUnrolled4,
	})
}

// processBlockUnrolled4 keeps the recursion in registers across four samples,
// which wide out-of-order cores schedule better than the 2x loop.
func processBlockUnrolled4(c Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0

	n := len(buf)
	for ; i+3 < n; i += 4 {
		x := buf[i : i+4 : i+4]

		y0 := b0*x[0] + d0
		d0 = b1*x[0] - a1*y0 + d1
		d1 = b2*x[0] - a2*y0

		y1 := b0*x[1] + d0
		d0 = b1*x[1] - a1*y1 + d1
		d1 = b2*x[1] - a2*y1

		y2 := b0*x[2] + d0
		d0 = b1*x[2] - a1*y2 + d1
		d1 = b2*x[2] - a2*y2

		y3 := b0*x[3] + d0
		d0 = b1*x[3] - a1*y3 + d1
		d1 = b2*x[3] - a2*y3

		x[0], x[1], x[2], x[3] = y0, y1, y2, y3
	}

	for ; i < n; i++ {
		xi := buf[i]
		y := b0*xi + d0
		d0 = b1*xi - a1*y + d1
		d1 = b2*xi - a2*y
		buf[i] = y
	}

	return d0, d1
}
