package window

import "fmt"

func ExampleGenerate() {
	w := Generate(TypeHann, 4)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleOverlapAddGain() {
	w, _ := Table(TypeHann, 8)
	gain := make([]float64, 2)
	_ = OverlapAddGain(gain, w, 2)
	fmt.Printf("%.2f %.2f\n", gain[0], gain[1])
	// Output:
	// 1.50 1.50
}
