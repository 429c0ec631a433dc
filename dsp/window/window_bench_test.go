package window

import "testing"

func BenchmarkGenerate(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		if _, err := Generate(TypeHann, 2048); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkApplyInPlace(b *testing.B) {
	coeffs, err := Generate(TypeHann, 2048)
	if err != nil {
		b.Fatal(err)
	}

	samples := make([]float64, 2048)
	for i := range samples {
		samples[i] = 1
	}

	b.ReportAllocs()

	for b.Loop() {
		if err := ApplyInPlace(samples, coeffs); err != nil {
			b.Fatal(err)
		}
	}
}
