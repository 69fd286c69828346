package direction

import "testing"

func TestOrderRemap(t *testing.T) {
	o := Order([]int{2, 0}, []float64{7, -3})
	want := Ordered{-3, 0, 7, 0}
	if o != want {
		t.Errorf("want %v, got %v", want, o)
	}
}

func TestOrderIgnoresOutOfRange(t *testing.T) {
	o := Order([]int{-1, 9, 1}, []float64{5, 5, 5})
	want := Ordered{0, 5, 0, 0}
	if o != want {
		t.Errorf("invalid axes should be dropped, got %v", o)
	}
}

func TestOrderedAdd(t *testing.T) {
	a := Ordered{1, 2, 3, 4}
	a.Add(Ordered{10, 20, 30, 40})
	want := Ordered{11, 22, 33, 44}
	if a != want {
		t.Errorf("want %v, got %v", want, a)
	}
}

func TestOrderedIsZero(t *testing.T) {
	var z Ordered
	if !z.IsZero() {
		t.Error("zero value should report zero")
	}
	z[3] = 0.001
	if z.IsZero() {
		t.Error("non-zero slot should report false")
	}
}
