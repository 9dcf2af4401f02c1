package geometry

import "testing"

func TestBox_Octant(t *testing.T) {
	b := NewBox(Vector3D{-50, -50, -50}, Vector3D{100, 100, 100})
	want := [8]Vector3D{
		{-50, -50, -50},
		{0, -50, -50},
		{-50, 0, -50},
		{0, 0, -50},
		{-50, -50, 0},
		{0, -50, 0},
		{-50, 0, 0},
		{0, 0, 0},
	}
	for i := 0; i < 8; i++ {
		o := b.Octant(i)
		if !o.Origin.Eq(want[i]) {
			t.Errorf("Octant(%d).Origin = %v; want %v", i, o.Origin, want[i])
		}
		if !o.Size.Eq(Vector3D{50, 50, 50}) {
			t.Errorf("Octant(%d).Size = %v; want (50, 50, 50)", i, o.Size)
		}
	}
}

func TestBox_OctantsPartitionParent(t *testing.T) {
	b := NewBox(Vector3D{0, 0, 0}, Vector3D{8, 4, 2})
	volume := func(b Box) float64 { return b.Size.X() * b.Size.Y() * b.Size.Z() }

	total := 0.0
	for i := 0; i < 8; i++ {
		o := b.Octant(i)
		total += volume(o)
		if !b.Contains(o.Origin) || !b.Contains(o.Max()) {
			t.Errorf("Octant(%d) = %v escapes parent %v", i, o, b)
		}
	}
	if !floatEquals(total, volume(b)) {
		t.Errorf("octant volumes sum to %v; want %v", total, volume(b))
	}

	// the centre of every octant belongs to that octant only
	for i := 0; i < 8; i++ {
		c := b.Octant(i).Center()
		for j := 0; j < 8; j++ {
			if got := b.Octant(j).ContainsInset(c, 0); got != (i == j) {
				t.Errorf("Octant(%d) contains centre of octant %d = %v", j, i, got)
			}
		}
	}
}

func TestBox_ContainsInset(t *testing.T) {
	b := NewBox(Vector3D{0, 0, 0}, Vector3D{10, 10, 10})
	tests := []struct {
		name  string
		p     Vector3D
		inset float64
		want  bool
	}{
		{"centre", Vector3D{5, 5, 5}, 0.7, true},
		{"just inside the inset", Vector3D{0.71, 5, 5}, 0.7, true},
		{"on the inset face", Vector3D{0.7, 5, 5}, 0.7, false},
		{"between face and inset", Vector3D{0.3, 5, 5}, 0.7, false},
		{"on the face without inset", Vector3D{10, 5, 5}, 0, false},
		{"outside", Vector3D{-1, 5, 5}, 0, false},
		{"near upper z face", Vector3D{5, 5, 9.5}, 0.7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ContainsInset(tt.p, tt.inset); got != tt.want {
				t.Errorf("ContainsInset(%v, %v) = %v; want %v", tt.p, tt.inset, got, tt.want)
			}
		})
	}
}

func TestBox_Contains(t *testing.T) {
	b := NewBox(Vector3D{0, 0, 0}, Vector3D{1, 1, 1})
	if !b.Contains(Vector3D{1, 1, 1}) {
		t.Error("Contains should include the far corner")
	}
	if b.Contains(Vector3D{1.01, 0.5, 0.5}) {
		t.Error("Contains should exclude points outside")
	}
}

func TestBox_Geometry(t *testing.T) {
	b := NewBox(Vector3D{-1, 2, 3}, Vector3D{4, 2, 6})
	if got := b.Max(); !got.Eq(Vector3D{3, 4, 9}) {
		t.Errorf("Max = %v; want (3, 4, 9)", got)
	}
	if got := b.Center(); !got.Eq(Vector3D{1, 3, 6}) {
		t.Errorf("Center = %v; want (1, 3, 6)", got)
	}
	if got := b.MinDimension(); got != 2 {
		t.Errorf("MinDimension = %v; want 2", got)
	}
}

func TestBox_Edges(t *testing.T) {
	b := NewBox(Zero, Vector3D{2, 3, 4})
	total := 0.0
	for _, e := range b.Edges() {
		l := e[0].DistanceTo(e[1])
		if l != 2 && l != 3 && l != 4 {
			t.Errorf("edge %v has length %v; want an axis size", e, l)
		}
		total += l
	}
	if !floatEquals(total, 4*(2+3+4)) {
		t.Errorf("edges sum to %v; want %v", total, 4*(2+3+4))
	}
}

func TestBox_At(t *testing.T) {
	b := NewBox(Vector3D{-20, 12, -20}, Vector3D{40, 0, 40})
	tests := []struct {
		name    string
		u, v, w float64
		want    Vector3D
	}{
		{"origin", 0, 0, 0, Vector3D{-20, 12, -20}},
		{"max", 1, 1, 1, Vector3D{20, 12, 20}},
		{"center", 0.5, 0.5, 0.5, Vector3D{0, 12, 0}},
		{"flat axis ignores v", 0.25, 0.9, 0.75, Vector3D{-10, 12, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.At(tt.u, tt.v, tt.w)
			if !got.Eq(tt.want) {
				t.Errorf("At(%v, %v, %v) = %v; want %v", tt.u, tt.v, tt.w, got, tt.want)
			}
			if !b.Contains(got) {
				t.Errorf("At(%v, %v, %v) = %v lies outside %v", tt.u, tt.v, tt.w, got, b)
			}
		})
	}
}
