package clubs

import "testing"

func TestIsDriver(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Driver", true},
		{"TSR3 driver", true},
		{"1W", true},
		{"W1", true},
		{"Bois 1", true},
		{"wood 1", true},
		{"7i", false},
		{"Bois 3", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDriver(tt.name); got != tt.want {
				t.Errorf("IsDriver(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestHeadFor(t *testing.T) {
	if got := HeadFor("driver"); got != DriverHead {
		t.Errorf("HeadFor(driver) = %+v", got)
	}
	if got := HeadFor("fer 7"); got != IronHead {
		t.Errorf("HeadFor(fer 7) = %+v", got)
	}
	if got := HeadFor(""); got != IronHead {
		t.Errorf("HeadFor(\"\") = %+v", got)
	}
}

func TestBenchmarkKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Driver", Driver},
		{"3W", Wood3},
		{"Bois 5", Wood5},
		{"5 wood", Wood5},
		{"Hybride 4", Hybrid},
		{"Rescue", Hybrid},
		{"7i", Iron7},
		{"Fer 7", Iron7},
		{"iron 4", Iron4},
		{"i9", Iron9},
		{"PW", PW},
		{"Pitching wedge", PW},
		{"Putter", ""},
		{"2i", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BenchmarkKey(tt.name); got != tt.want {
				t.Errorf("BenchmarkKey(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
