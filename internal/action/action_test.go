package action

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/reactor/internal/vnode"
)

type state struct{ n int }

var (
	inc = NewTransition("Inc", func(s state, p any) Action[state] {
		return Set(state{s.n + p.(int)})
	})
	dec = NewTransition("Dec", func(s state, p any) Action[state] {
		return Set(state{s.n - p.(int)})
	})
)

func TestFlatten(t *testing.T) {
	items := []any{
		1,
		nil,
		[]any{2, false, []any{3, true}},
		[]int{4, 5},
		When(false, 99),
		When(true, 6),
	}

	got := slices.Collect(Flatten[int](items...))
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6}, got); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}

	// The sequence is a pure function of its input.
	again := slices.Collect(Flatten[int](items...))
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
}

func TestFlatten_StopsEarly(t *testing.T) {
	var seen []int
	for v := range Flatten[int](1, []any{2, 3}, 4) {
		seen = append(seen, v)
		if v == 2 {
			break
		}
	}
	if diff := cmp.Diff([]int{1, 2}, seen); diff != "" {
		t.Errorf("seen mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_PanicsOnForeignValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a string in an int list")
		}
	}()
	for range Flatten[int](1, "two") {
	}
}

func TestFlatten_Effects(t *testing.T) {
	var order []string
	mk := func(name string) Effect[state] {
		return Effect[state]{Run: func(Dispatch[state], vnode.Props, any) {}, Props: vnode.Props{"name": name}}
	}
	for fx := range Flatten[Effect[state]](mk("a"), []any{nil, mk("b")}, []Effect[state]{mk("c")}) {
		order = append(order, fx.Props["name"].(string))
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSameAction(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same transition different payload", With(inc, 1), With(inc, 2), true},
		{"mapped and fixed payload", Map(inc, func(p any) any { return p }), With(inc, 1), true},
		{"different transitions", With(inc, 1), With(dec, 1), false},
		{"bare transitions", inc, inc, false},
		{"bound and bare", With(inc, 1), inc, false},
		{"unbound", Bound[state]{}, Bound[state]{}, false},
		{"plain values", 1, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameAction(tt.a, tt.b); got != tt.want {
				t.Errorf("SameAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		a    Action[state]
		want string
	}{
		{nil, "<nil>"},
		{inc, "Inc"},
		{With(dec, 1), "Dec"},
		{WithEffects(state{}, 1, 2), "update(2 effects)"},
		{Set(state{}), "set"},
	}
	for _, tt := range tests {
		if got := Name(tt.a); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}

func TestTransition_Apply(t *testing.T) {
	next := inc.Apply(state{1}, 2)
	p, ok := next.(Plain[state])
	if !ok {
		t.Fatalf("Apply() = %T, want Plain", next)
	}
	if p.State.n != 3 {
		t.Errorf("state = %d, want 3", p.State.n)
	}
}

func TestSourceFor(t *testing.T) {
	start := func(Dispatch[state], vnode.Props) StopFunc { return nil }
	other := func(Dispatch[state], vnode.Props) StopFunc { return func() {} }

	first := SourceFor("test.source", start)
	tests := []struct {
		name string
		got  any
		same bool
	}{
		{"same name", SourceFor("test.source", start), true},
		{"same name, other func", SourceFor("test.source", other), true},
		{"other name", SourceFor("test.other", start), false},
		{"other state type", SourceFor("test.source", func(Dispatch[int], vnode.Props) StopFunc { return nil }), false},
		{"NewSource", NewSource("test.source", start), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got == any(first); got != tt.same {
				t.Errorf("shares the first source = %v, want %v", got, tt.same)
			}
		})
	}
	if first.Name() != "test.source" {
		t.Errorf("Name() = %q", first.Name())
	}
}
