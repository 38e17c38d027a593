package cascade

import (
	"context"
	"errors"
	"testing"

	"doc-intelligence-be/pkg/docai"
)

func step(id string, out string, err error) Step[string] {
	return Step[string]{
		ProviderID: id,
		Run: func(ctx context.Context) (string, error) {
			return out, err
		},
	}
}

func TestFirstReturnsFirstSuccess(t *testing.T) {
	out, winner, attempts, err := First(context.Background(), []Step[string]{
		step("a", "from-a", nil),
		step("b", "from-b", nil),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "from-a" || winner != "a" {
		t.Errorf("got (%q, %q), want first step to win", out, winner)
	}
	if len(attempts) != 1 {
		t.Errorf("attempts = %d, want 1 (later steps must not run)", len(attempts))
	}
}

func TestFirstAdvancesPastFailures(t *testing.T) {
	boom := docai.WrapKind(docai.KindProviderUnavailable, errors.New("quota exceeded"))

	out, winner, attempts, err := First(context.Background(), []Step[string]{
		step("a", "", boom),
		step("b", "", errors.New("timeout")),
		step("c", "from-c", nil),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "from-c" || winner != "c" {
		t.Errorf("got (%q, %q), want step c to win", out, winner)
	}
	if len(attempts) != 3 {
		t.Fatalf("attempts = %d, want 3", len(attempts))
	}
	if attempts[0].OK || attempts[1].OK || !attempts[2].OK {
		t.Errorf("attempt OK flags = %v %v %v, want false false true", attempts[0].OK, attempts[1].OK, attempts[2].OK)
	}
	if attempts[0].ErrKind != docai.KindProviderUnavailable {
		t.Errorf("attempt 0 kind = %q, want provider unavailable", attempts[0].ErrKind)
	}
	if attempts[1].ErrKind != docai.KindProviderCallFailed {
		t.Errorf("attempt 1 kind = %q, want default call failed", attempts[1].ErrKind)
	}
}

func TestFirstExhaustion(t *testing.T) {
	_, winner, attempts, err := First(context.Background(), []Step[string]{
		step("a", "", errors.New("down")),
		step("b", "", errors.New("also down")),
	})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("err = %v, want ErrExhausted", err)
	}
	if winner != "" {
		t.Errorf("winner = %q, want empty", winner)
	}
	if len(attempts) != 2 {
		t.Errorf("attempts = %d, want 2", len(attempts))
	}
}

func TestFirstEmptySteps(t *testing.T) {
	_, _, attempts, err := First[string](context.Background(), nil)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("err = %v, want ErrExhausted", err)
	}
	if len(attempts) != 0 {
		t.Errorf("attempts = %d, want 0", len(attempts))
	}
}

func TestFirstStrictOrder(t *testing.T) {
	var order []string
	mk := func(id string, fail bool) Step[int] {
		return Step[int]{
			ProviderID: id,
			Run: func(ctx context.Context) (int, error) {
				order = append(order, id)
				if fail {
					return 0, errors.New("fail")
				}
				return 1, nil
			},
		}
	}

	_, _, _, err := First(context.Background(), []Step[int]{
		mk("first", true),
		mk("second", true),
		mk("third", false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("call order = %v, want %v", order, want)
		}
	}
}
