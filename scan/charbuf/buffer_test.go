package charbuf

import "testing"

func TestBufferAppendAndNext(t *testing.T) {
	b := New(4)
	b.Append([]rune("hi"))

	if got := b.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	r, ok := b.Next()
	if !ok || r != 'h' {
		t.Fatalf("Next() = %q, %v, want 'h', true", r, ok)
	}

	r, ok = b.Next()
	if !ok || r != 'i' {
		t.Fatalf("Next() = %q, %v, want 'i', true", r, ok)
	}

	if _, ok := b.Next(); ok {
		t.Fatalf("Next() after exhaustion should return ok=false")
	}
}

func TestBufferRewind(t *testing.T) {
	b := New(4)
	b.Append([]rune("abc"))

	_, _ = b.Next()
	_, _ = b.Next()

	if err := b.Rewind(2); err != nil {
		t.Fatalf("Rewind(2) error: %v", err)
	}

	r, ok := b.Next()
	if !ok || r != 'a' {
		t.Fatalf("Next() after rewind = %q, %v, want 'a', true", r, ok)
	}

	if err := b.Rewind(5); err == nil {
		t.Fatalf("Rewind(5) should fail past start of resident data")
	}
}

func TestBufferPreserveFrom(t *testing.T) {
	b := New(4)
	b.Append([]rune("abcdef"))

	_, _ = b.Next()
	_, _ = b.Next()

	mark := b.Mark()
	moved := b.PreserveFrom(mark)
	if moved != mark {
		t.Fatalf("PreserveFrom returned %d, want %d", moved, mark)
	}

	if got := b.Len(); got != 4 {
		t.Fatalf("Len() after preserve = %d, want 4", got)
	}

	r, ok := b.Next()
	if !ok || r != 'c' {
		t.Fatalf("Next() after preserve = %q, %v, want 'c', true", r, ok)
	}
}

func TestBufferGrow(t *testing.T) {
	b := New(2)
	start := b.Cap()

	n := start + 10
	b.Append(make([]rune, n))

	if b.Cap() <= start {
		t.Fatalf("Cap() = %d, want > %d after growth", b.Cap(), start)
	}

	if got := b.Len(); got != n {
		t.Fatalf("Len() = %d, want %d", got, n)
	}
}
