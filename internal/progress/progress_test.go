package progress

import (
	"context"
	"errors"
	"testing"
)

func TestShow_RunsFunction(t *testing.T) {
	ran := false
	err := Show(context.Background(), "working", func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if !ran {
		t.Error("Show() did not run the function")
	}
}

func TestShow_PropagatesError(t *testing.T) {
	want := errors.New("backend down")
	err := Show(context.Background(), "working", func() error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("Show() error = %v, want %v", err, want)
	}
}
