package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "sitegen.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "sitegen.yaml" {
			t.Errorf("expected context file=sitegen.yaml, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ManifestError("bad manifest").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryManifest) {
			t.Error("expected error to have manifest category")
		}
		if !HasSeverity(err, SeverityFatal) {
			t.Error("expected error to have fatal severity")
		}
		if !err.IsFatal() {
			t.Error("expected manifest error to be fatal")
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := ValidationError("duplicate slug").Build()
		wrapped := fmt.Errorf("resolve posts: %w", inner)

		if !HasCategory(wrapped, CategoryValidation) {
			t.Error("expected wrapped error to keep validation category")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("no such file")
		err := WrapError(originalErr, CategoryFileSystem, "read post content").
			Warning().
			WithContext("file", "hello.md").
			WithContextMap(ErrorContext{"dir": "posts"}).
			Build()

		if err.Category() != CategoryFileSystem {
			t.Errorf("expected category %s, got %s", CategoryFileSystem, err.Category())
		}
		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}

		dir, _ := err.Context().GetString("dir")
		if dir != "posts" {
			t.Errorf("expected dir context 'posts', got %s", dir)
		}
	})

	t.Run("Error string includes sorted context and cause", func(t *testing.T) {
		err := WrapError(errors.New("boom"), CategoryBuild, "write output").
			Fatal().
			WithContext("path", "rss.xml").
			WithContext("kind", "rss").
			Build()

		want := "[build:fatal] write output (kind=rss path=rss.xml): boom"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})
}

func TestClassifiedError_WithContextDoesNotMutate(t *testing.T) {
	base := ValidationError("duplicate slug").Build()
	derived := base.WithContext("slug", "hello")

	if _, ok := base.Context().Get("slug"); ok {
		t.Error("expected original error context to be unchanged")
	}
	if v, _ := derived.Context().GetString("slug"); v != "hello" {
		t.Errorf("expected derived slug context, got %q", v)
	}
	if !errors.Is(derived, base) {
		t.Error("expected derived error to match base by category and message")
	}
}
