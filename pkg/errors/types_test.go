package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeScreenUnknown, "screen 42 not registered")

	if err == nil {
		t.Fatal("New should return non-nil error")
	}

	if err.Code != ErrCodeScreenUnknown {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeScreenUnknown)
	}

	if err.Message != "screen 42 not registered" {
		t.Errorf("Message = %v, want 'screen 42 not registered'", err.Message)
	}

	if err.Underlying != nil {
		t.Error("Underlying should be nil for New error")
	}

	if len(err.Stack) == 0 {
		t.Error("Stack should be captured")
	}
}

func TestWrap(t *testing.T) {
	underlying := errors.New("bitmap missing")
	err := Wrap(underlying, ErrCodeResourceLoad, "failed to load parts")

	if err == nil {
		t.Fatal("Wrap should return non-nil error")
	}

	if err.Underlying != underlying {
		t.Error("Underlying should be preserved")
	}

	if !strings.Contains(err.Error(), "bitmap missing") {
		t.Error("Error string should include underlying error")
	}
}

func TestWrap_Nil(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "test"); err != nil {
		t.Error("Wrap of nil should return nil")
	}
}

func TestWithContext_SortedKeys(t *testing.T) {
	err := New(ErrCodeContract, "duplicate tag")
	err.WithContext("tag", 7).WithContext("parent", 3)

	got := err.Error()
	want := "[CONTRACT_VIOLATION] duplicate tag {parent: 3, tag: 7}"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestContract(t *testing.T) {
	err := Contract("widget %d has no parent", 12)

	if err.Code != ErrCodeContract {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeContract)
	}
	if err.Message != "widget 12 has no parent" {
		t.Errorf("Message = %q", err.Message)
	}
	if !IsContract(err) {
		t.Error("IsContract should be true")
	}
}

func TestIsCode_WrappedChain(t *testing.T) {
	inner := New(ErrCodeResourceLoad, "font missing")
	outer := Wrap(inner, ErrCodeScreenLoad, "load title screen")
	std := fmt.Errorf("activate: %w", outer)

	if !IsCode(std, ErrCodeScreenLoad) {
		t.Error("IsCode should find the outer code through fmt wrapping")
	}
	if !IsCode(std, ErrCodeResourceLoad) {
		t.Error("IsCode should find the inner code")
	}
	if IsCode(std, ErrCodeContract) {
		t.Error("IsCode should not match an absent code")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Error("IsCode should return false for nil error")
	}
	if IsCode(errors.New("plain"), ErrCodeInternal) {
		t.Error("IsCode should return false for foreign errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q, want empty", got)
	}
	if got := GetCode(errors.New("plain")); got != ErrCodeInternal {
		t.Errorf("GetCode(plain) = %q, want %q", got, ErrCodeInternal)
	}
	if got := GetCode(New(ErrCodeSurfaceInvalid, "pitch")); got != ErrCodeSurfaceInvalid {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeSurfaceInvalid)
	}
}

func TestUnwrap(t *testing.T) {
	underlying := errors.New("underlying")
	err := Wrap(underlying, ErrCodeInternal, "wrapped")

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should see the underlying error")
	}
}

func TestStackTrace(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	trace := err.StackTrace()
	if !strings.HasPrefix(trace, "Stack trace:") {
		t.Errorf("unexpected trace header: %q", trace)
	}
	if !strings.Contains(trace, "TestStackTrace") {
		t.Error("trace should include the calling test")
	}
}
