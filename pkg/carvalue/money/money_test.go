package money

import "testing"

func TestFormat(t *testing.T) {
	f, err := NewFormatter("INR", "₹", "en")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := f.Format(1234567.891), "₹ 1,234,567.89"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := f.Code(); got != "INR" {
		t.Errorf("code: got %q", got)
	}
}

func TestFormatDefaultsSymbolToCode(t *testing.T) {
	f, err := NewFormatter("USD", "", "en")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := f.Format(12000), "USD 12,000.00"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNewFormatterErrors(t *testing.T) {
	if _, err := NewFormatter("XYZW", "", "en"); err == nil {
		t.Error("expected error for bad currency code")
	}
	if _, err := NewFormatter("INR", "", "not a locale!"); err == nil {
		t.Error("expected error for bad locale")
	}
}
