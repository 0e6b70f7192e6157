package validation

import "testing"

func TestRequired(t *testing.T) {
	v := make(Violations)
	Required("nome", "Ana", v)
	if !v.Empty() {
		t.Fatalf("valid value flagged: %v", v)
	}
	Required("nome", "   ", v)
	if v["nome"] != "required" {
		t.Fatalf("blank value passed: %v", v)
	}
}

func TestEmail(t *testing.T) {
	cases := map[string]bool{
		"ana@example.com":  true,
		"a@b.co":           true,
		"":                 true, // optional unless Required is also used
		"not-an-email":     false,
		"a b@example.com":  false,
		"ana@example":      false,
		"@example.com":     false,
		"ana@@example.com": false,
	}
	for input, ok := range cases {
		v := make(Violations)
		Email("email", input, v)
		if ok != v.Empty() {
			t.Errorf("Email(%q): violations %v, want valid=%v", input, v, ok)
		}
	}
}

func TestNumericValidators(t *testing.T) {
	v := make(Violations)
	PositiveFloat("preco", 0, v)
	PositiveInt("quantidade", -1, v)
	NonNegativeInt("estoque", -1, v)
	if v["preco"] != "must_be_positive" || v["quantidade"] != "must_be_positive" || v["estoque"] != "must_not_be_negative" {
		t.Fatalf("violations = %v", v)
	}

	v = make(Violations)
	PositiveFloat("preco", 0.01, v)
	PositiveInt("quantidade", 1, v)
	NonNegativeInt("estoque", 0, v)
	if !v.Empty() {
		t.Fatalf("valid values flagged: %v", v)
	}
}

func TestEqualStrings(t *testing.T) {
	v := make(Violations)
	EqualStrings("confirmar", "abc", "abc", v)
	if !v.Empty() {
		t.Fatalf("equal strings flagged: %v", v)
	}
	EqualStrings("confirmar", "abc", "abd", v)
	if v["confirmar"] != "must_match" {
		t.Fatalf("mismatch passed: %v", v)
	}
}
