package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gestor-app/gestor/internal/models"
)

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestParseClient(t *testing.T) {
	f, v := ParseClient(formRequest(url.Values{
		"nome":     {"  Ana Souza  "},
		"email":    {"ana@example.com"},
		"telefone": {"11 99999-0000"},
		"notas":    {"cliente desde 2020"},
	}))
	if len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
	if f.Nome != "Ana Souza" {
		t.Fatalf("nome = %q, want trimmed value", f.Nome)
	}

	var c models.Client
	f.Apply(&c)
	if c.Nome != "Ana Souza" || c.Telefone != "11 99999-0000" {
		t.Fatalf("Apply did not copy fields: %+v", c)
	}
}

func TestParseClientValidation(t *testing.T) {
	_, v := ParseClient(formRequest(url.Values{"nome": {""}, "email": {"not-an-email"}}))
	if v["nome"] == "" {
		t.Error("missing nome not flagged")
	}
	if v["email"] == "" {
		t.Error("malformed email not flagged")
	}

	// email is optional when absent
	_, v = ParseClient(formRequest(url.Values{"nome": {"Ana"}}))
	if v["email"] != "" {
		t.Errorf("empty email flagged: %v", v)
	}
}

func TestParseProduct(t *testing.T) {
	f, v := ParseProduct(formRequest(url.Values{
		"nome":          {"Caderno"},
		"preco":         {"12.50"},
		"estoque":       {"30"},
		"fornecedor_id": {"2"},
	}))
	if len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
	if f.Preco != 12.50 || f.Estoque != 30 || f.FornecedorID != 2 {
		t.Fatalf("parsed form = %+v", f)
	}
}

func TestParseProductNumericErrors(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
		field  string
		want   string
	}{
		{"non-numeric price", url.Values{"nome": {"X Y"}, "preco": {"abc"}, "estoque": {"1"}, "fornecedor_id": {"1"}}, "preco", "invalid_number"},
		{"missing price", url.Values{"nome": {"X Y"}, "estoque": {"1"}, "fornecedor_id": {"1"}}, "preco", "required"},
		{"negative price", url.Values{"nome": {"X Y"}, "preco": {"-1"}, "estoque": {"1"}, "fornecedor_id": {"1"}}, "preco", "must_be_positive"},
		{"negative stock", url.Values{"nome": {"X Y"}, "preco": {"1"}, "estoque": {"-5"}, "fornecedor_id": {"1"}}, "estoque", "must_not_be_negative"},
		{"zero supplier", url.Values{"nome": {"X Y"}, "preco": {"1"}, "estoque": {"1"}, "fornecedor_id": {"0"}}, "fornecedor_id", "invalid_supplier"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, v := ParseProduct(formRequest(tc.values))
			if v[tc.field] != tc.want {
				t.Fatalf("v[%q] = %q, want %q (all: %v)", tc.field, v[tc.field], tc.want, v)
			}
		})
	}
}

func TestParseSale(t *testing.T) {
	f, v := ParseSale(formRequest(url.Values{
		"cliente_id": {"1"},
		"produto_id": {"2"},
		"quantidade": {"3"},
	}))
	if len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
	if f.ClienteID != 1 || f.ProdutoID != 2 || f.Quantidade != 3 {
		t.Fatalf("parsed form = %+v", f)
	}
}

func TestParseSaleDistinguishesFailures(t *testing.T) {
	_, v := ParseSale(formRequest(url.Values{"cliente_id": {"1"}}))
	if v["form"] != "missing_fields" {
		t.Fatalf("missing fields not flagged: %v", v)
	}

	_, v = ParseSale(formRequest(url.Values{"cliente_id": {"1"}, "produto_id": {"2"}, "quantidade": {"abc"}}))
	if v["quantidade"] != "invalid_number" {
		t.Fatalf("non-numeric quantity: %v", v)
	}

	_, v = ParseSale(formRequest(url.Values{"cliente_id": {"1"}, "produto_id": {"2"}, "quantidade": {"0"}}))
	if v["quantidade"] != "must_be_positive" {
		t.Fatalf("zero quantity: %v", v)
	}
}

func TestParsePassword(t *testing.T) {
	_, v := ParsePassword(formRequest(url.Values{"nova_senha": {"secret1"}, "confirmar_senha": {"secret1"}}))
	if len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}

	_, v = ParsePassword(formRequest(url.Values{"nova_senha": {"12345"}, "confirmar_senha": {"12345"}}))
	if v["nova_senha"] == "" {
		t.Error("short password not flagged")
	}

	_, v = ParsePassword(formRequest(url.Values{"nova_senha": {"secret1"}, "confirmar_senha": {"secret2"}}))
	if v["confirmar_senha"] != "must_match" {
		t.Errorf("mismatched confirmation: %v", v)
	}
}

func TestParseDeleteAccount(t *testing.T) {
	f, v := ParseDeleteAccount(formRequest(url.Values{"confirmar": {"on"}}))
	if !f.Confirmar || len(v) != 0 {
		t.Fatalf("checked box rejected: %+v %v", f, v)
	}
	_, v = ParseDeleteAccount(formRequest(url.Values{}))
	if v["confirmar"] != "required" {
		t.Fatalf("unchecked box accepted: %v", v)
	}
}
