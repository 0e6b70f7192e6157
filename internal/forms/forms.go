// Package forms maps url-encoded request fields onto validated structs, one
// explicit parse function per entity form. Handlers re-render the form with
// the returned Violations when validation fails.
package forms

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gestor-app/gestor/internal/models"
	"github.com/gestor-app/gestor/internal/validation"
)

type ClientForm struct {
	Nome     string
	Email    string
	Telefone string
	Notas    string
}

func ParseClient(r *http.Request) (ClientForm, validation.Violations) {
	f := ClientForm{
		Nome:     strings.TrimSpace(r.FormValue("nome")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Telefone: strings.TrimSpace(r.FormValue("telefone")),
		Notas:    r.FormValue("notas"),
	}
	v := make(validation.Violations)
	validation.Required("nome", f.Nome, v)
	validation.MinLen("nome", f.Nome, 2, v)
	validation.Email("email", f.Email, v)
	return f, v
}

func (f ClientForm) Apply(c *models.Client) {
	c.Nome = f.Nome
	c.Email = f.Email
	c.Telefone = f.Telefone
	c.Notas = f.Notas
}

type SupplierForm struct {
	Nome     string
	Email    string
	Telefone string
	Endereco string
}

func ParseSupplier(r *http.Request) (SupplierForm, validation.Violations) {
	f := SupplierForm{
		Nome:     strings.TrimSpace(r.FormValue("nome")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Telefone: strings.TrimSpace(r.FormValue("telefone")),
		Endereco: strings.TrimSpace(r.FormValue("endereco")),
	}
	v := make(validation.Violations)
	validation.Required("nome", f.Nome, v)
	validation.MinLen("nome", f.Nome, 2, v)
	validation.Email("email", f.Email, v)
	return f, v
}

func (f SupplierForm) Apply(s *models.Supplier) {
	s.Nome = f.Nome
	s.Email = f.Email
	s.Telefone = f.Telefone
	s.Endereco = f.Endereco
}

type ProductForm struct {
	Nome         string
	Preco        float64
	Estoque      int
	FornecedorID uint
	Descricao    string
}

func ParseProduct(r *http.Request) (ProductForm, validation.Violations) {
	f := ProductForm{
		Nome:      strings.TrimSpace(r.FormValue("nome")),
		Descricao: r.FormValue("descricao"),
	}
	v := make(validation.Violations)
	validation.Required("nome", f.Nome, v)
	validation.MinLen("nome", f.Nome, 2, v)

	precoStr := strings.TrimSpace(r.FormValue("preco"))
	if precoStr == "" {
		v["preco"] = "required"
	} else if preco, err := strconv.ParseFloat(precoStr, 64); err != nil {
		v["preco"] = "invalid_number"
	} else {
		f.Preco = preco
		validation.PositiveFloat("preco", f.Preco, v)
	}

	estoqueStr := strings.TrimSpace(r.FormValue("estoque"))
	if estoqueStr == "" {
		v["estoque"] = "required"
	} else if estoque, err := strconv.Atoi(estoqueStr); err != nil {
		v["estoque"] = "invalid_number"
	} else {
		f.Estoque = estoque
		validation.NonNegativeInt("estoque", f.Estoque, v)
	}

	fornecedorStr := strings.TrimSpace(r.FormValue("fornecedor_id"))
	if fornecedorStr == "" {
		v["fornecedor_id"] = "required"
	} else if id, err := strconv.ParseUint(fornecedorStr, 10, 64); err != nil || id == 0 {
		v["fornecedor_id"] = "invalid_supplier"
	} else {
		f.FornecedorID = uint(id)
	}
	return f, v
}

func (f ProductForm) Apply(p *models.Product) {
	p.Nome = f.Nome
	p.Preco = f.Preco
	p.Estoque = f.Estoque
	p.FornecedorID = f.FornecedorID
	p.Descricao = f.Descricao
}

type SaleForm struct {
	ClienteID  uint
	ProdutoID  uint
	Quantidade int
}

// ParseSale rejects missing, non-numeric, and non-positive quantities with
// distinct messages so the flash the user sees names the actual problem.
func ParseSale(r *http.Request) (SaleForm, validation.Violations) {
	f := SaleForm{}
	v := make(validation.Violations)

	clienteStr := strings.TrimSpace(r.FormValue("cliente_id"))
	produtoStr := strings.TrimSpace(r.FormValue("produto_id"))
	qtyStr := strings.TrimSpace(r.FormValue("quantidade"))
	if clienteStr == "" || produtoStr == "" || qtyStr == "" {
		v["form"] = "missing_fields"
		return f, v
	}
	if id, err := strconv.ParseUint(clienteStr, 10, 64); err != nil || id == 0 {
		v["cliente_id"] = "invalid_client"
	} else {
		f.ClienteID = uint(id)
	}
	if id, err := strconv.ParseUint(produtoStr, 10, 64); err != nil || id == 0 {
		v["produto_id"] = "invalid_product"
	} else {
		f.ProdutoID = uint(id)
	}
	if qty, err := strconv.Atoi(qtyStr); err != nil {
		v["quantidade"] = "invalid_number"
	} else {
		f.Quantidade = qty
		validation.PositiveInt("quantidade", f.Quantidade, v)
	}
	return f, v
}

type RegisterForm struct {
	Username string
	Email    string
	Password string
}

func ParseRegister(r *http.Request) (RegisterForm, validation.Violations) {
	f := RegisterForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	v := make(validation.Violations)
	validation.Required("username", f.Username, v)
	validation.Required("email", f.Email, v)
	validation.Email("email", f.Email, v)
	validation.Required("password", f.Password, v)
	return f, v
}

type LoginForm struct {
	Username string
	Password string
}

func ParseLogin(r *http.Request) (LoginForm, validation.Violations) {
	f := LoginForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}
	v := make(validation.Violations)
	validation.Required("username", f.Username, v)
	validation.Required("password", f.Password, v)
	return f, v
}

type PasswordForm struct {
	NovaSenha      string
	ConfirmarSenha string
}

func ParsePassword(r *http.Request) (PasswordForm, validation.Violations) {
	f := PasswordForm{
		NovaSenha:      r.FormValue("nova_senha"),
		ConfirmarSenha: r.FormValue("confirmar_senha"),
	}
	v := make(validation.Violations)
	validation.Required("nova_senha", f.NovaSenha, v)
	validation.MinLen("nova_senha", f.NovaSenha, 6, v)
	validation.EqualStrings("confirmar_senha", f.NovaSenha, f.ConfirmarSenha, v)
	return f, v
}

type EmailForm struct {
	Email string
}

func ParseEmail(r *http.Request) (EmailForm, validation.Violations) {
	f := EmailForm{Email: strings.TrimSpace(r.FormValue("email"))}
	v := make(validation.Violations)
	validation.Required("email", f.Email, v)
	validation.Email("email", f.Email, v)
	return f, v
}

type DeleteAccountForm struct {
	Confirmar bool
}

func ParseDeleteAccount(r *http.Request) (DeleteAccountForm, validation.Violations) {
	f := DeleteAccountForm{Confirmar: r.FormValue("confirmar") != ""}
	v := make(validation.Violations)
	if !f.Confirmar {
		v["confirmar"] = "required"
	}
	return f, v
}
