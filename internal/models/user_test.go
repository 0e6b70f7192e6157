package models

import "testing"

func TestPasswordHashing(t *testing.T) {
	var u User
	if err := u.SetPassword("senha123"); err != nil {
		t.Fatal(err)
	}
	if u.PasswordHash == "senha123" || u.PasswordHash == "" {
		t.Fatal("password stored without hashing")
	}
	if !u.CheckPassword("senha123") {
		t.Fatal("correct password rejected")
	}
	if u.CheckPassword("senha124") {
		t.Fatal("wrong password accepted")
	}
}

func TestIsAdmin(t *testing.T) {
	if !(User{ID: AdminUserID}).IsAdmin() {
		t.Fatal("first user not recognized as admin")
	}
	if (User{ID: 2}).IsAdmin() {
		t.Fatal("regular user recognized as admin")
	}
}
