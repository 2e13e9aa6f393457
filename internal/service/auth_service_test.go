package service

import (
	"testing"

	"github.com/Vaishnavcibu/schedule-manager/internal/model"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewAuthService(testConfig(), nil)
	user := &model.User{ID: 7, Name: "Ms. Chen", Role: model.RoleTeacher}

	token, jti, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if jti == "" {
		t.Fatal("expected non-empty jti")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Role != model.RoleTeacher || claims.Name != "Ms. Chen" {
		t.Errorf("claims = %+v, want user 7 / Teacher / Ms. Chen", claims)
	}
	if claims.ID != jti {
		t.Errorf("claims jti = %q, want %q", claims.ID, jti)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewAuthService(testConfig(), nil)
	token, _, err := issuer.GenerateToken(&model.User{ID: 1, Name: "Bob", Role: model.RoleStudent})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := testConfig()
	other.JWTSecret = "different-secret"
	verifier := NewAuthService(other, nil)
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected validation failure with wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewAuthService(testConfig(), nil)
	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected parse failure")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := NewAuthService(testConfig(), nil)

	hash, err := svc.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash must not equal plaintext")
	}
	if err := svc.CheckPassword(hash, "hunter2"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}
