package utils

import "testing"

func TestJwtGenerateValidateRoundTrip(t *testing.T) {
	token, err := JwtGenerate(42, "someone@example.com")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	validated, err := JwtValidate(token)
	if err != nil {
		t.Fatalf("JwtValidate: %v", err)
	}
	if !validated.Valid {
		t.Fatal("token not valid")
	}

	claims, ok := validated.Claims.(*JwtCustomClaim)
	if !ok {
		t.Fatalf("claims type = %T", validated.Claims)
	}
	if claims.ID != 42 || claims.Email != "someone@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestJwtValidateRejectsTampering(t *testing.T) {
	token, err := JwtGenerate(1, "a@b.c")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	if _, err := JwtValidate(token + "x"); err == nil {
		t.Fatal("tampered token accepted")
	}
	if _, err := JwtValidate("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ComparePassword(string(hashed), "s3cret-pass"); err != nil {
		t.Fatalf("ComparePassword: %v", err)
	}
	if err := ComparePassword(string(hashed), "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
}
