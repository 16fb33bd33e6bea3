package services_test

import (
	"errors"
	"strings"
	"testing"

	"motortrade/internal/domain"
	"motortrade/internal/repos"
	"motortrade/internal/services"
)

func TestRegisterHashesPasswordAndDefaultsToClient(t *testing.T) {
	db := memdb(t)
	svc := services.NewAccountService(repos.NewAccountRepo(db))

	a, err := svc.Register("Jamie", "Driver", "Jamie@Example.com", "Secret1pass")
	if err != nil {
		t.Fatal(err)
	}
	if a.Email != "jamie@example.com" {
		t.Fatalf("email not normalized: %q", a.Email)
	}
	if a.Role != domain.RoleClient {
		t.Fatalf("role = %q", a.Role)
	}
	if strings.Contains(a.Hash, "Secret1pass") || !strings.HasPrefix(a.Hash, "$2") {
		t.Fatalf("password not bcrypt-hashed: %q", a.Hash)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := memdb(t)
	svc := services.NewAccountService(repos.NewAccountRepo(db))

	if _, err := svc.Register("Jamie", "Driver", "jamie@example.com", "Secret1pass"); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register("Other", "Person", "JAMIE@example.com", "Secret1pass")
	if !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginNeverRevealsWhichFieldWasWrong(t *testing.T) {
	db := memdb(t)
	svc := services.NewAccountService(repos.NewAccountRepo(db))

	_, errUnknown := svc.Login("nobody@example.com", "Whatever1x")
	_, errBadPass := svc.Login("basic@motortrade.test", "WrongPass1")
	if !errors.Is(errUnknown, services.ErrBadCreds) || !errors.Is(errBadPass, services.ErrBadCreds) {
		t.Fatalf("errs = %v / %v, both must be ErrBadCreds", errUnknown, errBadPass)
	}

	if _, err := svc.Login("basic@motortrade.test", "Passw0rd!"); err != nil {
		t.Fatalf("seeded login failed: %v", err)
	}
}

func TestUpdateRejectsTakenEmail(t *testing.T) {
	db := memdb(t)
	svc := services.NewAccountService(repos.NewAccountRepo(db))

	_, err := svc.Update("a-basic", "Basic", "Client", "admin@motortrade.test")
	if !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}

	a, err := svc.Update("a-basic", "Renamed", "Client", "basic@motortrade.test")
	if err != nil {
		t.Fatal(err)
	}
	if a.FirstName != "Renamed" {
		t.Fatalf("update not applied: %+v", a)
	}
}

func TestUpdatePasswordVerifiesCurrent(t *testing.T) {
	db := memdb(t)
	svc := services.NewAccountService(repos.NewAccountRepo(db))

	err := svc.UpdatePassword("a-basic", "WrongCurrent1", "NewSecret1x")
	if !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("err = %v, want ErrBadCreds", err)
	}

	if err := svc.UpdatePassword("a-basic", "Passw0rd!", "NewSecret1x"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Login("basic@motortrade.test", "NewSecret1x"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, err := svc.Login("basic@motortrade.test", "Passw0rd!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("old password still accepted: %v", err)
	}
}
