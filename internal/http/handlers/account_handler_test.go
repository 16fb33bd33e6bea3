package handlers_test

import (
	"net/http"
	"testing"
)

func TestRegisterReturnsTokenAndProfile(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/account/register",
		`{"firstname":"Marty","lastname":"McFly","email":"marty@motortrade.test","password":"Outatime88"}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Fatalf("success = %v", body["success"])
	}
	if tok, _ := body["token"].(string); tok == "" {
		t.Fatal("register response missing token")
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("user payload missing: %v", body)
	}
	if user["email"] != "marty@motortrade.test" {
		t.Fatalf("user.email = %v", user["email"])
	}
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/account/register",
		`{"firstname":"Al","lastname":"B","email":"not-an-email","password":"short"}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if _, ok := body["errors"].([]any); !ok {
		t.Fatalf("expected errors list, got %v", body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/account/login",
		`{"email":"basic@motortrade.test","password":"wrong-password"}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAccountDetailRequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonReq("GET", "/account/", "", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("GET", "/account/", "", "not.a.token"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d, want 401", resp.StatusCode)
	}

	tok := loginToken(t, app, "basic@motortrade.test", "Passw0rd!")
	resp, err = app.Test(jsonReq("GET", "/account/", "", tok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("with token: status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("user payload missing: %v", body)
	}
	if user["email"] != "basic@motortrade.test" {
		t.Fatalf("user.email = %v", user["email"])
	}
}

func TestUpdatePasswordRequiresCurrent(t *testing.T) {
	app, _ := newTestApp(t)
	tok := loginToken(t, app, "basic@motortrade.test", "Passw0rd!")

	resp, err := app.Test(jsonReq("PUT", "/account/update-password",
		`{"currentPassword":"wrong","newPassword":"NewPassw0rd!"}`, tok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("PUT", "/account/update-password",
		`{"currentPassword":"Passw0rd!","newPassword":"NewPassw0rd1"}`, tok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	loginToken(t, app, "basic@motortrade.test", "NewPassw0rd1")
}
