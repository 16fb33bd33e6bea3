package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestCartAPIFlow(t *testing.T) {
	app, _ := newTestApp(t)
	tok := loginToken(t, app, "basic@motortrade.test", "Passw0rd!")

	// Add twice, quantities combine on one line.
	for i := 0; i < 2; i++ {
		resp, err := app.Test(jsonReq("POST", "/cart/add", `{"invId":"ford-crown-vic","quantity":2}`, tok))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add: status = %d, want 200", resp.StatusCode)
		}
		body := decodeBody(t, resp)
		if body["fallback"] == true {
			t.Fatalf("unexpected fallback: %v", body)
		}
	}

	resp, err := app.Test(jsonReq("GET", "/cart/items", "", tok))
	if err != nil {
		t.Fatal(err)
	}
	body := decodeBody(t, resp)
	items, ok := body["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("items = %v, want one line", body["items"])
	}
	line := items[0].(map[string]any)
	if line["cart_quantity"] != float64(4) {
		t.Fatalf("cart_quantity = %v, want 4", line["cart_quantity"])
	}
	if body["subtotal"] != float64(40000) {
		t.Fatalf("subtotal = %v, want 40000", body["subtotal"])
	}
	if body["tax"] != float64(3550) {
		t.Fatalf("tax = %v, want 3550", body["tax"])
	}
	if body["total"] != float64(43550) {
		t.Fatalf("total = %v, want 43550", body["total"])
	}

	resp, err = app.Test(jsonReq("GET", "/cart/count", "", tok))
	if err != nil {
		t.Fatal(err)
	}
	if body = decodeBody(t, resp); body["count"] != float64(4) {
		t.Fatalf("count = %v, want 4", body["count"])
	}

	// Update to an absolute quantity.
	resp, err = app.Test(jsonReq("POST", "/cart/update", `{"invId":"ford-crown-vic","quantity":1}`, tok))
	if err != nil {
		t.Fatal(err)
	}
	body = decodeBody(t, resp)
	if item, ok := body["item"].(map[string]any); !ok || item["cart_quantity"] != float64(1) {
		t.Fatalf("update payload = %v", body)
	}

	// Quantity zero removes the line.
	resp, err = app.Test(jsonReq("POST", "/cart/update", `{"invId":"ford-crown-vic","quantity":0}`, tok))
	if err != nil {
		t.Fatal(err)
	}
	if body = decodeBody(t, resp); body["removed"] != true {
		t.Fatalf("expected removed, got %v", body)
	}

	resp, err = app.Test(jsonReq("GET", "/cart/items", "", tok))
	if err != nil {
		t.Fatal(err)
	}
	if body = decodeBody(t, resp); len(body["items"].([]any)) != 0 {
		t.Fatalf("cart not empty after removal: %v", body["items"])
	}
}

func TestCartAddUnknownItem(t *testing.T) {
	app, _ := newTestApp(t)
	tok := loginToken(t, app, "basic@motortrade.test", "Passw0rd!")

	resp, err := app.Test(jsonReq("POST", "/cart/add", `{"invId":"no-such-car"}`, tok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCartAddFallsBackToSession(t *testing.T) {
	app, db := newTestApp(t)
	tok := loginToken(t, app, "basic@motortrade.test", "Passw0rd!")

	if _, err := db.Exec(`DROP TABLE cart`); err != nil {
		t.Fatalf("drop cart table: %v", err)
	}

	resp, err := app.Test(jsonReq("POST", "/cart/add", `{"invId":"dmc-delorean","quantity":1}`, tok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["fallback"] != true {
		t.Fatalf("expected fallback response, got %v", body)
	}
	msg, _ := body["message"].(string)
	if !strings.Contains(msg, "session cart") {
		t.Fatalf("message = %q", msg)
	}

	// The line landed in the session cart, readable via the cookie.
	sid := cookieValue(resp, "sid")
	if sid == "" {
		t.Fatal("no session cookie set on fallback")
	}
	req := jsonReq("GET", "/cart", "", "")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body = decodeBody(t, resp)
	items := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("session items = %v", items)
	}
	line := items[0].(map[string]any)
	if line["name"] != "DMC DeLorean" || line["price"] != float64(35000) {
		t.Fatalf("fallback line = %v", line)
	}
}

func formReq(target string, vals url.Values, sid string) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}

func TestGuestSessionCartFlow(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(formReq("/cart/add-session", url.Values{
		"invId":    {"gm-hummer"},
		"name":     {"GM Hummer"},
		"price":    {"58800"},
		"quantity": {"2"},
	}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("add-session: status = %d, want 302", resp.StatusCode)
	}
	sid := cookieValue(resp, "sid")
	if sid == "" {
		t.Fatal("no session cookie set")
	}

	req := jsonReq("GET", "/cart", "", "")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body := decodeBody(t, resp)
	items := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %v", items)
	}
	if body["subtotal"] != float64(117600) {
		t.Fatalf("subtotal = %v, want 117600", body["subtotal"])
	}

	resp, err = app.Test(formReq("/cart/update-session", url.Values{
		"invId":    {"gm-hummer"},
		"quantity": {"1"},
	}, sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("update-session: status = %d", resp.StatusCode)
	}

	resp, err = app.Test(formReq("/cart/remove-session", url.Values{"invId": {"gm-hummer"}}, sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("remove-session: status = %d", resp.StatusCode)
	}

	req = jsonReq("GET", "/cart", "", "")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if body = decodeBody(t, resp); len(body["items"].([]any)) != 0 {
		t.Fatalf("session cart not empty: %v", body["items"])
	}
}
