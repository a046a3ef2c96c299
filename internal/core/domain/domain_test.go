package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAreaFor(t *testing.T) {
	targets := RedirectTargets{Admin: "/admin/", User: "/user/"}

	staff := &Account{Username: "root", IsStaff: true}
	if got := AreaFor(staff); got != AreaAdmin {
		t.Fatalf("expected admin area for staff, got %s", got)
	}
	if got := targets.For(AreaFor(staff)); got != "/admin/" {
		t.Fatalf("expected /admin/, got %s", got)
	}

	regular := &Account{Username: "alice"}
	if got := targets.For(AreaFor(regular)); got != "/user/" {
		t.Fatalf("expected /user/, got %s", got)
	}
	if got := AreaFor(nil); got != AreaUser {
		t.Fatalf("expected user area for nil account, got %s", got)
	}
}

func TestProductValidate(t *testing.T) {
	valid := Product{
		Name:          "Shirt",
		Price:         decimal.RequireFromString("19.99"),
		Category:      "Clothes",
		ImageURL:      "https://cdn.example.com/shirt.png",
		StockQuantity: 3,
	}
	if verr := valid.Validate(); verr != nil {
		t.Fatalf("expected valid product, got %v", verr)
	}

	zeroPrice := valid
	zeroPrice.Price = decimal.Zero
	verr := zeroPrice.Validate()
	if verr == nil || len(verr.Fields["price"]) == 0 {
		t.Fatalf("expected price error, got %v", verr)
	}

	negative := valid
	negative.Price = decimal.RequireFromString("-1")
	negative.StockQuantity = -1
	negative.ImageURL = "not a url"
	verr = negative.Validate()
	if verr == nil {
		t.Fatalf("expected errors")
	}
	for _, field := range []string{"price", "stock_quantity", "image_url"} {
		if len(verr.Fields[field]) == 0 {
			t.Fatalf("expected error on %s, got %v", field, verr.Fields)
		}
	}
}

func TestTimestamp_Unmarshal(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-03-01T10:20:30.123456+00:00"`: time.Date(2024, 3, 1, 10, 20, 30, 123456000, time.UTC),
		`"2024-03-01T10:20:30"`:              time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC),
		`"2024-03-01T12:20:30+02:00"`:        time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC),
	}
	for raw, want := range cases {
		var ts Timestamp
		if err := json.Unmarshal([]byte(raw), &ts); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if !ts.Equal(want) {
			t.Fatalf("unmarshal %s: got %v, want %v", raw, ts.Time, want)
		}
	}

	var ts Timestamp
	if err := json.Unmarshal([]byte(`null`), &ts); err != nil || !ts.IsZero() {
		t.Fatalf("expected zero timestamp from null, got %v (%v)", ts, err)
	}
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatalf("expected error for garbage timestamp")
	}

	out, err := json.Marshal(Timestamp{})
	if err != nil || string(out) != "null" {
		t.Fatalf("expected null for zero timestamp, got %s (%v)", out, err)
	}
}

func TestValidationError(t *testing.T) {
	verr := NewValidationError("email", "taken")
	verr.Add("email", "again")
	if !verr.HasErrors() || len(verr.Fields["email"]) != 2 {
		t.Fatalf("unexpected fields: %v", verr.Fields)
	}
	if verr.Error() != "validation failed: email: taken again" {
		t.Fatalf("unexpected message: %s", verr.Error())
	}
}
