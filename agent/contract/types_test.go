package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestOrderTotalPriceDecoding(t *testing.T) {
	t.Parallel()

	raw := `[{"total_price":"10.50"},{"total_price":5},{"total_price":null},{},{"total_price":"abc"}]`
	var orders []Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		t.Fatalf("unmarshal orders: %v", err)
	}

	want := []string{"10.5", "5", "0", "0", "0"}
	for i, o := range orders {
		if got := o.TotalPrice.Decimal().String(); got != want[i] {
			t.Fatalf("orders[%d].Decimal() = %s, want %s", i, got, want[i])
		}
	}
	if orders[2].TotalPrice.IsSet() || orders[3].TotalPrice.IsSet() {
		t.Fatal("null and missing total_price must be unset")
	}
}

func TestSalesTotalJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(SalesOf(decimal.RequireFromString("15.50")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "15.5" {
		t.Fatalf("available total = %s, want 15.5", b)
	}

	b, err = json.Marshal(NoSales())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"N/A (not accessible in public mode)"` {
		t.Fatalf("unavailable total = %s", b)
	}

	var back SalesTotal
	if err := json.Unmarshal([]byte("42.10"), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Available || !back.Amount.Equal(decimal.RequireFromString("42.1")) {
		t.Fatalf("unmarshal = %#v", back)
	}
}

func TestSourcesKeepOrder(t *testing.T) {
	t.Parallel()

	src := Sources{
		{Name: "Wikipedia", Text: "Page: <Go>"},
		{Name: "Arxiv", Text: "Published: 2024"},
		{Name: "Web", Text: "Title: x & y"},
	}
	b, err := encodeNoEscape(src)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"Wikipedia":"Page: <Go>","Arxiv":"Published: 2024","Web":"Title: x & y"}`
	if string(b) != want {
		t.Fatalf("marshal = %s, want %s", b, want)
	}

	var back Sources
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(src, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if text, ok := back.Get("Arxiv"); !ok || text != "Published: 2024" {
		t.Fatalf("Get(Arxiv) = %q, %v", text, ok)
	}
}

func TestOutcomeJSON(t *testing.T) {
	t.Parallel()

	ok := Succeeded(Report{Mode: ModePrivate, Store: "shop", TotalSales: SalesOf(decimal.NewFromInt(3)), TopProducts: []*string{}, InventoryAlerts: []string{}})
	b, err := json.Marshal(ok)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"mode":"private","store":"shop","total_sales":3,"top_products":[],"inventory_alerts":[]}`
	if string(b) != want {
		t.Fatalf("marshal = %s, want %s", b, want)
	}

	failed := Failed[Report](fmt.Errorf("Shopify API error: %w", fmt.Errorf("%w: status=503", ErrNetwork)))
	b, err = json.Marshal(failed)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want = `{"error":"Shopify API error: network error: status=503","kind":"network"}`
	if string(b) != want {
		t.Fatalf("marshal = %s, want %s", b, want)
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	cases := map[error]ErrorKind{
		nil: "",
		fmt.Errorf("%w: missing token", ErrConfiguration): KindConfiguration,
		fmt.Errorf("%w: bad json", ErrParse):              KindParse,
		fmt.Errorf("%w: disk full", ErrIO):                KindIO,
		errors.New("boom"):                                KindUnknown,
	}
	for err, want := range cases {
		if got := KindOf(err); got != want {
			t.Fatalf("KindOf(%v) = %q, want %q", err, got, want)
		}
	}
}

func encodeNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func TestOutcomeFailureKeepsMarkup(t *testing.T) {
	t.Parallel()

	out := Failed[Report](fmt.Errorf("Shopify API error: %w: <html> & body", ErrParse))
	b, err := encodeNoEscape(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"error":"Shopify API error: parse error: <html> & body","kind":"parse"}`
	if string(b) != want {
		t.Fatalf("marshal = %s, want %s", b, want)
	}
}
