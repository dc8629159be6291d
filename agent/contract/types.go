package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Mode string

const (
	ModePublic  Mode = "public"
	ModePrivate Mode = "private"
)

// SalesUnavailable is the total_sales marker for reports built without order data.
const SalesUnavailable = "N/A (not accessible in public mode)"

type Product struct {
	Title       *string   `json:"title"`
	Handle      string    `json:"handle,omitempty"`
	Vendor      string    `json:"vendor,omitempty"`
	ProductType string    `json:"product_type,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
}

// TitleText renders a possibly-null title for human-readable output.
func (p Product) TitleText() string {
	if p.Title == nil {
		return "untitled"
	}
	return *p.Title
}

type Variant struct {
	Title             string `json:"title"`
	Price             string `json:"price,omitempty"`
	InventoryQuantity *int   `json:"inventory_quantity,omitempty"`
}

type Order struct {
	TotalPrice Amount `json:"total_price"`
}

// Amount is a money value as the storefront sent it: a JSON string, a
// number, null or nothing at all.
type Amount struct {
	raw string
	set bool
}

func NewAmount(raw string) Amount {
	return Amount{raw: raw, set: true}
}

func (a Amount) IsSet() bool {
	return a.set
}

func (a Amount) String() string {
	return a.raw
}

// Decimal parses the amount. Absent or non-numeric values count as zero.
func (a Amount) Decimal() decimal.Decimal {
	if !a.set {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(a.raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*a = Amount{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount{raw: s, set: true}
	default:
		*a = Amount{raw: string(b), set: true}
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return json.Marshal(a.raw)
}

// SalesTotal is either a computed decimal sum or the unavailable marker.
type SalesTotal struct {
	Amount    decimal.Decimal
	Available bool
}

func SalesOf(d decimal.Decimal) SalesTotal {
	return SalesTotal{Amount: d, Available: true}
}

func NoSales() SalesTotal {
	return SalesTotal{}
}

func (s SalesTotal) String() string {
	if !s.Available {
		return SalesUnavailable
	}
	return s.Amount.String()
}

func (s SalesTotal) MarshalJSON() ([]byte, error) {
	if !s.Available {
		return json.Marshal(SalesUnavailable)
	}
	return []byte(s.Amount.String()), nil
}

func (s *SalesTotal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] == '"' || bytes.Equal(b, []byte("null")) {
		*s = NoSales()
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("total_sales: %w", err)
	}
	*s = SalesOf(d)
	return nil
}

// InventoryLevel renders a first-variant stock count, "N/A" when untracked.
type InventoryLevel struct {
	Quantity *int
}

func (l InventoryLevel) MarshalJSON() ([]byte, error) {
	if l.Quantity == nil {
		return json.Marshal("N/A")
	}
	return []byte(strconv.Itoa(*l.Quantity)), nil
}

func (l *InventoryLevel) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] == '"' || bytes.Equal(b, []byte("null")) {
		l.Quantity = nil
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	l.Quantity = &n
	return nil
}

// ProductSummary is one row of a public catalog listing.
type ProductSummary struct {
	Title       *string        `json:"title"`
	Price       *string        `json:"price"`
	Inventory   InventoryLevel `json:"inventory"`
	Handle      string         `json:"handle"`
	ProductType string         `json:"product_type"`
	Vendor      string         `json:"vendor"`
}

type Report struct {
	Mode            Mode             `json:"mode"`
	Store           string           `json:"store"`
	TotalSales      SalesTotal       `json:"total_sales"`
	TopProducts     []*string        `json:"top_products"`
	InventoryAlerts []string         `json:"inventory_alerts"`
	Products        []ProductSummary `json:"products,omitempty"`
	Note            string           `json:"note,omitempty"`
}

type StoreRequest struct {
	Mode     Mode
	StoreURL string
	Limit    int
}

// Source is the raw text one lookup returned.
type Source struct {
	Name string
	Text string
}

// Sources keeps lookup results in query order and encodes as a JSON object.
type Sources []Source

func (s Sources) Get(name string) (string, bool) {
	for _, src := range s {
		if src.Name == name {
			return src.Text, true
		}
	}
	return "", false
}

func (s Sources) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, src := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(src.Name)
		if err != nil {
			return nil, err
		}
		val, err := marshalNoEscape(src.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Sources) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("sources: expected object")
	}

	out := Sources{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("sources[%s]: %w", key, err)
		}
		out = append(out, Source{Name: key, Text: text})
	}
	*s = out
	return nil
}

type ResearchResult struct {
	Summary string  `json:"summary"`
	Sources Sources `json:"sources"`
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
