package aggregator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ID is an aggregator identifier. Some aggregators send numeric ids, others
// strings; both decode to the same textual form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Date is a calendar date. The zero value means the field was absent.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// Account is a live bank account bound to an aggregator connection.
type Account struct {
	ID           ID              `json:"id"`
	ConnectionID ID              `json:"bankConnectionId"`
	Name         string          `json:"accountName"`
	IBAN         *string         `json:"iban"`
	Balance      decimal.Decimal `json:"balance"`
}

// Transaction is one booked transaction as listed by the aggregator.
type Transaction struct {
	ID                   ID              `json:"id"`
	AccountID            ID              `json:"accountId"`
	BankBookingDate      Date            `json:"bankBookingDate"`
	ValueDate            Date            `json:"valueDate"`
	Amount               decimal.Decimal `json:"amount"`
	Purpose              *string         `json:"purpose"`
	CounterpartName      *string         `json:"counterpartName"`
	CounterpartIBAN      *string         `json:"counterpartIban"`
	CounterpartReference *string         `json:"counterpartReference"`
}
