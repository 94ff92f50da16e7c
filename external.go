package sitedesk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Records in the users, donations and user_logins collections are written by
// the public site, not by the console. They are validated here, where the
// console reads them.

// Millis is a point in time stored either as epoch milliseconds or as a date string.
type Millis struct {
	time.Time
}

var millisLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

func (m *Millis) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			m.Time = time.UnixMilli(int64(f)).UTC()
			return nil
		}
		for _, layout := range millisLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				m.Time = t
				return nil
			}
		}
		return fmt.Errorf("unrecognized time %q", s)
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("unrecognized time %s", b)
	}
	m.Time = time.UnixMilli(int64(f)).UTC()
	return nil
}

func (m Millis) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(m.UnixMilli(), 10)), nil
}

// Amount is a money value stored as a number or a numeric string.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.NewReplacer(",", "", " ", "").Replace(s)
		if s == "" {
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("unrecognized amount %s", b)
	}
	*a = Amount(f)
	return nil
}

// Text is a string field that tolerates numbers and booleans.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(b)
	return nil
}

func (t Text) or(fallback string) string {
	if s := strings.TrimSpace(string(t)); s != "" {
		return s
	}
	return fallback
}

// LoginRecord is one sign-in on the public site.
type LoginRecord struct {
	Timestamp Millis `json:"timestamp"`
	Email     Text   `json:"email"`
	Contact   Text   `json:"contact"`
	Method    Text   `json:"method"`
}

func (r LoginRecord) validate() error {
	if r.Timestamp.IsZero() {
		return errors.New("timestamp is required")
	}
	return nil
}

// Registration is a member sign-up from the public site.
type Registration struct {
	FirstName      Text    `json:"firstName"`
	Surname        Text    `json:"surname"`
	Email          Text    `json:"email"`
	Telcode        Text    `json:"telcode"`
	Mobile         Text    `json:"mobile"`
	Course         Text    `json:"course"`
	From           Text    `json:"from"`
	To             Text    `json:"to"`
	PaymentMethod  Text    `json:"paymentMethod"`
	DonationAmount *Amount `json:"donationAmount"`
	CreatedAt      Millis  `json:"createdAt"`
}

func (r Registration) validate() error {
	if r.CreatedAt.IsZero() {
		return errors.New("createdAt is required")
	}
	return nil
}

// Donation categories.
const (
	CategoryNSM     = "nsm"
	CategoryGeneral = "general"
)

// Donation is a contribution recorded by the public site.
type Donation struct {
	Timestamp     Millis  `json:"timestamp"`
	Name          Text    `json:"name"`
	Email         Text    `json:"email"`
	Category      Text    `json:"category"`
	Amount        *Amount `json:"amount"`
	Method        Text    `json:"method"`
	TransactionID Text    `json:"transactionId"`
}

func (d Donation) validate() error {
	if d.Timestamp.IsZero() {
		return errors.New("timestamp is required")
	}
	if d.Amount == nil {
		return errors.New("amount is required")
	}
	return nil
}

// CategoryOrDefault returns the donation category, "general" when unset.
func (d Donation) CategoryOrDefault() string {
	return strings.ToLower(d.Category.or(CategoryGeneral))
}

type externalRecord interface {
	validate() error
}

// decodeRecords decodes and validates each raw element independently.
// Elements that fail are skipped and reported in errs by index.
func decodeRecords[T externalRecord](raws []json.RawMessage) (out []T, errs []error) {
	out = make([]T, 0, len(raws))
	for i, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if err := rec.validate(); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		out = append(out, rec)
	}
	return out, errs
}

// ExternalKeys are the collections the import command may replace.
var ExternalKeys = []string{KeyUsers, KeyDonations, KeyUserLogins}

func validateExternal(key string, raws []json.RawMessage) []error {
	switch key {
	case KeyUsers:
		_, errs := decodeRecords[Registration](raws)
		return errs
	case KeyDonations:
		_, errs := decodeRecords[Donation](raws)
		return errs
	case KeyUserLogins:
		_, errs := decodeRecords[LoginRecord](raws)
		return errs
	}
	return []error{fmt.Errorf("%q is not an external collection", key)}
}

// ImportExternal replaces the external collection key with the JSON array in
// data. Every element must pass validation or nothing is written.
func ImportExternal(s *Store, prefix, key string, data []byte) (int, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return 0, fmt.Errorf("import %s: expected a JSON array: %w", key, err)
	}
	if errs := validateExternal(key, raws); len(errs) > 0 {
		return 0, fmt.Errorf("import %s: %w", key, errors.Join(errs...))
	}
	coll := NewCollection[json.RawMessage](s, prefix+key, nil)
	if err := coll.ReplaceAll(raws); err != nil {
		return 0, err
	}
	return len(raws), nil
}
