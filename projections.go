package sitedesk

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// Cell is one table cell. A non-empty Badge renders the text as a badge of
// that style.
type Cell struct {
	Text  string
	Badge string
}

// Placeholder is shown instead of rows when a table is empty.
type Placeholder struct {
	Title string
	Hint  string
}

// Table is a rendered activity listing.
type Table struct {
	Columns []string
	Rows    [][]Cell
	Empty   *Placeholder
	Skipped int // records that failed validation
}

// DonationFilter selects a donation category; FilterAll keeps every record.
type DonationFilter string

const (
	FilterAll     DonationFilter = "all"
	FilterNSM     DonationFilter = CategoryNSM
	FilterGeneral DonationFilter = CategoryGeneral
)

// DonationFilters lists the toggle tags in display order.
var DonationFilters = []DonationFilter{FilterAll, FilterNSM, FilterGeneral}

// ParseDonationFilter maps a toggle tag to a filter. Unknown tags select all.
func ParseDonationFilter(s string) DonationFilter {
	switch DonationFilter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterNSM:
		return FilterNSM
	case FilterGeneral:
		return FilterGeneral
	}
	return FilterAll
}

// Activity projects the externally written collections into tables. Every
// call reloads, filters and sorts from scratch.
type Activity struct {
	logins    *Collection[json.RawMessage]
	users     *Collection[json.RawMessage]
	donations *Collection[json.RawMessage]
	format    Formatter
	log       Logger
}

func loadRecords[T externalRecord](a *Activity, c *Collection[json.RawMessage]) ([]T, int, error) {
	raws, err := c.Get()
	if err != nil {
		return nil, 0, err
	}
	recs, errs := decodeRecords[T](raws)
	if len(errs) > 0 {
		a.log.Warnf("collection %s: skipped %d invalid records: %v", c.Key(), len(errs), errors.Join(errs...))
	}
	return recs, len(errs), nil
}

// LoginRecords returns valid login records, most recent first.
func (a *Activity) LoginRecords() ([]LoginRecord, int, error) {
	recs, skipped, err := loadRecords[LoginRecord](a, a.logins)
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Timestamp.After(recs[j].Timestamp.Time)
	})
	return recs, skipped, nil
}

// Logins renders the login activity table.
func (a *Activity) Logins() (Table, error) {
	recs, skipped, err := a.LoginRecords()
	if err != nil {
		return Table{}, err
	}
	t := Table{Columns: []string{"Date & Time", "Account", "Method", "Status"}, Skipped: skipped}
	for _, r := range recs {
		t.Rows = append(t.Rows, []Cell{
			{Text: a.format.DateTime(r.Timestamp.Time)},
			{Text: r.Email.or(r.Contact.or("N/A"))},
			{Text: r.Method.or("Email"), Badge: "info"},
			{Text: "Success", Badge: "success"},
		})
	}
	if len(t.Rows) == 0 {
		t.Empty = &Placeholder{Title: "No login activity yet", Hint: "User login records will appear here"}
	}
	return t, nil
}

// RegistrationRecords returns valid registrations, newest first.
func (a *Activity) RegistrationRecords() ([]Registration, int, error) {
	recs, skipped, err := loadRecords[Registration](a, a.users)
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt.Time)
	})
	return recs, skipped, nil
}

// Registrations renders the registrations table.
func (a *Activity) Registrations() (Table, error) {
	recs, skipped, err := a.RegistrationRecords()
	if err != nil {
		return Table{}, err
	}
	t := Table{
		Columns: []string{"Name", "Email", "Phone", "Course", "Period", "Payment", "Donation", "Registered"},
		Skipped: skipped,
	}
	for _, r := range recs {
		var amount float64
		if r.DonationAmount != nil {
			amount = float64(*r.DonationAmount)
		}
		t.Rows = append(t.Rows, []Cell{
			{Text: strings.TrimSpace(string(r.FirstName) + " " + string(r.Surname))},
			{Text: r.Email.or("N/A")},
			{Text: string(r.Telcode) + string(r.Mobile)},
			{Text: r.Course.or("N/A")},
			{Text: string(r.From) + " - " + string(r.To)},
			{Text: r.PaymentMethod.or("N/A"), Badge: "primary"},
			{Text: a.format.Currency(amount)},
			{Text: a.format.Date(r.CreatedAt.Time)},
		})
	}
	if len(t.Rows) == 0 {
		t.Empty = &Placeholder{Title: "No registrations yet", Hint: "Registration records will appear here"}
	}
	return t, nil
}

// DonationRecords returns valid donations matching filter, most recent first.
func (a *Activity) DonationRecords(filter DonationFilter) ([]Donation, int, error) {
	recs, skipped, err := loadRecords[Donation](a, a.donations)
	if err != nil {
		return nil, 0, err
	}
	if filter != FilterAll {
		kept := recs[:0]
		for _, d := range recs {
			if d.CategoryOrDefault() == string(filter) {
				kept = append(kept, d)
			}
		}
		recs = kept
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Timestamp.After(recs[j].Timestamp.Time)
	})
	return recs, skipped, nil
}

// Donations renders the donations table for filter.
func (a *Activity) Donations(filter DonationFilter) (Table, error) {
	recs, skipped, err := a.DonationRecords(filter)
	if err != nil {
		return Table{}, err
	}
	t := Table{
		Columns: []string{"Date & Time", "Donor", "Email", "Category", "Amount", "Method", "Transaction ID"},
		Skipped: skipped,
	}
	for _, d := range recs {
		category := Cell{Text: "General Public", Badge: "info"}
		if d.CategoryOrDefault() == CategoryNSM {
			category = Cell{Text: "NSM Student/Alumni", Badge: "primary"}
		}
		t.Rows = append(t.Rows, []Cell{
			{Text: a.format.DateTime(d.Timestamp.Time)},
			{Text: d.Name.or("Anonymous")},
			{Text: d.Email.or("N/A")},
			category,
			{Text: a.format.Currency(float64(*d.Amount))},
			{Text: d.Method.or("N/A")},
			{Text: d.TransactionID.or("N/A")},
		})
	}
	if len(t.Rows) == 0 {
		t.Empty = &Placeholder{Title: "No donations yet", Hint: "Donation records will appear here"}
	}
	return t, nil
}
