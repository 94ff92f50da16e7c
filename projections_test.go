package sitedesk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, c *Console, key, raw string) {
	t.Helper()
	require.NoError(t, c.Store.Write(key, raw))
}

const donationsJSON = `[
  {"timestamp": 1700000000000, "name": "Asha", "email": "asha@example.com", "category": "nsm", "amount": 1500, "method": "UPI", "transactionId": "T1"},
  {"timestamp": 1700000500000, "name": "", "category": "general", "amount": "2,000"},
  {"timestamp": 1699999000000, "name": "Ravi", "amount": 250},
  {"timestamp": 1700000900000, "name": "Meera", "category": "NSM", "amount": 10},
  {"name": "no timestamp", "amount": 5}
]`

func TestDonationFilters(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	seed(t, c, KeyDonations, donationsJSON)

	all, skipped, err := c.Activity.DonationRecords(FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, 1, skipped)

	nsm, _, err := c.Activity.DonationRecords(FilterNSM)
	require.NoError(t, err)
	require.Len(t, nsm, 2)
	assert.Equal(t, "Meera", string(nsm[0].Name))
	assert.Equal(t, "Asha", string(nsm[1].Name))
	// stored upper case, matched case-insensitively
	assert.Equal(t, "NSM", string(nsm[0].Category))
	assert.Equal(t, CategoryNSM, nsm[0].CategoryOrDefault())

	general, _, err := c.Activity.DonationRecords(FilterGeneral)
	require.NoError(t, err)
	require.Len(t, general, 2)
	for _, d := range general {
		assert.Equal(t, CategoryGeneral, d.CategoryOrDefault())
	}
	assert.Equal(t, "", string(general[0].Name))
	assert.Equal(t, "Ravi", string(general[1].Name))
	assert.Empty(t, string(general[1].Category))

	unknown, _, err := c.Activity.DonationRecords(ParseDonationFilter("vip"))
	require.NoError(t, err)
	assert.Len(t, unknown, 4)
}

func TestDonationsTable(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	seed(t, c, KeyDonations, donationsJSON)

	tbl, err := c.Activity.Donations(FilterAll)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 4)
	assert.Nil(t, tbl.Empty)
	assert.Equal(t, 1, tbl.Skipped)

	// most recent first
	assert.Equal(t, "Meera", tbl.Rows[0][1].Text)
	assert.Equal(t, Cell{Text: "NSM Student/Alumni", Badge: "primary"}, tbl.Rows[0][3])

	anon := tbl.Rows[1]
	assert.Equal(t, "Anonymous", anon[1].Text)
	assert.Equal(t, "N/A", anon[2].Text)
	assert.Equal(t, Cell{Text: "General Public", Badge: "info"}, anon[3])
	assert.Equal(t, "₹2,000", anon[4].Text)

	asha := tbl.Rows[2]
	assert.Equal(t, "14/11/2023, 10:13:20 pm", asha[0].Text)
	assert.Equal(t, "₹1,500", asha[4].Text)
	assert.Equal(t, "T1", asha[6].Text)

	assert.Equal(t, "Ravi", tbl.Rows[3][1].Text)
	assert.Equal(t, "General Public", tbl.Rows[3][3].Text)
}

func TestActivityPlaceholders(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})

	logins, err := c.Activity.Logins()
	require.NoError(t, err)
	require.NotNil(t, logins.Empty)
	assert.Equal(t, "No login activity yet", logins.Empty.Title)

	regs, err := c.Activity.Registrations()
	require.NoError(t, err)
	require.NotNil(t, regs.Empty)
	assert.Equal(t, "No registrations yet", regs.Empty.Title)

	dons, err := c.Activity.Donations(FilterNSM)
	require.NoError(t, err)
	require.NotNil(t, dons.Empty)
	assert.Equal(t, "No donations yet", dons.Empty.Title)
	assert.Len(t, dons.Columns, 7)
}

func TestLoginsTable(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	seed(t, c, KeyUserLogins, `[
	  {"timestamp": "2024-01-02T09:00:00Z", "email": "a@example.com", "method": "Google"},
	  {"timestamp": 1704240000000, "contact": "+91 98765"},
	  {"timestamp": "2024-01-01"},
	  {"email": "missing@example.com"}
	]`)

	tbl, err := c.Activity.Logins()
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, 1, tbl.Skipped)

	assert.Equal(t, "+91 98765", tbl.Rows[0][1].Text)
	assert.Equal(t, "Email", tbl.Rows[0][2].Text)
	assert.Equal(t, "a@example.com", tbl.Rows[1][1].Text)
	assert.Equal(t, "Google", tbl.Rows[1][2].Text)
	assert.Equal(t, "N/A", tbl.Rows[2][1].Text)
	assert.Equal(t, Cell{Text: "Success", Badge: "success"}, tbl.Rows[2][3])
}

func TestRegistrationsTable(t *testing.T) {
	c := newTestConsole(t, ConsoleOptions{})
	seed(t, c, KeyUsers, `[
	  {"firstName": "Asha", "surname": "Rao", "email": "asha@example.com", "telcode": "+91", "mobile": 98765,
	   "course": "B.Sc", "from": 1998, "to": 2001, "paymentMethod": "UPI", "donationAmount": 500, "createdAt": 1700000000000},
	  {"firstName": "Ravi", "createdAt": "2023-11-20"}
	]`)

	tbl, err := c.Activity.Registrations()
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)

	ravi := tbl.Rows[0]
	assert.Equal(t, "Ravi", ravi[0].Text)
	assert.Equal(t, "N/A", ravi[1].Text)
	assert.Equal(t, "₹0", ravi[6].Text)
	assert.Equal(t, "20/11/2023", ravi[7].Text)

	asha := tbl.Rows[1]
	assert.Equal(t, "Asha Rao", asha[0].Text)
	assert.Equal(t, "+9198765", asha[2].Text)
	assert.Equal(t, "1998 - 2001", asha[4].Text)
	assert.Equal(t, "₹500", asha[6].Text)
}

func TestCorruptExternalCollectionReadsEmpty(t *testing.T) {
	logger := &recordingLogger{}
	c := newTestConsole(t, ConsoleOptions{Logger: logger})
	seed(t, c, KeyDonations, `{"oops"`)

	tbl, err := c.Activity.Donations(FilterAll)
	require.NoError(t, err)
	assert.NotNil(t, tbl.Empty)
	assert.Positive(t, logger.count())
}

func TestParseDonationFilter(t *testing.T) {
	assert.Equal(t, FilterNSM, ParseDonationFilter("NSM"))
	assert.Equal(t, FilterGeneral, ParseDonationFilter(" general "))
	assert.Equal(t, FilterAll, ParseDonationFilter(""))
	assert.Equal(t, FilterAll, ParseDonationFilter("other"))
}
