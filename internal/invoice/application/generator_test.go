package application

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customer "github.com/AI-guru11/Mo7/internal/customer/domain"
	"github.com/AI-guru11/Mo7/internal/invoice/domain"
	order "github.com/AI-guru11/Mo7/internal/order/domain"
)

func testOrder(payment order.PaymentType, paid bool) order.Order {
	return order.Order{
		ID:          "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
		CustomerID:  "c1",
		TotalAmount: 7500,
		PaymentType: payment,
		IsPaid:      paid,
		OrderDate:   time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC),
	}
}

func testCustomer() customer.Customer {
	return customer.Customer{
		Name:     "Amit Sharma",
		ShopName: "Sharma Fresh Mart",
		Phone:    "+91-9811111111",
	}
}

func testItems() []order.OrderItem {
	return []order.OrderItem{{
		ProductName:  "Potato (Frying)",
		QuantityBags: 3,
		QuantityKg:   75,
		PricePerBag:  2500,
		Subtotal:     7500,
	}}
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "A1B2C3D4", InvoiceNumber("a1b2c3d4-e5f6-7890-abcd-ef1234567890"))
	assert.Equal(t, "AB12", InvoiceNumber("ab12"))
}

func TestFilenamePattern(t *testing.T) {
	got := Filename(testOrder(order.PaymentCash, true), testCustomer())
	assert.Equal(t, "M7_Invoice_A1B2C3D4_Amit_Sharma.pdf", got)
}

func TestRenderLayoutOrder(t *testing.T) {
	g := NewGenerator(DefaultCompany())
	doc := g.Render(testOrder(order.PaymentCash, true), testCustomer(), testItems())

	kinds := make([]domain.Kind, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		kinds = append(kinds, b.Kind)
	}
	assert.Equal(t, []domain.Kind{
		domain.KindHeader,
		domain.KindParty,
		domain.KindParty,
		domain.KindTable,
		domain.KindTotal,
		domain.KindBadge,
		domain.KindNote,
	}, kinds)

	parties := doc.FindAll(domain.KindParty)
	require.Len(t, parties, 2)
	assert.Equal(t, "From:", parties[0].Title)
	assert.Equal(t, "Bill To:", parties[1].Title)
	assert.Contains(t, parties[1].Lines, "Sharma Fresh Mart")
}

func TestRenderHeaderCarriesInvoiceNumberAndDate(t *testing.T) {
	g := NewGenerator(DefaultCompany())
	doc := g.Render(testOrder(order.PaymentCash, true), testCustomer(), testItems())

	header, ok := doc.Find(domain.KindHeader)
	require.True(t, ok)
	assert.Equal(t, "M7 Distribution", header.Title)
	assert.Contains(t, header.Lines, "Invoice #: A1B2C3D4")
	assert.Contains(t, header.Lines, "Date: 1/2/2024")
}

func TestRenderItemTable(t *testing.T) {
	g := NewGenerator(DefaultCompany())
	doc := g.Render(testOrder(order.PaymentCash, true), testCustomer(), testItems())

	table, ok := doc.Find(domain.KindTable)
	require.True(t, ok)
	assert.Equal(t, []string{"Product", "Bags", "Weight", "Price/Bag", "Subtotal"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"Potato (Frying)", "3", "75.00 kg", "₹2,500", "₹7,500"}, table.Rows[0])
}

func TestRenderTotalUsesStoredAmountNotItemSum(t *testing.T) {
	// The stored total is authoritative even if it disagrees with the
	// items handed in.
	o := testOrder(order.PaymentCash, true)
	o.TotalAmount = 9999

	g := NewGenerator(DefaultCompany())
	doc := g.Render(o, testCustomer(), testItems())

	total, ok := doc.Find(domain.KindTotal)
	require.True(t, ok)
	assert.Equal(t, "₹9,999", total.Value)
}

func TestRenderPaymentBadge(t *testing.T) {
	g := NewGenerator(DefaultCompany())

	paid := g.Render(testOrder(order.PaymentCash, true), testCustomer(), testItems())
	badge, ok := paid.Find(domain.KindBadge)
	require.True(t, ok)
	assert.Equal(t, "PAID", badge.Label)
	assert.Equal(t, domain.TonePositive, badge.Tone)
	assert.Equal(t, "Payment Type: CASH", badge.Value)

	unpaid := g.Render(testOrder(order.PaymentCredit, false), testCustomer(), testItems())
	badge, ok = unpaid.Find(domain.KindBadge)
	require.True(t, ok)
	assert.Equal(t, "UNPAID", badge.Label)
	assert.Equal(t, domain.ToneNegative, badge.Tone)
}

func TestRenderDueDateOnlyForUnpaidCredit(t *testing.T) {
	g := NewGenerator(DefaultCompany())

	unpaidCredit := g.Render(testOrder(order.PaymentCredit, false), testCustomer(), testItems())
	require.True(t, hasDueDate(unpaidCredit))
	notes := unpaidCredit.FindAll(domain.KindNote)
	assert.Equal(t, []string{"Due Date: 8/2/2024"}, notes[0].Lines)

	paidCredit := g.Render(testOrder(order.PaymentCredit, true), testCustomer(), testItems())
	assert.False(t, hasDueDate(paidCredit))

	cash := g.Render(testOrder(order.PaymentCash, true), testCustomer(), testItems())
	assert.False(t, hasDueDate(cash))
}

func hasDueDate(doc domain.Document) bool {
	for _, note := range doc.FindAll(domain.KindNote) {
		for _, line := range note.Lines {
			if strings.HasPrefix(line, "Due Date:") {
				return true
			}
		}
	}
	return false
}

func TestRenderIndianRupeeGrouping(t *testing.T) {
	o := testOrder(order.PaymentCash, true)
	o.TotalAmount = 1125000

	g := NewGenerator(DefaultCompany())
	doc := g.Render(o, testCustomer(), testItems())

	total, ok := doc.Find(domain.KindTotal)
	require.True(t, ok)
	assert.Equal(t, "₹11,25,000", total.Value)
}

func TestRenderIsDeterministic(t *testing.T) {
	g := NewGenerator(DefaultCompany())
	a := g.Render(testOrder(order.PaymentCredit, false), testCustomer(), testItems())
	b := g.Render(testOrder(order.PaymentCredit, false), testCustomer(), testItems())
	assert.Equal(t, a, b)
}
