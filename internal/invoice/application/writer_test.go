package application

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI-guru11/Mo7/internal/invoice/domain"
	order "github.com/AI-guru11/Mo7/internal/order/domain"
)

func TestWriterRendersEveryBlock(t *testing.T) {
	g := NewGenerator(DefaultCompany())
	doc := g.Render(testOrder(order.PaymentCredit, false), testCustomer(), testItems())

	var sb strings.Builder
	require.NoError(t, Writer{}.WriteTo(&sb, doc))
	text := sb.String()

	assert.Contains(t, text, "M7 Distribution")
	assert.Contains(t, text, "Invoice #: A1B2C3D4")
	assert.Contains(t, text, "Bill To:")
	assert.Contains(t, text, "Potato (Frying)")
	assert.Contains(t, text, "TOTAL: ₹7,500")
	assert.Contains(t, text, "[UNPAID]")
	assert.Contains(t, text, "Due Date: 8/2/2024")
	assert.Contains(t, text, "- Page 1 -")
}

func TestWriterPaginatesLongDocuments(t *testing.T) {
	items := make([]order.OrderItem, 80)
	for i := range items {
		items[i] = order.OrderItem{ProductName: "Potato (Regular)", QuantityBags: 1, QuantityKg: 25, PricePerBag: 2000, Subtotal: 2000}
	}
	g := NewGenerator(DefaultCompany())
	doc := g.Render(testOrder(order.PaymentCash, true), testCustomer(), items)

	var sb strings.Builder
	require.NoError(t, Writer{}.WriteTo(&sb, doc))
	text := sb.String()

	assert.Contains(t, text, "\f")
	assert.Contains(t, text, "- Page 2 -")
}

func TestWriterToleratesRaggedTableRows(t *testing.T) {
	// A hand-built document may carry rows wider than the column header
	// list; the writer must render them rather than panic.
	doc := domain.Document{Blocks: []domain.Block{{
		Kind:    domain.KindTable,
		Columns: []string{"Product"},
		Rows: [][]string{
			{"Potato (Frying)", "3", "₹7,500"},
			{"Onion (Red)"},
		},
	}}}

	var sb strings.Builder
	require.NoError(t, Writer{}.WriteTo(&sb, doc))
	assert.Contains(t, sb.String(), "₹7,500")
}

func TestWriterSaveWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	o := order.Order{
		ID:          "deadbeef-0000-0000-0000-000000000000",
		TotalAmount: 100,
		PaymentType: order.PaymentCash,
		IsPaid:      true,
		OrderDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	c := testCustomer()
	g := NewGenerator(DefaultCompany())

	path, err := Writer{}.Save(g.Render(o, c, nil), dir, Filename(o, c))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "M7_Invoice_DEADBEEF_Amit_Sharma.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "M7 Distribution")
}
