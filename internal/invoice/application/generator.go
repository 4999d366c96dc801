package application

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	customer "github.com/AI-guru11/Mo7/internal/customer/domain"
	"github.com/AI-guru11/Mo7/internal/invoice/domain"
	order "github.com/AI-guru11/Mo7/internal/order/domain"
)

// Payment terms for unpaid credit orders.
const creditDueDays = 7

const dateLayout = "2/1/2006"

// CompanyInfo is the issuer block printed on every invoice.
type CompanyInfo struct {
	Name    string
	Tagline string
	Address string
	Phone   string
	GST     string
}

func DefaultCompany() CompanyInfo {
	return CompanyInfo{
		Name:    "M7 Distribution",
		Tagline: "Intelligent B2B Distribution Platform",
		Address: "Azadpur Mandi, Delhi, India",
		Phone:   "+91-9876543210",
		GST:     "GST123456789",
	}
}

// Generator renders priced orders into layout documents. Rendering is
// side-effect-free; writing the result anywhere is the writer's job.
type Generator struct {
	company CompanyInfo
	printer *message.Printer
}

func NewGenerator(company CompanyInfo) *Generator {
	return &Generator{
		company: company,
		printer: message.NewPrinter(language.MustParse("en-IN")),
	}
}

// InvoiceNumber derives the printed invoice number from an order id.
func InvoiceNumber(orderID string) string {
	if len(orderID) > 8 {
		orderID = orderID[:8]
	}
	return strings.ToUpper(orderID)
}

// Filename is the artifact name for a downloaded invoice:
// M7_Invoice_<number>_<customer name with spaces as underscores>.pdf
func Filename(o order.Order, c customer.Customer) string {
	name := strings.Join(strings.Fields(c.Name), "_")
	return fmt.Sprintf("M7_Invoice_%s_%s.pdf", InvoiceNumber(o.ID), name)
}

// Render lays out one invoice. The total line reflects the order's stored
// TotalAmount exactly; it is never recomputed from the items.
func (g *Generator) Render(o order.Order, c customer.Customer, items []order.OrderItem) domain.Document {
	doc := domain.Document{}

	doc.Blocks = append(doc.Blocks, domain.Block{
		Kind:  domain.KindHeader,
		Title: g.company.Name,
		Lines: []string{
			g.company.Tagline,
			"Invoice #: " + InvoiceNumber(o.ID),
			"Date: " + o.OrderDate.Format(dateLayout),
		},
	})

	doc.Blocks = append(doc.Blocks, domain.Block{
		Kind:  domain.KindParty,
		Title: "From:",
		Lines: partyLines(g.company.Name, g.company.Address, g.company.Phone, gstLine(g.company.GST)),
	})
	doc.Blocks = append(doc.Blocks, domain.Block{
		Kind:  domain.KindParty,
		Title: "Bill To:",
		Lines: partyLines(c.Name, c.ShopName, c.Phone, c.LocationGeo),
	})

	table := domain.Block{
		Kind:    domain.KindTable,
		Columns: []string{"Product", "Bags", "Weight", "Price/Bag", "Subtotal"},
	}
	for _, item := range items {
		table.Rows = append(table.Rows, []string{
			item.ProductName,
			strconv.Itoa(item.QuantityBags),
			fmt.Sprintf("%.2f kg", item.QuantityKg),
			g.money(item.PricePerBag),
			g.money(item.Subtotal),
		})
	}
	doc.Blocks = append(doc.Blocks, table)

	doc.Blocks = append(doc.Blocks, domain.Block{
		Kind:  domain.KindTotal,
		Label: "TOTAL:",
		Value: g.money(o.TotalAmount),
	})

	badge := domain.Block{
		Kind:  domain.KindBadge,
		Label: "UNPAID",
		Value: "Payment Type: " + strings.ToUpper(string(o.PaymentType)),
		Tone:  domain.ToneNegative,
	}
	if o.IsPaid {
		badge.Label = "PAID"
		badge.Tone = domain.TonePositive
	}
	doc.Blocks = append(doc.Blocks, badge)

	if o.PaymentType == order.PaymentCredit && !o.IsPaid {
		due := o.OrderDate.AddDate(0, 0, creditDueDays)
		doc.Blocks = append(doc.Blocks, domain.Block{
			Kind:  domain.KindNote,
			Lines: []string{"Due Date: " + due.Format(dateLayout)},
			Tone:  domain.ToneNeutral,
		})
	}

	doc.Blocks = append(doc.Blocks, domain.Block{
		Kind: domain.KindNote,
		Lines: []string{
			"Thank you for your business! For queries, contact us at the above details.",
			"Generated by " + g.company.Name,
		},
		Tone: domain.ToneNeutral,
	})

	return doc
}

func (g *Generator) money(v float64) string {
	return g.printer.Sprintf("₹%v", number.Decimal(v))
}

func gstLine(gst string) string {
	if gst == "" {
		return ""
	}
	return "GST: " + gst
}

func partyLines(lines ...string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
