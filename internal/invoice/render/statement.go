// Package render produces the printable monthly statement for a finalized
// invoice. It consumes the invoice read-only.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dairydesk/dairydesk/internal/invoice/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const dateLayout = "02 Jan 2006"

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Statement renders the invoice with its customer into a PDF document.
func (r *Renderer) Statement(detail domain.InvoiceDetail) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Milk Delivery Statement", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(22,
		col.New(6).Add(
			text.New("Invoice number: "+detail.InvoiceNo, props.Text{Top: 0}),
			text.New("Billing period: "+detail.StartDate.Format(dateLayout)+" - "+detail.EndDate.Format(dateLayout), props.Text{Top: 5}),
			text.New("Due date: "+detail.DueDate.Format(dateLayout), props.Text{Top: 10}),
			text.New("Status: "+string(detail.Status), props.Text{Top: 15}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(detail.Customer.Name, props.Text{Top: 5}),
			text.New(detail.Customer.Address, props.Text{Top: 10}),
			text.New(detail.Customer.PhoneNo, props.Text{Top: 15}),
		),
	)

	m.AddRow(4, line.NewCol(12))

	m.AddRow(8,
		text.NewCol(3, "Date", props.Text{Style: fontstyle.Bold}),
		text.NewCol(2, "Morning", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Evening", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Qty (L)", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(3, "Amount", props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)

	for _, item := range detail.LineItems {
		m.AddRow(6,
			text.NewCol(3, item.ItemDate.Format(dateLayout)),
			text.NewCol(2, formatQty(item.MorningQty), props.Text{Align: align.Right}),
			text.NewCol(2, formatQty(item.EveningQty), props.Text{Align: align.Right}),
			text.NewCol(2, formatQty(item.TotalQty), props.Text{Align: align.Right}),
			text.NewCol(3, formatAmount(item.Amount), props.Text{Align: align.Right}),
		)
	}

	m.AddRow(4, line.NewCol(12))

	m.AddRow(8,
		text.NewCol(9, "Total quantity", props.Text{Align: align.Right}),
		text.NewCol(3, formatQty(detail.TotalQty)+" L", props.Text{Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(9, "Total amount", props.Text{Align: align.Right}),
		text.NewCol(3, formatAmount(detail.TotalAmount), props.Text{Align: align.Right, Style: fontstyle.Bold}),
	)
	m.AddRow(8,
		text.NewCol(9, "Amount paid", props.Text{Align: align.Right}),
		text.NewCol(3, formatAmount(detail.AmountPaid), props.Text{Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(9, "Amount due", props.Text{Align: align.Right}),
		text.NewCol(3, formatAmount(detail.DueAmount), props.Text{Align: align.Right, Style: fontstyle.Bold}),
	)

	if len(detail.Payments) > 0 {
		m.AddRow(10,
			text.NewCol(12, "Payments", props.Text{Style: fontstyle.Bold, Top: 4}),
		)
		for _, payment := range detail.Payments {
			label := payment.PaymentDate.Format(dateLayout) + "  " + string(payment.Method)
			if payment.TransactionID != "" {
				label += "  " + payment.TransactionID
			}
			m.AddRow(6,
				text.NewCol(9, label),
				text.NewCol(3, formatAmount(payment.Amount), props.Text{Align: align.Right}),
			)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate statement pdf: %w", err)
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func formatQty(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
