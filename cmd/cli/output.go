package main

import (
	"fmt"
	"io"
	"stockdash/internal/domain"
	"text/tabwriter"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
}

func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *p)
}

func writeQuotes(w io.Writer, quotes []domain.Quote) error {
	t := newTable(w)
	fmt.Fprintln(t, "SYMBOL\tNAME\tPRICE\tCHANGE\tCHANGE %\tHIGH\tLOW\tVOLUME\tMKT CAP\tP/E\t")
	for _, q := range quotes {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			q.Symbol, q.Name,
			formatPrice(q.Current), formatPrice(q.Change), formatPrice(q.Percent),
			formatPrice(q.High), formatPrice(q.Low),
			q.Volume, q.MarketCap, q.PE,
		)
	}
	return t.Flush()
}

func writeHoldings(w io.Writer, holdings domain.Holdings) error {
	if len(holdings) == 0 {
		_, err := fmt.Fprintln(w, "no holdings")
		return err
	}
	t := newTable(w)
	fmt.Fprintln(t, "SYMBOL\tCOMPANY\tQTY\tLAST PRICE\tAVG COST\tINVESTED\t")
	for _, h := range holdings {
		fmt.Fprintf(t, "%s\t%s\t%d\t%s\t%s\t%s\t\n",
			h.Symbol, h.CompanyName, h.Quantity,
			h.Price.StringFixed(2), h.AverageCost().StringFixed(2), h.Invested.StringFixed(2),
		)
	}
	return t.Flush()
}

func writeValuation(w io.Writer, v *domain.PortfolioValuation) error {
	t := newTable(w)
	fmt.Fprintln(t, "SYMBOL\tQTY\tPRICE\tLIVE\tVALUE\tINVESTED\tGAIN\tGAIN %\tWEIGHT %\t")
	for _, h := range v.Holdings {
		fmt.Fprintf(t, "%s\t%d\t%s\t%t\t%s\t%s\t%s\t%s\t%s\t\n",
			h.Symbol, h.Quantity, h.Price.StringFixed(2), h.PriceIsLive,
			h.MarketValue.StringFixed(2), h.Invested.StringFixed(2),
			h.UnrealizedGain.StringFixed(2), h.UnrealizedGainPercent.StringFixed(2),
			h.Weight.Shift(2).StringFixed(1),
		)
	}
	fmt.Fprintf(t, "TOTAL\t\t\t\t%s\t%s\t%s\t%s\t\t\n",
		v.TotalMarketValue.StringFixed(2), v.TotalInvested.StringFixed(2),
		v.TotalUnrealizedGain.StringFixed(2), v.TotalUnrealizedGainPercent.StringFixed(2),
	)
	if err := t.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "largest position %.1f%%, weight std dev %.3f\n", v.LargestWeight*100, v.WeightStdDev)
	return err
}
