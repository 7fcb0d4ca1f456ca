package services

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func (s Summary) String() string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)

	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnSeparator("")
	display.WriteString("Options Analysis Summary:\n")

	optionType := strings.ToUpper(string(s.OptionType)[:1]) + string(s.OptionType)[1:]

	rows := [][]string{
		{"Ticker", s.Ticker},
		{"Option Type", optionType},
		{"Strike Price", fmt.Sprintf("$%s", p.Sprintf("%.2f", s.StrikePrice))},
		{"Current Price", fmt.Sprintf("$%s", p.Sprintf("%.2f", s.CurrentStockPrice))},
		{"Days to Expiry", fmt.Sprintf("%d", s.DaysToExpiry)},
		{"Status", fmt.Sprintf("%s (Moneyness: %.3f)", s.MoneynessStatus, s.MoneynessRatio)},
		{"Implied Vol", fmt.Sprintf("%.1f%%", s.ImpliedVolatilityPct)},
		{"Option Price", fmt.Sprintf("$%s", p.Sprintf("%.2f", s.OptionPrice))},
		{"Intrinsic Value", fmt.Sprintf("$%s", p.Sprintf("%.2f", s.IntrinsicValue))},
		{"Time Value", fmt.Sprintf("$%s", p.Sprintf("%.2f", s.TimeValue))},
		{"Delta", fmt.Sprintf("%.4f", s.Greeks.Delta)},
		{"Gamma", fmt.Sprintf("%.4f", s.Greeks.Gamma)},
		{"Theta", fmt.Sprintf("$%.4f/day", s.Greeks.Theta)},
		{"Vega", fmt.Sprintf("$%.4f/1%% IV", s.Greeks.Vega)},
		{"Rho", fmt.Sprintf("$%.4f/1%% rate", s.Greeks.Rho)},
	}

	for _, row := range rows {
		table.Append(row)
	}

	table.Render()
	return display.String()
}
