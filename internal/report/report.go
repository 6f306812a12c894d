// Package report renders valuations for the terminal and for export.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/earnwatch/config"
	"github.com/vadiminshakov/earnwatch/internal/apierr"
	"github.com/vadiminshakov/earnwatch/internal/domain"
)

const (
	wideRule   = 60
	narrowRule = 50
)

var (
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning   = lipgloss.AdaptiveColor{Light: "#C9A227", Dark: "#F2C94C"}
	failure   = lipgloss.AdaptiveColor{Light: "#D64545", Dark: "#FF6B6B"}
)

type styles struct {
	header  lipgloss.Style
	section lipgloss.Style
	warn    lipgloss.Style
	total   lipgloss.Style
	fail    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header:  r.NewStyle().Foreground(highlight).Bold(true),
		section: r.NewStyle().Bold(true),
		warn:    r.NewStyle().Foreground(warning),
		total:   r.NewStyle().Foreground(special).Bold(true),
		fail:    r.NewStyle().Foreground(failure).Bold(true),
	}
}

// Money formats d with two decimals, rounding half up.
func Money(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// Render writes the positions list, the per-row valuation and the total.
func Render(w io.Writer, v domain.Valuation) error {
	s := newStyles(w)
	var b strings.Builder

	rule(&b, "=", wideRule)
	b.WriteString(s.header.Render("Binance Simple Earn flexible balance") + "\n")
	rule(&b, "=", wideRule)

	if len(v.Positions) == 0 {
		b.WriteString("\nNo flexible earn positions\n")
	} else {
		b.WriteString("\n" + s.section.Render("Flexible positions") + "\n")
		rule(&b, "-", narrowRule)
		for _, p := range v.Positions {
			fmt.Fprintf(&b, "%s: %s\n", p.Asset, p.TotalAmount.String())
		}

		b.WriteString("\n" + s.section.Render("Valuation") + "\n")
		rule(&b, "-", narrowRule)
		if v.StableBalance.IsPositive() {
			fmt.Fprintf(&b, "%s: $%s %s\n", v.Stablecoin, Money(v.StableBalance), v.Stablecoin)
		}
		for _, r := range v.RowsWithStatus(domain.RowPriced, domain.RowUnresolved) {
			if r.Status == domain.RowUnresolved {
				b.WriteString(s.warn.Render(fmt.Sprintf("! %s: %s (no price available for %s)",
					r.Asset, r.Amount.String(), r.Symbol)) + "\n")
				continue
			}
			fmt.Fprintf(&b, "%s: %s x $%s = $%s %s\n",
				r.Asset, r.Amount.String(), r.Price.String(), Money(r.Value), v.Stablecoin)
		}
	}

	b.WriteString("\n")
	rule(&b, "=", wideRule)
	b.WriteString(s.total.Render(fmt.Sprintf("Total flexible balance: $%s %s", Money(v.Total), v.Stablecoin)) + "\n")
	if v.Partial() {
		b.WriteString(s.warn.Render(fmt.Sprintf("Partial total: %d position(s) without price", len(v.UnresolvedAssets()))) + "\n")
	}
	rule(&b, "=", wideRule)

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderFailure reports why a run produced no total.
func RenderFailure(w io.Writer, err error) error {
	s := newStyles(w)
	kind := apierr.Classify(err)

	var b strings.Builder
	b.WriteString(s.fail.Render(fmt.Sprintf("Query failed: %s", kind.Message())) + "\n")
	if err != nil {
		fmt.Fprintf(&b, "  %v\n", err)
	}
	switch {
	case errors.Is(err, config.ErrMissingCredentials):
		b.WriteString("\nUsage:\n")
		b.WriteString("  1. set the environment variables:\n")
		fmt.Fprintf(&b, "     export %s='your_api_key'\n", config.EnvAPIKey)
		fmt.Fprintf(&b, "     export %s='your_secret_key'\n", config.EnvSecretKey)
		b.WriteString("  2. or put them in a .env file in the working directory\n")
	case kind == apierr.KindConfig:
		b.WriteString("Check the configuration file\n")
	default:
		b.WriteString("Check the network connection and the API configuration\n")
	}

	_, werr := io.WriteString(w, b.String())
	return werr
}

// RenderHistory lists stored snapshots, oldest first.
func RenderHistory(w io.Writer, records []domain.ValuationSnapshotRecord) error {
	s := newStyles(w)
	var b strings.Builder

	if len(records) == 0 {
		b.WriteString("No stored valuations\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(s.header.Render("Valuation history") + "\n")
	rule(&b, "-", wideRule)
	for _, rec := range records {
		snap := rec.Snapshot
		total, err := decimal.NewFromString(snap.Total)
		if err != nil {
			total = decimal.Zero
		}
		line := fmt.Sprintf("#%d %s $%s %s", rec.Index, snap.Timestamp.Format("2006-01-02 15:04:05"), Money(total), snap.Stablecoin)
		if len(snap.Unresolved) > 0 {
			line += s.warn.Render(fmt.Sprintf(" (no price: %s)", strings.Join(snap.Unresolved, ", ")))
		}
		b.WriteString(line + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func rule(b *strings.Builder, ch string, n int) {
	b.WriteString(strings.Repeat(ch, n) + "\n")
}
