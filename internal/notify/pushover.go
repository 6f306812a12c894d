// Package notify sends valuation summaries to push services.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/gregdel/pushover"
	"github.com/pkg/errors"

	"github.com/vadiminshakov/earnwatch/internal/domain"
	"github.com/vadiminshakov/earnwatch/internal/report"
)

const title = "earnwatch"

// PushoverNotifier sends the valuation total through Pushover.
type PushoverNotifier struct {
	app       *pushover.Pushover
	recipient *pushover.Recipient
}

func NewPushoverNotifier(token, user string) *PushoverNotifier {
	return &PushoverNotifier{
		app:       pushover.New(token),
		recipient: pushover.NewRecipient(user),
	}
}

// Notify pushes the summary of v.
func (n *PushoverNotifier) Notify(ctx context.Context, v domain.Valuation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := pushover.NewMessageWithTitle(Summary(v), title)
	if _, err := n.app.SendMessage(msg, n.recipient); err != nil {
		return errors.Wrap(err, "failed to send pushover message")
	}
	return nil
}

// Summary one-message text of the valuation.
func Summary(v domain.Valuation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Flexible balance: $%s %s", report.Money(v.Total), v.Stablecoin)

	if v.Partial() {
		fmt.Fprintf(&b, "\nNo price: %s", strings.Join(v.UnresolvedAssets(), ", "))
	}
	return b.String()
}
