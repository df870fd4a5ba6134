package command

import (
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"

	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

// mockPaymentPrefix marks payment ids generated without a payment provider.
const mockPaymentPrefix = "mock_payment_"

// SubscriptionCommand returns the subscription subcommand group.
func SubscriptionCommand() *cli.Command {
	return &cli.Command{
		Name:    "subscription",
		Aliases: []string{"sub"},
		Usage:   "Plans and billing",
		Subcommands: []*cli.Command{
			{
				Name:   "plans",
				Usage:  "List the available plans",
				Action: subscriptionPlans,
			},
			{
				Name:   "current",
				Usage:  "Show your current plan",
				Action: subscriptionCurrent,
			},
			{
				Name:   "history",
				Usage:  "List past and present subscriptions",
				Action: subscriptionHistory,
			},
			{
				Name:      "subscribe",
				Usage:     "Buy a plan",
				ArgsUsage: "premium|pro",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "payment-id",
						Usage: "Authorised payment reference (a mock id is generated when omitted)",
					},
				},
				Action: subscriptionSubscribe,
			},
			{
				Name:  "cancel",
				Usage: "Stop renewing the current plan",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Skip confirmation",
					},
				},
				Action: subscriptionCancel,
			},
		},
	}
}

func subscriptionPlans(c *cli.Context) error {
	rt, client, err := clientFor(c, false)
	if err != nil {
		return err
	}
	plans, err := call(rt, "Loading plans", func() (map[string]domain.SubscriptionPlan, error) {
		return client.Plans(c.Context)
	})
	if err != nil {
		return err
	}
	return rt.Printer.Print(planList(plans))
}

func subscriptionCurrent(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	cur, err := call(rt, "Loading subscription", func() (*domain.CurrentSubscription, error) {
		return client.CurrentSubscription(c.Context)
	})
	if err != nil {
		return err
	}
	return rt.Printer.Print(currentView{cur})
}

func subscriptionHistory(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	list, err := call(rt, "Loading history", func() ([]domain.Subscription, error) {
		return client.SubscriptionHistory(c.Context)
	})
	if err != nil {
		return err
	}
	return rt.Printer.Print(subscriptionList(list))
}

func subscriptionSubscribe(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	tier := domain.SubscriptionType(strings.ToLower(c.Args().First()))
	paymentID := c.String("payment-id")
	if paymentID == "" {
		paymentID = mockPaymentPrefix + strings.ToLower(ulid.Make().String())
		rt.Logger.Debug("using mock payment id", "payment_id", paymentID)
	}

	sub, err := call(rt, "Subscribing", func() (*domain.Subscription, error) {
		return client.CreateSubscription(c.Context, tier, paymentID)
	})
	if err != nil {
		return err
	}
	if rt.Printer.Machine() {
		return rt.Printer.Print(sub)
	}
	rt.Printer.Success("subscribed to %s until %s", sub.Type, sub.EndDate.Local().Format("2006-01-02"))
	return nil
}

func subscriptionCancel(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	if !c.Bool("force") && !rt.confirm("Cancel your subscription?") {
		rt.Printer.Info("kept your subscription")
		return nil
	}
	ack, err := call(rt, "Cancelling subscription", func() (*domain.Ack, error) {
		return client.CancelSubscription(c.Context)
	})
	if err != nil {
		return err
	}
	if rt.Printer.Machine() {
		return rt.Printer.Print(ack)
	}
	if ack.Message != "" {
		rt.Printer.Success("%s", ack.Message)
		return nil
	}
	rt.Printer.Success("subscription cancelled")
	return nil
}
