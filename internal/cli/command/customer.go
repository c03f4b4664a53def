package command

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/custrack-go/internal/core/domain"
)

// CustomerCommand returns the customer subcommand group.
func CustomerCommand() *cli.Command {
	return &cli.Command{
		Name:    "customer",
		Aliases: []string{"cust"},
		Usage:   "Manage customers",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List customers",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Value: 1, Usage: "page number"},
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "page size"},
					&cli.StringFlag{Name: "search", Usage: "match name or phone"},
					&cli.StringFlag{Name: "status", Usage: "filter by follow-up status"},
				},
				Action: customerList,
			},
			{
				Name:      "get",
				Usage:     "Show one customer",
				ArgsUsage: "CUSTOMER_ID",
				Action:    customerGet,
			},
			{
				Name:  "create",
				Usage: "Create a customer",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "customer name", Required: true},
					&cli.StringFlag{Name: "phone", Usage: "phone number"},
					&cli.StringFlag{Name: "address", Usage: "address"},
					&cli.StringFlag{Name: "notes", Usage: "free-form notes"},
					&cli.IntFlag{Name: "rate", Usage: "rating 1-5"},
				},
				Action: customerCreate,
			},
			{
				Name:      "update",
				Usage:     "Update a customer",
				ArgsUsage: "CUSTOMER_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "customer name"},
					&cli.StringFlag{Name: "phone", Usage: "phone number"},
					&cli.StringFlag{Name: "address", Usage: "address"},
					&cli.StringFlag{Name: "notes", Usage: "free-form notes"},
					&cli.IntFlag{Name: "rate", Usage: "rating 1-5"},
				},
				Action: customerUpdate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a customer",
				ArgsUsage: "CUSTOMER_ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "skip confirmation"},
				},
				Action: customerDelete,
			},
			{
				Name:      "tracks",
				Usage:     "List a customer's follow-up records",
				ArgsUsage: "CUSTOMER_ID",
				Action:    customerTracks,
			},
		},
	}
}

// argID parses the positional ID argument.
func argID(c *cli.Context, what string) (int, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, exitErr("%s ID required", what)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, exitErr("invalid %s ID %q", what, raw)
	}
	return id, nil
}

func customerList(c *cli.Context) error {
	env, err := requireSession(c)
	if err != nil {
		return err
	}

	resp, err := env.Customers.List(c.Context, domain.CustomerListQuery{
		Page:   c.Int("page"),
		Limit:  c.Int("limit"),
		Search: c.String("search"),
		Status: domain.NextAction(c.String("status")),
	})
	if err != nil {
		return exitErr("%v", err)
	}

	if err := formatter(c).Format(env.Out, resp.Customers); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "\nTotal: %d customers\n", resp.Total)
	return nil
}

func customerGet(c *cli.Context) error {
	env := envFrom(c)
	id, err := argID(c, "customer")
	if err != nil {
		return err
	}
	if _, err := requireSession(c); err != nil {
		return err
	}

	customer, err := env.Customers.Get(c.Context, id)
	if err != nil {
		return exitErr("%v", err)
	}
	return formatter(c).Format(env.Out, customer)
}

func customerCreate(c *cli.Context) error {
	env, err := requireSession(c)
	if err != nil {
		return err
	}

	customer, err := env.Customers.Create(c.Context, domain.CustomerCreateRequest{
		Name:    c.String("name"),
		Phone:   c.String("phone"),
		Address: c.String("address"),
		Notes:   c.String("notes"),
		Rate:    c.Int("rate"),
	})
	if err != nil {
		return exitErr("%v", err)
	}

	fmt.Fprintf(env.Out, "Customer %d created.\n", customer.ID)
	return nil
}

func customerUpdate(c *cli.Context) error {
	env := envFrom(c)
	id, err := argID(c, "customer")
	if err != nil {
		return err
	}
	if _, err := requireSession(c); err != nil {
		return err
	}

	var req domain.CustomerUpdateRequest
	if c.IsSet("name") {
		v := c.String("name")
		req.Name = &v
	}
	if c.IsSet("phone") {
		v := c.String("phone")
		req.Phone = &v
	}
	if c.IsSet("address") {
		v := c.String("address")
		req.Address = &v
	}
	if c.IsSet("notes") {
		v := c.String("notes")
		req.Notes = &v
	}
	if c.IsSet("rate") {
		v := c.Int("rate")
		req.Rate = &v
	}

	customer, err := env.Customers.Update(c.Context, id, req)
	if err != nil {
		return exitErr("%v", err)
	}

	fmt.Fprintf(env.Out, "Customer %d updated.\n", customer.ID)
	return nil
}

func customerDelete(c *cli.Context) error {
	env := envFrom(c)
	id, err := argID(c, "customer")
	if err != nil {
		return err
	}

	if !c.Bool("force") {
		fmt.Fprintf(env.Out, "Delete customer %d and its tracks? [y/N]: ", id)
		var confirm string
		fmt.Fscanln(c.App.Reader, &confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Fprintln(env.Out, "Cancelled.")
			return nil
		}
	}

	if _, err := requireSession(c); err != nil {
		return err
	}
	if err := env.Customers.Delete(c.Context, id); err != nil {
		return exitErr("%v", err)
	}

	fmt.Fprintf(env.Out, "Customer %d deleted.\n", id)
	return nil
}

func customerTracks(c *cli.Context) error {
	env := envFrom(c)
	id, err := argID(c, "customer")
	if err != nil {
		return err
	}
	if _, err := requireSession(c); err != nil {
		return err
	}

	resp, err := env.Tracks.ForCustomer(c.Context, id)
	if err != nil {
		return exitErr("%v", err)
	}

	fmt.Fprintf(env.Out, "Customer: %s (rate %d)\n\n", resp.Customer.Name, resp.Customer.Rate)
	return formatter(c).Format(env.Out, resp.Tracks)
}
