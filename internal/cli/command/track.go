package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/custrack-go/internal/core/domain"
)

// TrackCommand returns the track subcommand group.
func TrackCommand() *cli.Command {
	return &cli.Command{
		Name:  "track",
		Usage: "Manage follow-up records",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List follow-up records",
				Flags:  trackFilterFlags(),
				Action: trackList,
			},
			{
				Name:      "get-for-customer",
				Usage:     "List one customer's follow-up records",
				ArgsUsage: "CUSTOMER_ID",
				Action:    customerTracks,
			},
			{
				Name:  "create",
				Usage: "Record a follow-up",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "customer", Aliases: []string{"C"}, Usage: "customer ID", Required: true},
					&cli.StringFlag{Name: "content", Usage: "what happened", Required: true},
					&cli.StringFlag{Name: "next-action", Usage: "follow-up decision", Value: string(domain.ActionContinue)},
				},
				Action: trackCreate,
			},
			{
				Name:      "update",
				Usage:     "Update a follow-up record",
				ArgsUsage: "TRACK_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "content", Usage: "what happened"},
					&cli.StringFlag{Name: "next-action", Usage: "follow-up decision"},
				},
				Action: trackUpdate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a follow-up record",
				ArgsUsage: "TRACK_ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "skip confirmation"},
				},
				Action: trackDelete,
			},
			{
				Name:   "actions",
				Usage:  "List the valid follow-up decisions",
				Action: trackActions,
			},
			{
				Name:  "export",
				Usage: "Export follow-up records to a CSV file",
				Flags: append(trackFilterFlags(),
					&cli.StringFlag{Name: "out", Usage: "output file", Value: "tracks.csv"},
				),
				Action: trackExport,
			},
		},
	}
}

func trackFilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "customer", Aliases: []string{"C"}, Usage: "filter by customer ID"},
		&cli.IntFlag{Name: "page", Value: 1, Usage: "page number"},
		&cli.IntFlag{Name: "limit", Value: 20, Usage: "page size"},
		&cli.StringFlag{Name: "start-date", Usage: "earliest track date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "end-date", Usage: "latest track date (YYYY-MM-DD)"},
	}
}

func trackQueryFromFlags(c *cli.Context) domain.TrackListQuery {
	return domain.TrackListQuery{
		CustomerID: c.Int("customer"),
		Page:       c.Int("page"),
		Limit:      c.Int("limit"),
		StartDate:  c.String("start-date"),
		EndDate:    c.String("end-date"),
	}
}

func trackList(c *cli.Context) error {
	env, err := requireSession(c)
	if err != nil {
		return err
	}

	resp, err := env.Tracks.List(c.Context, trackQueryFromFlags(c))
	if err != nil {
		return exitErr("%v", err)
	}

	if err := formatter(c).Format(env.Out, resp.Tracks); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "\nTotal: %d tracks\n", resp.Total)
	return nil
}

func trackCreate(c *cli.Context) error {
	env, err := requireSession(c)
	if err != nil {
		return err
	}

	track, err := env.Tracks.Create(c.Context, domain.TrackCreateRequest{
		CustomerID: c.Int("customer"),
		Content:    c.String("content"),
		NextAction: domain.NextAction(c.String("next-action")),
	})
	if err != nil {
		return exitErr("%v", err)
	}

	fmt.Fprintf(env.Out, "Track %d recorded for customer %d.\n", track.ID, track.CustomerID)
	return nil
}

func trackUpdate(c *cli.Context) error {
	env := envFrom(c)
	id, err := argID(c, "track")
	if err != nil {
		return err
	}
	if _, err := requireSession(c); err != nil {
		return err
	}

	var req domain.TrackUpdateRequest
	if c.IsSet("content") {
		v := c.String("content")
		req.Content = &v
	}
	if c.IsSet("next-action") {
		v := domain.NextAction(c.String("next-action"))
		req.NextAction = &v
	}

	track, err := env.Tracks.Update(c.Context, id, req)
	if err != nil {
		return exitErr("%v", err)
	}

	fmt.Fprintf(env.Out, "Track %d updated.\n", track.ID)
	return nil
}

func trackDelete(c *cli.Context) error {
	env := envFrom(c)
	id, err := argID(c, "track")
	if err != nil {
		return err
	}

	if !c.Bool("force") {
		fmt.Fprintf(env.Out, "Delete track %d? [y/N]: ", id)
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
	if err := env.Tracks.Delete(c.Context, id); err != nil {
		return exitErr("%v", err)
	}

	fmt.Fprintf(env.Out, "Track %d deleted.\n", id)
	return nil
}

func trackActions(c *cli.Context) error {
	env, err := requireSession(c)
	if err != nil {
		return err
	}

	actions, err := env.Tracks.NextActions(c.Context)
	if err != nil {
		return exitErr("%v", err)
	}
	return formatter(c).Format(env.Out, actions)
}

func trackExport(c *cli.Context) error {
	env, err := requireSession(c)
	if err != nil {
		return err
	}

	path := c.String("out")
	n, err := env.Tracks.ExportCSV(c.Context, trackQueryFromFlags(c), path)
	if err != nil {
		return exitErr("%v", err)
	}

	fmt.Fprintf(env.Out, "Exported %d tracks to %s\n", n, path)
	return nil
}
