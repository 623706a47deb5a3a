package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"libretto/internal/cli"
	"libretto/internal/core"
	applog "libretto/internal/log"
	"libretto/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(slog.LevelInfo)
	cfg := cli.LoadAndValidateConfig(logger)
	if level, _ := cfg.Level(); level != slog.LevelInfo {
		logger = cli.SetupLogger(level)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Failed to resolve timezone", applog.FieldError, err)
		os.Exit(1)
	}

	store, closeStore := cli.InitStore(logger, cfg, loc)
	defer closeStore()

	engine := services.NewEngine(store,
		services.WithLocation(loc),
		services.WithLogger(logger.WithComponent(applog.ComponentEngine)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := engine.Refresh(ctx); err != nil {
		logger.Error("Failed to load ledger", applog.FieldError, err)
		os.Exit(1)
	}

	g, ctx := errgroup.WithContext(ctx)
	lines := make(chan string)

	g.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return nil
			}
		}
		return scanner.Err()
	})

	g.Go(func() error {
		ui := &console{engine: engine, out: os.Stdout}
		ui.help()
		for {
			fmt.Fprint(os.Stdout, "> ")
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				if quit := ui.dispatch(ctx, line); quit {
					stop()
					return nil
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("Session ended with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Ledger closed")
}

// console renders engine state as text and translates typed commands into
// engine intents. It only reads the derived views, never the store.
type console struct {
	engine *services.Engine
	out    *os.File
}

func (c *console) help() {
	fmt.Fprintln(c.out, `commands:
  list                      show records for the active filter
  add <amount> <category> [date] [note]
  edit <id>                 load a record into the draft
  set <field> <value>       change a draft field (amount, category, note, date)
  submit                    commit the draft (add or update)
  cancel                    discard the draft
  delete <id>               remove a record
  filter <all|week|month>   switch the time window
  total                     show the filtered total and per-category sums
  chart                     show per-category spending as bars
  quit`)
}

func (c *console) dispatch(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		c.help()
	case "list":
		c.list()
	case "add":
		c.add(ctx, args)
	case "edit":
		c.edit(args)
	case "set":
		c.set(args)
	case "submit":
		c.submit(ctx)
	case "cancel":
		c.engine.CancelEdit()
		fmt.Fprintln(c.out, "draft discarded")
	case "delete":
		c.delete(ctx, args)
	case "filter":
		c.filter(args)
	case "total":
		c.total()
	case "chart":
		c.chart()
	default:
		fmt.Fprintf(c.out, "unknown command %q (try help)\n", cmd)
	}
	return false
}

func (c *console) list() {
	records := c.engine.FilteredView()
	if len(records) == 0 {
		fmt.Fprintln(c.out, "no records")
		return
	}
	for _, r := range records {
		note := r.Note
		if note != "" {
			note = "  (" + note + ")"
		}
		fmt.Fprintf(c.out, "#%d  %s  %s  %s%s\n", r.ID, r.Date, r.Amount.Format(), r.Category, note)
	}
}

func (c *console) add(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.out, "usage: add <amount> <category> [date] [note]")
		return
	}
	draft := services.Draft{Amount: args[0], Category: args[1]}
	if len(args) > 2 {
		draft.Date = args[2]
	}
	if len(args) > 3 {
		draft.Note = strings.Join(args[3:], " ")
	}
	c.engine.CancelEdit()
	c.engine.SetDraft(draft)
	c.submit(ctx)
}

func (c *console) edit(args []string) {
	id, ok := parseID(c.out, args)
	if !ok {
		return
	}
	if !c.engine.BeginEdit(id) {
		fmt.Fprintf(c.out, "no record #%d\n", id)
		return
	}
	d := c.engine.Draft()
	fmt.Fprintf(c.out, "editing #%d: amount=%s category=%s date=%s note=%s\n",
		id, d.Amount, d.Category, d.Date, d.Note)
}

func (c *console) set(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "usage: set <field> <value>")
		return
	}
	value := strings.Join(args[1:], " ")
	d := c.engine.Draft()
	switch args[0] {
	case "amount":
		d.Amount = value
	case "category":
		d.Category = value
	case "note":
		d.Note = value
	case "date":
		d.Date = value
	default:
		fmt.Fprintf(c.out, "unknown field %q\n", args[0])
		return
	}
	c.engine.SetDraft(d)
}

func (c *console) submit(ctx context.Context) {
	ok, err := c.engine.SubmitDraft(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "save failed: %v\n", err)
		return
	}
	if !ok {
		fmt.Fprintln(c.out, "rejected: amount must be a positive number and category non-empty")
		return
	}
	fmt.Fprintln(c.out, "saved")
}

func (c *console) delete(ctx context.Context, args []string) {
	id, ok := parseID(c.out, args)
	if !ok {
		return
	}
	if err := c.engine.DeleteRecord(ctx, id); err != nil {
		fmt.Fprintf(c.out, "delete failed: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "deleted")
}

func (c *console) filter(args []string) {
	if len(args) != 1 || !core.FilterMode(args[0]).Valid() {
		fmt.Fprintln(c.out, "usage: filter <all|week|month>")
		return
	}
	c.engine.SetFilter(core.FilterMode(args[0]))
	c.list()
}

func (c *console) total() {
	s := c.engine.Totals()
	fmt.Fprintf(c.out, "total: %s\n", s.Total.Format())
	for _, ca := range s.ByCategory {
		fmt.Fprintf(c.out, "  %-20s %s\n", ca.Label, ca.Amount.Format())
	}
}

func (c *console) chart() {
	series := c.engine.ChartSeries()
	if len(series) == 0 {
		fmt.Fprintln(c.out, "no data available yet")
		return
	}
	var max int64
	for _, ca := range series {
		if ca.Amount.Cents > max {
			max = ca.Amount.Cents
		}
	}
	for _, ca := range series {
		width := int(ca.Amount.Cents * 40 / max)
		if width == 0 {
			width = 1
		}
		fmt.Fprintf(c.out, "%-20s %s %.2f\n", ca.Label, strings.Repeat("#", width), ca.Amount.Units())
	}
}

func parseID(out *os.File, args []string) (int64, bool) {
	if len(args) != 1 {
		fmt.Fprintln(out, "expected a record id")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(out, "invalid id %q\n", args[0])
		return 0, false
	}
	return id, true
}
