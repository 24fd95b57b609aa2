package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/renderer"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
)

var commands = []subcommands.Command{
	&reportCmd{},
	&holdingsCmd{},
	&sectorsCmd{},
	&moversCmd{},
	&chartCmd{},
	&quoteCmd{},
}

type reportCmd struct {
	plain bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the full portfolio report" }
func (*reportCmd) Usage() string {
	return `folio report [-plain]

  Fetches current prices and fundamentals, then prints holdings, totals,
  sector allocation and top movers.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx, true)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	snap, err := s.portfolio.GetPortfolio()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	md, err := s.renderer.Report(snap)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	printMarkdown(md, c.plain)
	return subcommands.ExitSuccess
}

type holdingsCmd struct {
	search string
	plain  bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list valued holdings" }
func (*holdingsCmd) Usage() string {
	return `folio holdings [-search <text>] [-plain]

  Lists each holding with its current price, gain and fundamentals.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "search", "", "only show symbols containing this text")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx, true)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	holdings, err := s.portfolio.GetHoldings(c.search)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	md, err := s.renderer.Holdings(holdings)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	printMarkdown(md, c.plain)
	return subcommands.ExitSuccess
}

type sectorsCmd struct {
	plain bool
}

func (*sectorsCmd) Name() string     { return "sectors" }
func (*sectorsCmd) Synopsis() string { return "summarize holdings by sector" }
func (*sectorsCmd) Usage() string {
	return `folio sectors [-plain]
`
}

func (c *sectorsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown")
}

func (c *sectorsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx, true)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	sectors, err := s.portfolio.GetSectors()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	md, err := s.renderer.Sectors(sectors)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	printMarkdown(md, c.plain)
	return subcommands.ExitSuccess
}

type moversCmd struct {
	count int
	plain bool
}

func (*moversCmd) Name() string     { return "movers" }
func (*moversCmd) Synopsis() string { return "show the top gainers and losers" }
func (*moversCmd) Usage() string {
	return `folio movers [-n <count>] [-plain]

  Ranks holdings with a known price by gain or loss. The count defaults to
  TOP_MOVERS_COUNT.
`
}

func (c *moversCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.count, "n", 0, "number of gainers and losers")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown")
}

func (c *moversCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.count < 0 {
		fail(fmt.Errorf("-n: %w", apperrors.ErrInvalidMoverCount))
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx, true)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	count := c.count
	if count == 0 {
		count = s.moverCount
	}
	movers, err := s.portfolio.GetMovers(count)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	md, err := s.renderer.Movers(movers)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	printMarkdown(md, c.plain)
	return subcommands.ExitSuccess
}

type chartCmd struct {
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "write the sector allocation pie chart" }
func (*chartCmd) Usage() string {
	return `folio chart -o <file.png>
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "sectors.png", "output PNG file")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx, true)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	sectors, err := s.portfolio.GetSectors()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	png, err := renderer.RenderSectorChart(sectors)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.output, png, 0o644); err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Wrote %s\n", c.output)
	return subcommands.ExitSuccess
}

type quoteCmd struct{}

type quoteOutput struct {
	Symbol       string              `json:"symbol"`
	CMP          decimal.NullDecimal `json:"cmp"`
	Fundamentals model.Fundamentals  `json:"fundamentals"`
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "look up price and fundamentals for symbols" }
func (*quoteCmd) Usage() string {
	return `folio quote <symbol>...

  Prints the current price and fundamentals of each symbol as JSON,
  without touching the holdings.
`
}

func (*quoteCmd) SetFlags(*flag.FlagSet) {}

func (*quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fail(fmt.Errorf("at least one symbol is required"))
		return subcommands.ExitUsageError
	}
	for _, sym := range f.Args() {
		if err := validation.ValidateSymbol(sym); err != nil {
			fail(fmt.Errorf("%s: %w", sym, err))
			return subcommands.ExitUsageError
		}
	}

	s, err := openSession(ctx, false)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	for _, sym := range f.Args() {
		q := s.market.GetQuote(ctx, sym)
		fund := s.market.GetFundamentals(ctx, sym)
		if err := enc.Encode(quoteOutput{Symbol: sym, CMP: q.CMP, Fundamentals: fund}); err != nil {
			fail(err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
