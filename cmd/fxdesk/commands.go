package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SscSPs/fxdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/fxdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fxdesk/internal/core/ports/services"
	"github.com/SscSPs/fxdesk/internal/dto"
	"github.com/shopspring/decimal"
)

const usage = `usage: fxdesk <command> [flags]

commands:
  quote       price a single-denomination exchange
  blend       price a bundle of mixed bills at the averaged rate
  payout      plan which bills to hand out from a cash asset
  invalidate  drop the cached rate snapshot of a pair

run "fxdesk <command> -h" for the flags of a command.
`

// usageError marks bad invocations; they exit with status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// app holds what commands run against.
type app struct {
	quote     portssvc.QuoteSvcFacade
	rateCache portsrepo.RateCatalogInvalidator // nil without Redis
}

var errNoRateCache = errors.New("rate cache is not configured (set REDIS_ADDR)")

// invocation is a parsed command line, ready to run against an app.
type invocation struct {
	name     string
	tenantID string
	exec     func(ctx context.Context, a *app) (any, error)
}

// parseInvocation parses args (without the program name).
func parseInvocation(args []string, stderr io.Writer) (*invocation, error) {
	if len(args) == 0 {
		return nil, usagef("missing command")
	}

	switch args[0] {
	case "quote":
		return parseQuote(args[1:], stderr)
	case "blend":
		return parseBlend(args[1:], stderr)
	case "payout":
		return parsePayout(args[1:], stderr)
	case "invalidate":
		return parseInvalidate(args[1:], stderr)
	case "-h", "-help", "--help", "help":
		return nil, flag.ErrHelp
	}
	return nil, usagef("unknown command %q", args[0])
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	tenant := fs.String("tenant", "", "tenant (operator) ID")
	return fs, tenant
}

func parseFlags(fs *flag.FlagSet, args []string, tenant *string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usagef("%v", err)
	}
	if fs.NArg() > 0 {
		return usagef("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if *tenant == "" {
		return usagef("-tenant is required")
	}
	return nil
}

func parseOptionalDecimal(name, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, usagef("invalid -%s %q", name, s)
	}
	return &d, nil
}

func parseQuote(args []string, stderr io.Writer) (*invocation, error) {
	fs, tenant := newFlagSet("quote", stderr)
	from := fs.String("from", "", "currency handed over by the customer")
	to := fs.String("to", "", "currency paid out")
	denom := fs.String("denom", "", "denomination bucket of the from-currency (default: reference bucket)")
	direction := fs.String("direction", "buy", "buy or sell")
	amount := fs.String("amount", "", "amount in the from-currency")
	market := fs.String("market", "", "market rate to compute profit against")
	payoutAsset := fs.String("payout-asset", "", "cash asset to plan the payout from")
	if err := parseFlags(fs, args, tenant); err != nil {
		return nil, err
	}

	amt, err := decimal.NewFromString(*amount)
	if err != nil {
		return nil, usagef("invalid -amount %q", *amount)
	}
	mr, err := parseOptionalDecimal("market", *market)
	if err != nil {
		return nil, err
	}

	req := dto.QuoteRequest{
		FromCurrency:  *from,
		ToCurrency:    *to,
		Denomination:  *denom,
		Direction:     *direction,
		Amount:        amt,
		MarketRate:    mr,
		PayoutAssetID: *payoutAsset,
	}
	return &invocation{
		name:     "quote",
		tenantID: *tenant,
		exec: func(ctx context.Context, a *app) (any, error) {
			q, err := a.quote.QuoteExchange(ctx, *tenant, req)
			if err != nil {
				return nil, err
			}
			return dto.ToQuoteResponse(q), nil
		},
	}, nil
}

func parseBlend(args []string, stderr io.Writer) (*invocation, error) {
	fs, tenant := newFlagSet("blend", stderr)
	from := fs.String("from", "", "currency handed over by the customer")
	to := fs.String("to", "", "currency paid out")
	direction := fs.String("direction", "buy", "buy or sell")
	bills := fs.String("bills", "", "bills handed over as FACE:COUNT pairs, e.g. 500000:3,200000:2")
	market := fs.String("market", "", "market rate to compute profit against")
	payoutAsset := fs.String("payout-asset", "", "cash asset to plan the payout from")
	if err := parseFlags(fs, args, tenant); err != nil {
		return nil, err
	}

	counts, err := parseBills(*bills)
	if err != nil {
		return nil, err
	}
	mr, err := parseOptionalDecimal("market", *market)
	if err != nil {
		return nil, err
	}

	req := dto.BlendedQuoteRequest{
		FromCurrency:  *from,
		ToCurrency:    *to,
		Direction:     *direction,
		Bills:         counts,
		MarketRate:    mr,
		PayoutAssetID: *payoutAsset,
	}
	return &invocation{
		name:     "blend",
		tenantID: *tenant,
		exec: func(ctx context.Context, a *app) (any, error) {
			q, err := a.quote.QuoteBlended(ctx, *tenant, req)
			if err != nil {
				return nil, err
			}
			return dto.ToQuoteResponse(q), nil
		},
	}, nil
}

func parsePayout(args []string, stderr io.Writer) (*invocation, error) {
	fs, tenant := newFlagSet("payout", stderr)
	asset := fs.String("asset", "", "cash asset ID")
	amount := fs.Int64("amount", 0, "amount to pay out, in whole units of the asset currency")
	if err := parseFlags(fs, args, tenant); err != nil {
		return nil, err
	}

	req := dto.PayoutRequest{AssetID: *asset, Amount: *amount}
	return &invocation{
		name:     "payout",
		tenantID: *tenant,
		exec: func(ctx context.Context, a *app) (any, error) {
			p, err := a.quote.PlanPayout(ctx, *tenant, req)
			if err != nil {
				return nil, err
			}
			return dto.ToPayoutPlanResponse(p), nil
		},
	}, nil
}

type invalidateResponse struct {
	TenantID    string `json:"tenantID"`
	Pair        string `json:"pair"`
	Invalidated bool   `json:"invalidated"`
}

func parseInvalidate(args []string, stderr io.Writer) (*invocation, error) {
	fs, tenant := newFlagSet("invalidate", stderr)
	from := fs.String("from", "", "currency handed over by the customer")
	to := fs.String("to", "", "currency paid out")
	if err := parseFlags(fs, args, tenant); err != nil {
		return nil, err
	}

	pair, err := domain.ParsePair(*from + "/" + *to)
	if err != nil {
		return nil, usagef("%v", err)
	}
	return &invocation{
		name:     "invalidate",
		tenantID: *tenant,
		exec: func(ctx context.Context, a *app) (any, error) {
			if a.rateCache == nil {
				return nil, errNoRateCache
			}
			if err := a.rateCache.Invalidate(ctx, *tenant, pair.From, pair.To); err != nil {
				return nil, err
			}
			return invalidateResponse{TenantID: *tenant, Pair: pair.String(), Invalidated: true}, nil
		},
	}, nil
}

// parseBills parses "500000:3,200000:2" into face value counts.
// Each face value may appear once.
func parseBills(s string) (map[int64]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, usagef("-bills is required")
	}
	out := make(map[int64]int64)
	for _, part := range strings.Split(s, ",") {
		faceStr, countStr, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, usagef("invalid bill %q: expected FACE:COUNT", part)
		}
		face, err := strconv.ParseInt(strings.TrimSpace(faceStr), 10, 64)
		if err != nil {
			return nil, usagef("invalid face value %q", faceStr)
		}
		count, err := strconv.ParseInt(strings.TrimSpace(countStr), 10, 64)
		if err != nil {
			return nil, usagef("invalid bill count %q", countStr)
		}
		if _, dup := out[face]; dup {
			return nil, usagef("face value %d listed more than once", face)
		}
		out[face] = count
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
