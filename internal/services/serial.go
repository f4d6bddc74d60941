package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cheetahbyte/keyforge/internal/handlers/dto"
	"github.com/cheetahbyte/keyforge/internal/licensecrypto"
	"github.com/cheetahbyte/keyforge/internal/metrics"
	"golang.org/x/sync/errgroup"
	problem "schneider.vip/problem"
)

const (
	serialsInstance = "/api/v1/serials"
	maxQuantity     = 100
)

var errQuantityOutOfRange = errors.New("quantity must be within 1 to 100")

type product struct {
	gen       *licensecrypto.Generator
	lookupKey []byte
}

type SerialService struct {
	products map[string]product
	signer   *TokenSigner
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewSerialService wires one generator per product. signer may be nil, in
// which case issued serials carry no token.
func NewSerialService(generators map[string]*licensecrypto.Generator, lookupMaster []byte, signer *TokenSigner, m *metrics.Metrics, log *slog.Logger) (*SerialService, error) {
	products := make(map[string]product, len(generators))
	for name, gen := range generators {
		key, err := licensecrypto.DeriveLookupKey(lookupMaster, name)
		if err != nil {
			return nil, fmt.Errorf("derive lookup key for %q: %w", name, err)
		}
		products[name] = product{gen: gen, lookupKey: key}
	}
	return &SerialService{
		products: products,
		signer:   signer,
		metrics:  m,
		log:      log,
	}, nil
}

func (svc *SerialService) Issue(ctx context.Context, data dto.SerialIssueRequest) (dto.SerialIssueResponse, error) {
	p, ok := svc.products[data.Product]
	if !ok {
		svc.metrics.SerialFailed("unknown_product")
		return dto.SerialIssueResponse{}, problem.Of(404).
			Append(problem.Title("Product not found")).
			Append(problem.Custom("code", "UNKNOWN_PRODUCT")).
			Append(problem.Instance(serialsInstance))
	}

	var version int
	if data.Version != nil {
		version = *data.Version
	}
	req := licensecrypto.Request{Count: data.Count, Version: version, Addons: data.Addons}
	addons := data.Addons
	if addons == nil {
		addons = licensecrypto.DefaultAddons()
	}

	quantity := data.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 || quantity > maxQuantity {
		return dto.SerialIssueResponse{}, svc.failure(ctx, data.Product, fmt.Errorf("%w: got %d", errQuantityOutOfRange, quantity))
	}
	if err := req.Validate(); err != nil {
		return dto.SerialIssueResponse{}, svc.failure(ctx, data.Product, err)
	}

	out := make([]dto.IssuedSerial, quantity)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range out {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := p.gen.Generate(req)
			if err != nil {
				return err
			}
			issued := dto.IssuedSerial{
				Serial: s.Key,
				Digest: licensecrypto.LookupDigestHex(p.lookupKey, s.Key),
			}
			if svc.signer != nil {
				tok, _, err := svc.signer.Sign(data.Product, version, data.Count, addons, issued.Digest)
				if err != nil {
					return fmt.Errorf("sign issuance token: %w", err)
				}
				issued.Token = tok
			}
			out[i] = issued
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dto.SerialIssueResponse{}, svc.failure(ctx, data.Product, err)
	}

	digests := make([]string, len(out))
	for i, s := range out {
		digests[i] = s.Digest
		svc.metrics.SerialIssued(data.Product, version)
	}
	svc.log.InfoContext(ctx, "issued serials",
		"product", data.Product,
		"version", version,
		"quantity", quantity,
		"digests", digests,
	)

	return dto.SerialIssueResponse{Serials: out}, nil
}

type failureKind struct {
	status int
	title  string
	code   string
	reason string
}

var (
	kindAddonCount   = failureKind{400, "Invalid addon count", "INVALID_ADDON_COUNT", "invalid_addon_count"}
	kindVersionRange = failureKind{400, "Version out of range", "VERSION_OUT_OF_RANGE", "version_out_of_range"}
	kindCountRange   = failureKind{400, "Count out of range", "COUNT_OUT_OF_RANGE", "count_out_of_range"}
	kindQuantity     = failureKind{400, "Quantity out of range", "QUANTITY_OUT_OF_RANGE", "quantity_out_of_range"}
	kindCanceled     = failureKind{503, "Request cancelled", "CANCELLED", "cancelled"}
	kindInternal     = failureKind{500, "Serial generation failed", "GENERATION_FAILED", "internal"}
)

func classify(err error) failureKind {
	switch {
	case errors.Is(err, licensecrypto.ErrInvalidAddonCount):
		return kindAddonCount
	case errors.Is(err, licensecrypto.ErrVersionOutOfRange):
		return kindVersionRange
	case errors.Is(err, licensecrypto.ErrCountOutOfRange):
		return kindCountRange
	case errors.Is(err, errQuantityOutOfRange):
		return kindQuantity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return kindCanceled
	default:
		return kindInternal
	}
}

func (svc *SerialService) failure(ctx context.Context, productName string, err error) error {
	kind := classify(err)
	svc.metrics.SerialFailed(kind.reason)

	p := problem.Of(kind.status).
		Append(problem.Title(kind.title)).
		Append(problem.Custom("code", kind.code)).
		Append(problem.Instance(serialsInstance))
	if kind.status == 400 {
		p = p.Append(problem.Detail(err.Error()))
		svc.log.WarnContext(ctx, "rejected serial request", "product", productName, "err", err)
	} else {
		svc.log.ErrorContext(ctx, "serial generation failed", "product", productName, "err", err)
	}
	return p
}
