package parser

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Fetcher --filename fetcher.go
//go:generate mockery --name Decoder --filename decoder.go
//go:generate mockery --name Storage --filename storage.go

// Fetcher fetches feed file.
type Fetcher interface {
	FetchFile(context.Context, string) (io.ReadCloser, error)
}

// Decoder decodes xml feed file into offers and a summary of the feed.
type Decoder interface {
	Decode(context.Context, io.Reader, chan<- models.Offer) (*models.ParseSummary, error)
}

// Clock provides times.
type Clock interface {
	// Timestamp returns UTC unix timestamp.
	Timestamp() int64
	// Now returns current UTC time.
	Now() *time.Time
}

// Storage is offers and runs storage.
type Storage interface {
	// StartRun creates new run if there is no run for provided shop running.
	StartRun(ctx context.Context, feedURL string, version int64) (run *models.Run, err error)
	// FinishRun finishes provided run and updates its statistics.
	FinishRun(ctx context.Context, run *models.Run) error
	// UpdateShop updates shop metadata decoded from the feed header.
	UpdateShop(ctx context.Context, shopID int, catalog *models.Catalog) error
	// UpsertOffers creates new offers and updates existing offers and their params.
	// Returns number of created and updated offers.
	UpsertOffers(
		ctx context.Context,
		offers []models.Offer,
		shopID int,
	) (newOffers int32, updatedOffers int32, err error)
	// DeleteOldOffers deletes from storage all not-deleted offers with version lower than provided for provided shop.
	// Returns number of deleted offers.
	DeleteOldOffers(
		ctx context.Context,
		shopID int,
		version int64,
		batchSize uint,
	) (deletedOffers int32, err error)
	// SaveParseErrors stores diagnostics recorded while decoding the run's feed file.
	SaveParseErrors(ctx context.Context, runID int, parseErrors []models.ParseError) error
}

// Option is custom configuration of Parser.
type Option func(p *Parser)

// Parser fetches, decodes and stores feed files.
type Parser struct {
	fetcher         Fetcher
	decoder         Decoder
	storage         Storage
	batchSize       uint
	deleteBatchSize uint
	clock           Clock
}

// NewParser returns new Parser.
func NewParser(fetcher Fetcher, decoder Decoder, storage Storage, batchSize uint, ops ...Option) *Parser {
	par := &Parser{
		fetcher:         fetcher,
		decoder:         decoder,
		storage:         storage,
		batchSize:       batchSize,
		deleteBatchSize: batchSize,
		clock:           wallClock{},
	}

	for _, op := range ops {
		op(par)
	}

	return par
}

// Parse parses feed file from feedURL.
func (p Parser) Parse(ctx context.Context, feedURL string) error {
	version := p.clock.Timestamp()

	// insert new run in storage.
	run, err := p.storage.StartRun(ctx, feedURL, version)
	if err != nil {
		return fmt.Errorf("can't start parsing: %w", err)
	}

	// fetch feed file.
	xmlFile, err := p.fetcher.FetchFile(ctx, feedURL)
	if err != nil {
		return p.finishParsing(ctx, run, fmt.Errorf("can't fetch feed file: %w", err))
	}
	defer xmlFile.Close()

	// parse offers.
	summary, createdOffers, updatedOffers, failedOffers, err := p.parseOffers(ctx, version, run.ShopID, xmlFile)

	run.CreatedOffers = &createdOffers
	run.UpdatedOffers = &updatedOffers
	run.FailedOffers = &failedOffers

	// store decoded shop and diagnostics even when the pipeline failed,
	// partial results are never discarded.
	if err = p.saveSummary(ctx, run, summary, err); err != nil {
		return p.finishParsing(ctx, run, err)
	}

	// delete outdated offers.
	deletedOffers, err := p.storage.DeleteOldOffers(ctx, run.ShopID, version, p.deleteBatchSize)
	run.DeletedOffers = &deletedOffers

	if err != nil {
		return p.finishParsing(ctx, run, fmt.Errorf("can't delete outdated offers: %w", err))
	}

	return p.finishParsing(ctx, run, nil)
}

func (p Parser) parseOffers(
	ctx context.Context,
	version int64,
	shopID int,
	xmlFile io.ReadCloser,
) (*models.ParseSummary, int32, int32, int32, error) {
	decodedOffers := make(chan models.Offer)
	offerBatches := make(chan []models.Offer)
	failedOffers := int32(0)
	createdOffers := int32(0)
	updatedOffers := int32(0)

	var summary *models.ParseSummary

	errGroup, egCtx := errgroup.WithContext(ctx)

	// decode feed file.
	errGroup.Go(func() error {
		defer close(decodedOffers)
		var err error
		if summary, err = p.decoder.Decode(egCtx, xmlFile, decodedOffers); err != nil {
			return fmt.Errorf("can't decode feed file: %w", err)
		}
		return nil
	})

	// batch decoded offers.
	errGroup.Go(func() error {
		defer close(offerBatches)

		failed, err := p.batchOffers(egCtx, version, decodedOffers, offerBatches)
		if err != nil {
			return fmt.Errorf("can't batch offers: %w", err)
		}
		_ = atomic.AddInt32(&failedOffers, failed)

		return nil
	})

	// upsert offers.
	errGroup.Go(func() error {
		created, updated, err := p.upsertOffers(egCtx, shopID, offerBatches)
		_ = atomic.AddInt32(&createdOffers, created)
		_ = atomic.AddInt32(&updatedOffers, updated)

		if err != nil {
			return fmt.Errorf("can't upsert offers: %w", err)
		}

		return nil
	})

	err := errGroup.Wait()

	return summary, createdOffers, updatedOffers, failedOffers, err
}

// batchOffers drops offers without id, stamps the rest with version and
// groups them into batches of batchSize. Returns number of dropped offers.
func (p Parser) batchOffers(
	ctx context.Context,
	version int64,
	input <-chan models.Offer,
	output chan []models.Offer,
) (int32, error) {
	failedOffers := int32(0)
	batch := make([]models.Offer, 0, p.batchSize)

	for offer := range input {
		if offer.OfferID == "" {
			failedOffers++
			continue
		}

		offer.Version = version
		batch = append(batch, offer)
		if len(batch) == int(p.batchSize) {
			select {
			case <-ctx.Done():
				return failedOffers, ctx.Err()
			case output <- batch:
			}
			batch = make([]models.Offer, 0, p.batchSize)
		}
	}

	if len(batch) > 0 {
		select {
		case <-ctx.Done():
			return failedOffers, ctx.Err()
		case output <- batch:
		}
	}

	return failedOffers, nil
}

func (p Parser) upsertOffers(
	ctx context.Context,
	shopID int,
	input chan []models.Offer,
) (int32, int32, error) {
	createdOffers := int32(0)
	updatedOffers := int32(0)

	for batch := range input {
		created, updated, err := p.storage.UpsertOffers(ctx, batch, shopID)
		if err != nil {
			return createdOffers, updatedOffers, err
		}
		createdOffers += created
		updatedOffers += updated
	}

	return createdOffers, updatedOffers, nil
}

// saveSummary stores shop metadata and parse diagnostics from summary and
// stamps the run with the diagnostics count. Keeps the first error: status
// when it is set, otherwise the first storing failure.
func (p Parser) saveSummary(ctx context.Context, run *models.Run, summary *models.ParseSummary, status error) error {
	if summary == nil {
		return status
	}

	run.ParseErrors = lo.ToPtr(int32(len(summary.Errors) + summary.DroppedErrors))

	if summary.Catalog != nil && summary.Catalog.Shop != nil {
		if err := p.storage.UpdateShop(ctx, run.ShopID, summary.Catalog); err != nil && status == nil {
			status = fmt.Errorf("can't update shop: %w", err)
		}
	}

	if len(summary.Errors) > 0 {
		if err := p.storage.SaveParseErrors(ctx, run.ID, summary.Errors); err != nil && status == nil {
			status = fmt.Errorf("can't save parse errors: %w", err)
		}
	}

	return status
}

func (p Parser) finishParsing(ctx context.Context, run *models.Run, status error) error {
	if status != nil {
		run.StatusMessage = lo.ToPtr(status.Error())
	}
	run.IsSuccess = lo.ToPtr(status == nil)
	run.FinishedAt = p.clock.Now()

	err := p.storage.FinishRun(ctx, run)
	if err != nil && status == nil {
		return fmt.Errorf("can't finish parsing: %w", err)
	}

	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed parsing: %w (fail reason: %w)", err, status)
	}

	return status
}

// WithClock sets Parser's custom Clock.
func WithClock(c Clock) Option {
	return func(p *Parser) {
		p.clock = c
	}
}

// WithDeleteBatchSize sets the batch size used when deleting outdated
// offers. Defaults to the upsert batch size.
func WithDeleteBatchSize(size uint) Option {
	return func(p *Parser) {
		p.deleteBatchSize = size
	}
}
