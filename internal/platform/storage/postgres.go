package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ayakovlev/market-feed-parser/internal/platform"
	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
	"github.com/ayakovlev/market-feed-parser/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	pgmodels "github.com/ayakovlev/market-feed-parser/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// Postgres is storage for shops, runs, offers and parsing diagnostics.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// StartRun creates new unfinished run in database and returns it.
// It returns ErrAlreadyRunning if previous run is not finished yet.
func (p Postgres) StartRun(ctx context.Context, feedURL string, version int64) (*models.Run, error) {
	run := &models.Run{
		OffersVersion: version,
	}

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		shop, err := getShop(ctx, tx, feedURL)
		if err != nil {
			return fmt.Errorf("can't get shop from database: %w", err)
		}

		run.ShopID = int(shop.ID)

		lastRun, err := getLastRun(ctx, tx, int64(shop.ID))

		if err != nil && !errors.Is(err, qrm.ErrNoRows) {
			return fmt.Errorf("can't get last run from database: %w", err)
		}

		if lastRun != nil && lastRun.FinishedAt == nil && lastRun.Success == nil {
			return platform.ErrAlreadyRunning
		}

		newRun := toDBRun(run)
		err = table.Run.INSERT(
			table.Run.OffersVersion,
			table.Run.ShopID,
		).
			MODEL(newRun).
			RETURNING(table.Run.ID).
			QueryContext(ctx, tx, newRun)
		if err != nil {
			return fmt.Errorf("can't insert run into database: %w", err)
		}

		run.ID = int(newRun.ID)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't add run: %w", err)
	}

	return run, nil
}

// FinishRun sets run as finished and updates run's statistics.
func (p Postgres) FinishRun(ctx context.Context, run *models.Run) error {
	columnList := table.Run.AllColumns.Except(table.Run.ID, table.Run.CreatedAt, table.Run.OffersVersion)

	result, err := table.Run.UPDATE(columnList).
		MODEL(toDBRun(run)).
		WHERE(table.Run.ID.EQ(pg.Int32(int32(run.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	return nil
}

// UpdateShop updates shop description fields decoded from the feed.
func (p Postgres) UpdateShop(ctx context.Context, shopID int, catalog *models.Catalog) error {
	if catalog == nil || catalog.Shop == nil {
		return nil
	}

	result, err := table.Shop.UPDATE(table.Shop.Name, table.Shop.Company).
		MODEL(toDBShop(catalog.Shop)).
		WHERE(table.Shop.ID.EQ(pg.Int32(int32(shopID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update shop: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update shop: %w", err)
	}

	return nil
}

// UpsertOffers upserts offers and their params.
// It returns number of new offers and number of updated offers or error.
func (p Postgres) UpsertOffers(ctx context.Context, offers []models.Offer, shopID int) (int32, int32, error) {
	createdOffersNumber := lo.ToPtr(int32(0))
	updatedOffersNumber := lo.ToPtr(int32(0))

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		offerIDs := lo.Map(offers, func(_ models.Offer, ix int) string {
			return offers[ix].OfferID
		})
		storedVersions, err := getOffersVersions(ctx, tx, int64(shopID), offerIDs)
		if err != nil {
			return fmt.Errorf("can't get existing offers: %w", err)
		}

		newOffers, updatedOffers := compareOffers(offers, storedVersions)

		if newOffers, err = upsertOffers(ctx, tx, newOffers, int32(shopID)); err != nil {
			return fmt.Errorf("can't insert new offers: %w", err)
		}

		if updatedOffers, err = upsertOffers(ctx, tx, updatedOffers, int32(shopID)); err != nil {
			return fmt.Errorf("can't update existing offers: %w", err)
		}

		if err = insertParams(ctx, tx, newOffers); err != nil {
			return fmt.Errorf("can't create new offers params: %w", err)
		}

		if err = insertParams(ctx, tx, updatedOffers); err != nil {
			return fmt.Errorf("can't update offers params: %w", err)
		}

		*createdOffersNumber = int32(len(newOffers))
		*updatedOffersNumber = int32(len(updatedOffers))

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return *createdOffersNumber, *updatedOffersNumber, nil
}

// DeleteOldOffers updates DeletedAt field of shop offers with version lower than provided.
// Returns number of deleted offers or error.
func (p Postgres) DeleteOldOffers(ctx context.Context, shopID int, version int64, batchSize uint) (int32, error) {
	deletedOffersNumber := int32(0)

	toDelete := make(chan []int32)

	errGroup, egCtx := errgroup.WithContext(ctx)

	errGroup.Go(func() error {
		return getOutdatedOffersAsync(egCtx, p.db, int32(shopID), version, batchSize, toDelete)
	})

	errGroup.Go(func() error {
		deletedCount, err := deleteOffersAsync(egCtx, p.db, toDelete)
		if err == nil {
			atomic.AddInt32(&deletedOffersNumber, int32(deletedCount))
		}
		return err
	})

	if err := errGroup.Wait(); err != nil {
		return 0, err
	}

	return deletedOffersNumber, nil
}

// SaveParseErrors stores diagnostics collected while parsing the run's feed.
func (p Postgres) SaveParseErrors(ctx context.Context, runID int, parseErrors []models.ParseError) error {
	if len(parseErrors) == 0 {
		return nil
	}

	dbErrors := make([]pgmodels.ParseError, 0, len(parseErrors))
	for ix := range parseErrors {
		dbErrors = append(dbErrors, *toDBParseError(&parseErrors[ix], int32(runID)))
	}

	_, err := table.ParseError.INSERT(table.ParseError.AllColumns.Except(table.ParseError.ID)).
		MODELS(dbErrors).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't insert parse errors into database: %w", err)
	}

	return nil
}

func compareOffers(parsed []models.Offer, storedVersions map[string]int64) ([]models.Offer, []models.Offer) {
	newOffers := make([]models.Offer, 0, len(parsed))
	updatedOffers := lo.Filter(parsed, func(_ models.Offer, ix int) bool {
		if version, ok := storedVersions[parsed[ix].OfferID]; ok {
			return parsed[ix].Version > version
		}
		newOffers = append(newOffers, parsed[ix])
		return false
	})

	return newOffers, updatedOffers
}

func upsertOffers(ctx context.Context, db qrm.DB, offers []models.Offer, shopID int32) ([]models.Offer, error) {
	if len(offers) == 0 {
		return nil, nil
	}

	columnList := table.Offer.AllColumns.Except(table.Offer.ID, table.Offer.CreatedAt)

	dbOffers := make([]pgmodels.Offer, 0, len(offers))
	for ix := range offers {
		dbOffers = append(dbOffers, *ToDBOffer(&offers[ix], int64(shopID), nil))
	}

	excludedExpressions := make([]pg.Expression, 0, len(columnList)) // converting to expression
	for _, col := range table.Offer.EXCLUDED.AllColumns.Except(table.Offer.ID, table.Offer.CreatedAt) {
		excludedExpressions = append(excludedExpressions, col)
	}

	_, err := table.Offer.INSERT(columnList).
		MODELS(dbOffers).
		ON_CONFLICT(table.Offer.ShopID, table.Offer.OfferID).
		DO_UPDATE(
			pg.SET(
				columnList.SET(pg.ROW(excludedExpressions...)),
			),
		).
		ExecContext(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("can't upsert offers into database: %w", err)
	}

	ids := make([]pg.Expression, 0, len(offers))
	upsertedIDs := make([]pgmodels.Offer, 0, len(offers))
	for ix := range offers {
		ids = append(ids, pg.String(offers[ix].OfferID))
	}
	err = table.Offer.SELECT(table.Offer.ID, table.Offer.OfferID).
		WHERE(pg.AND(
			table.Offer.ShopID.EQ(pg.Int32(shopID)),
			table.Offer.OfferID.IN(ids...),
		)).
		QueryContext(ctx, db, &upsertedIDs)
	if err != nil {
		return nil, fmt.Errorf("can't get upserted offers ids: %w", err)
	}

	upsertedOffers := make([]models.Offer, 0, len(offers))
	lo.ForEach(offers, func(_ models.Offer, i int) {
		for ix := range upsertedIDs {
			if upsertedIDs[ix].OfferID == offers[i].OfferID {
				upsertedOffers = append(upsertedOffers, offers[i])
				upsertedOffers[len(upsertedOffers)-1].ID = int(upsertedIDs[ix].ID)
				return
			}
		}
	})

	return upsertedOffers, nil
}

// insertParams replaces params of every upserted offer, an offer updated to
// a version without params loses its old ones.
func insertParams(ctx context.Context, db qrm.DB, offers []models.Offer) error {
	if len(offers) == 0 {
		return nil
	}

	params := []pgmodels.OfferParam{}
	for ix := range offers {
		params = append(params, ToDBParams(int32(offers[ix].ID), offers[ix].Params)...)
	}

	ids := make([]pg.Expression, 0, len(offers))
	for ix := range offers {
		ids = append(ids, pg.Int32(int32(offers[ix].ID)))
	}

	_, err := table.OfferParam.DELETE().
		WHERE(table.OfferParam.OfferID.IN(ids...)).
		ExecContext(ctx, db)
	if err != nil {
		return fmt.Errorf("can't delete outdated offers params from database: %w", err)
	}

	if len(params) == 0 {
		return nil
	}

	_, err = table.OfferParam.INSERT(table.OfferParam.AllColumns.Except(table.OfferParam.ID)).
		MODELS(params).
		ExecContext(ctx, db)
	if err != nil {
		return fmt.Errorf("can't insert offers params into database: %w", err)
	}

	return nil
}

func getShop(ctx context.Context, db qrm.DB, url string) (*pgmodels.Shop, error) {
	var shop pgmodels.Shop
	err := table.Shop.SELECT(table.Shop.AllColumns).
		WHERE(table.Shop.URL.EQ(pg.String(url))).
		QueryContext(ctx, db, &shop)

	if errors.Is(err, qrm.ErrNoRows) {
		return insertShop(ctx, db, url)
	}

	if err != nil {
		return nil, err
	}

	return &shop, nil
}

func insertShop(ctx context.Context, db qrm.DB, url string) (*pgmodels.Shop, error) {
	var shop pgmodels.Shop
	_, err := table.Shop.INSERT(table.Shop.URL).
		MODEL(pgmodels.Shop{
			URL: url,
		}).
		ExecContext(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("can't add shop: %w", err)
	}

	err = table.Shop.SELECT(table.Shop.AllColumns).
		WHERE(table.Shop.URL.EQ(pg.String(url))).
		QueryContext(ctx, db, &shop)
	if err != nil {
		return nil, fmt.Errorf("can't get added shop: %w", err)
	}

	return &shop, nil
}

func getLastRun(ctx context.Context, db qrm.DB, shopID int64) (*pgmodels.Run, error) {
	var run pgmodels.Run
	err := table.Run.SELECT(
		table.Run.CreatedAt,
		table.Run.FinishedAt,
		table.Run.Success,
		table.Run.StatusMessage,
		table.Run.FailedOffers,
	).
		WHERE(table.Run.ShopID.EQ(pg.Int(shopID))).
		ORDER_BY(table.Run.CreatedAt.DESC()).
		LIMIT(1).
		QueryContext(ctx, db, &run)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func getOutdatedOffersAsync(
	ctx context.Context,
	db qrm.DB,
	shopID int32,
	version int64,
	batchSize uint,
	toDelete chan []int32,
) error {
	defer close(toDelete)
	previousID := int32(0)
	for {
		var offers []pgmodels.Offer
		err := table.Offer.SELECT(table.Offer.ID, table.Offer.Version).
			WHERE(pg.AND(
				table.Offer.ShopID.EQ(pg.Int32(shopID)),
				table.Offer.Version.LT(pg.Int64(version)),
				table.Offer.DeletedAt.IS_NULL(),
				table.Offer.ID.GT(pg.Int64(int64(previousID))),
			)).
			ORDER_BY(table.Offer.ID.ASC()).
			LIMIT(int64(batchSize)).
			QueryContext(ctx, db, &offers)

		if errors.Is(err, qrm.ErrNoRows) || len(offers) == 0 {
			return nil
		}

		if err != nil && !errors.Is(err, qrm.ErrNoRows) {
			return err
		}

		ids := make([]int32, 0, len(offers))
		for ix := range offers {
			ids = append(ids, offers[ix].ID)
		}

		previousID = offers[len(offers)-1].ID

		select {
		case <-ctx.Done():
			return ctx.Err()
		case toDelete <- ids:
		}
	}
}

func deleteOffersAsync(ctx context.Context, db qrm.DB, toDelete chan []int32) (int, error) {
	deletedCount := 0
	now := time.Now()
	for batch := range toDelete {
		ids := make([]pg.Expression, 0, len(batch))
		for _, id := range batch {
			ids = append(ids, pg.Int32(id))
		}

		_, err := table.Offer.UPDATE().
			SET(
				table.Offer.DeletedAt.SET(pg.TimestampzT(now)),
			).
			WHERE(table.Offer.ID.IN(ids...)).
			ExecContext(ctx, db)
		if err != nil {
			return deletedCount, err
		}
		deletedCount += len(batch)
	}
	return deletedCount, nil
}

func getOffersVersions(ctx context.Context, db qrm.DB, shopID int64, offerIDs []string) (map[string]int64, error) {
	ids := make([]pg.Expression, 0, len(offerIDs))
	for ix := range offerIDs {
		ids = append(ids, pg.String(offerIDs[ix]))
	}

	offers := make([]pgmodels.Offer, 0, len(offerIDs))
	err := table.Offer.SELECT(table.Offer.OfferID, table.Offer.Version).
		WHERE(pg.AND(
			table.Offer.ShopID.EQ(pg.Int32(int32(shopID))),
			table.Offer.OfferID.IN(ids...),
		)).
		QueryContext(ctx, db, &offers)
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(offers))
	for ix := range offers {
		result[offers[ix].OfferID] = offers[ix].Version
	}

	return result, nil
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
