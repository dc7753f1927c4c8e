package storagetesting

import (
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
	pgmodels "github.com/ayakovlev/market-feed-parser/internal/platform/storage/gen/postgres/public/model"
	"github.com/ayakovlev/market-feed-parser/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// BeginTx begins DB transaction. Returns function to roll it back.
func BeginTx(t *testing.T, db *sql.DB) (*sql.Tx, func()) {
	t.Helper()

	tx, err := db.Begin()
	if err != nil {
		t.Fatal("begin transaction", err)
	}

	rollback := func() {
		if err := tx.Rollback(); err != nil {
			t.Fatal("can't rollback transaction", err)
		}
	}

	return tx, rollback
}

// InsertShops is a helper test function to insert shops.
func InsertShops(t *testing.T, exc qrm.Executable, shops ...pgmodels.Shop) {
	t.Helper()

	if len(shops) == 0 {
		return
	}

	toInsert := make([]pgmodels.Shop, 0, len(shops))
	toInsert = append(toInsert, shops...)

	_, err := table.Shop.INSERT(table.Shop.AllColumns).MODELS(toInsert).Exec(exc)
	if err != nil {
		t.Fatal("can't insert shops", err)
	}
}

// InsertRuns is a helper test function to insert runs.
func InsertRuns(t *testing.T, exc qrm.Executable, runs ...pgmodels.Run) {
	t.Helper()

	if len(runs) == 0 {
		return
	}

	toInsert := make([]pgmodels.Run, 0, len(runs))
	toInsert = append(toInsert, runs...)

	_, err := table.Run.INSERT(table.Run.AllColumns).MODELS(toInsert).Exec(exc)
	if err != nil {
		t.Fatal("can't insert runs", err)
	}
}

// InsertOffers is a helper test function to insert offers.
func InsertOffers(t *testing.T, exc qrm.Executable, offers ...pgmodels.Offer) {
	t.Helper()

	if len(offers) == 0 {
		return
	}

	toInsert := make([]pgmodels.Offer, 0, len(offers))
	toInsert = append(toInsert, offers...)

	_, err := table.Offer.INSERT(table.Offer.AllColumns.Except(table.Offer.ID)).MODELS(toInsert).Exec(exc)
	if err != nil {
		t.Fatal("can't insert offers", err)
	}
}

// InsertParams is a helper test function to insert offers params.
func InsertParams(t *testing.T, exc qrm.Executable, params ...pgmodels.OfferParam) {
	t.Helper()

	if len(params) == 0 {
		return
	}

	toInsert := make([]pgmodels.OfferParam, 0, len(params))
	toInsert = append(toInsert, params...)

	_, err := table.OfferParam.INSERT(table.OfferParam.AllColumns.Except(table.OfferParam.ID)).MODELS(toInsert).Exec(exc)
	if err != nil {
		t.Fatal("can't insert offers params", err)
	}
}

// GetShops is a helper test function to get all shops.
func GetShops(t *testing.T, queryable qrm.Queryable) []pgmodels.Shop {
	t.Helper()

	shops := []pgmodels.Shop{}
	err := table.Shop.SELECT(table.Shop.AllColumns).
		WHERE(table.Shop.ID.IS_NOT_NULL()).
		Query(queryable, &shops)
	if err != nil {
		t.Fatal("can't get shops", err)
	}

	return shops
}

// GetRuns is a helper test function to get all runs.
func GetRuns(t *testing.T, queryable qrm.Queryable) []pgmodels.Run {
	t.Helper()

	runs := []pgmodels.Run{}
	err := table.Run.SELECT(table.Run.AllColumns).
		WHERE(table.Run.ID.IS_NOT_NULL()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get runs", err)
	}

	return runs
}

// GetOffers is a helper test function to get all offers.
func GetOffers(t *testing.T, queryable qrm.Queryable) []pgmodels.Offer {
	t.Helper()

	offers := []pgmodels.Offer{}
	err := table.Offer.SELECT(table.Offer.AllColumns).
		WHERE(table.Offer.ID.IS_NOT_NULL()).
		Query(queryable, &offers)
	if err != nil {
		t.Fatal("can't get offers", err)
	}

	return offers
}

// GetParseErrors is a helper test function to get all parse errors.
func GetParseErrors(t *testing.T, queryable qrm.Queryable) []pgmodels.ParseError {
	t.Helper()

	parseErrors := []pgmodels.ParseError{}
	err := table.ParseError.SELECT(table.ParseError.AllColumns).
		WHERE(table.ParseError.ID.IS_NOT_NULL()).
		Query(queryable, &parseErrors)
	if err != nil {
		t.Fatal("can't get parse errors", err)
	}

	return parseErrors
}

// GetShopID is a helper test function to get shop ID by feed URL.
func GetShopID(t *testing.T, queryable qrm.Queryable, feedURL string) int {
	t.Helper()

	var shop pgmodels.Shop
	err := table.Shop.SELECT(table.Shop.ID).
		WHERE(table.Shop.URL.EQ(pg.String(feedURL))).
		Query(queryable, &shop)

	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		t.Fatal("can't get shop ID", err)
	}

	return int(shop.ID)
}

// GetLatestRun is a helper test function to get latest run by shop ID.
func GetLatestRun(t *testing.T, queryable qrm.Queryable, shopID int) *models.Run {
	t.Helper()

	var runs []pgmodels.Run
	err := table.Run.SELECT(table.Run.AllColumns).
		WHERE(table.Run.ShopID.EQ(pg.Int32(int32(shopID)))).
		ORDER_BY(table.Run.CreatedAt.DESC()).
		LIMIT(1).
		Query(queryable, &runs)

	if err != nil || len(runs) == 0 {
		t.Fatal("can't get latest run", err)
	}

	return &models.Run{
		ID:            int(runs[0].ID),
		ShopID:        int(runs[0].ShopID),
		CreatedAt:     runs[0].CreatedAt,
		FinishedAt:    runs[0].FinishedAt,
		IsSuccess:     runs[0].Success,
		StatusMessage: runs[0].StatusMessage,
		CreatedOffers: runs[0].CreatedOffers,
		UpdatedOffers: runs[0].UpdatedOffers,
		DeletedOffers: runs[0].DeletedOffers,
		FailedOffers:  runs[0].FailedOffers,
		ParseErrors:   runs[0].ParseErrors,
		OffersVersion: runs[0].OffersVersion,
	}
}

// GetOffersByShopID is a helper test function to get offers by shop ID.
func GetOffersByShopID(t *testing.T, queryable qrm.Queryable, shopID int) []pgmodels.Offer {
	t.Helper()

	offers := []pgmodels.Offer{}
	err := table.Offer.SELECT(table.Offer.AllColumns).
		WHERE(pg.AND(
			table.Offer.ID.IS_NOT_NULL(),
			table.Offer.ShopID.EQ(pg.Int32(int32(shopID))),
		)).
		Query(queryable, &offers)
	if err != nil {
		t.Fatal("can't get offers", err)
	}

	return offers
}

// GetParamsByOfferID is a helper test function to get params by offer ID.
func GetParamsByOfferID(t *testing.T, queryable qrm.Queryable, offerID int) []pgmodels.OfferParam {
	t.Helper()

	params := []pgmodels.OfferParam{}
	err := table.OfferParam.SELECT(table.OfferParam.AllColumns).
		WHERE(pg.AND(
			table.OfferParam.ID.IS_NOT_NULL(),
			table.OfferParam.OfferID.EQ(pg.Int32(int32(offerID))),
		)).
		ORDER_BY(table.OfferParam.ID.ASC()).
		Query(queryable, &params)
	if err != nil {
		t.Fatal("can't get offers params", err)
	}

	return params
}

// CleanupData is a helper test function to remove all data from all tables.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.ParseError.DELETE().WHERE(table.ParseError.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete parse errors data", err)
	}

	_, err = table.OfferParam.DELETE().WHERE(table.OfferParam.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete offers params data", err)
	}

	_, err = table.Offer.DELETE().WHERE(table.Offer.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete offers data", err)
	}

	_, err = table.Run.DELETE().WHERE(table.Run.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete runs data", err)
	}

	_, err = table.Shop.DELETE().WHERE(table.Shop.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete shops data", err)
	}
}
