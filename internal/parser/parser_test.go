package parser_test

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/ayakovlev/market-feed-parser/internal/parser"
	"github.com/ayakovlev/market-feed-parser/internal/parser/mocks"
	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
	"github.com/ayakovlev/market-feed-parser/internal/platform/models/modelstesting"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reusable test data
var (
	batchSize = uint(2) // will affect tests results when changed
	feedURL   = faker.Word()
	version   = rand.Int63()
	loc       = func() *time.Location {
		loc, err := time.LoadLocation("Etc/UTC")
		if err != nil {
			panic(err)
		}
		return loc
	}()
	createdAt = time.Date(2020, time.April, 1, 1, 1, 1, 0, loc)
	now       = time.Date(2022, time.April, 1, 1, 1, 1, 0, loc)
	offers    = []models.Offer{ // will affect tests results when changed
		modelstesting.FakeOffer(func(o *models.Offer) { o.Version = version }),
		modelstesting.FakeOffer(func(o *models.Offer) { o.Version = version }),
		modelstesting.FakeOffer(func(o *models.Offer) { o.OfferID = "" }),
		modelstesting.FakeOffer(func(o *models.Offer) { o.Version = version }),
		modelstesting.FakeOffer(func(o *models.Offer) { o.Version = version }),
		modelstesting.FakeOffer(func(o *models.Offer) { o.OfferID = "" }),
		modelstesting.FakeOffer(func(o *models.Offer) { o.Version = version }),
		modelstesting.FakeOffer(func(o *models.Offer) { o.Version = version }),
		modelstesting.FakeOffer(func(o *models.Offer) { o.Version = version }),
	}
	summary = &models.ParseSummary{
		Catalog: &models.Catalog{
			Date: "2024-03-01 12:00",
			Shop: lo.ToPtr(modelstesting.FakeShop()),
		},
		OfferCount: len(offers),
		Errors: []models.ParseError{
			modelstesting.FakeParseError(),
			modelstesting.FakeParseError(),
		},
		DroppedErrors: 1,
	}
	wantParseErrors                = int32(3) // len(summary.Errors) + summary.DroppedErrors
	runID                          = rand.Int()
	shopID                         = rand.Int()
	errShouldContainAssertErrorMsg = "should return error containing assert.AnError"
)

func TestUnitParse(t *testing.T) {
	run := &models.Run{
		ID:            runID,
		ShopID:        shopID,
		CreatedAt:     createdAt,
		OffersVersion: version,
	}

	// offers with id in batches of 2
	toUpsert := [][]models.Offer{
		{offers[0], offers[1]},
		{offers[3], offers[4]},
		{offers[6], offers[7]},
		{offers[8]},
	}

	wantNewOffers := 4
	wantUpdatedOffers := 3
	wantDeletedOffers := rand.Int31()
	wantFailedOffers := 2
	wantRun := &models.Run{
		ID:            runID,
		ShopID:        shopID,
		CreatedAt:     createdAt,
		FinishedAt:    &now,
		IsSuccess:     lo.ToPtr(true),
		CreatedOffers: lo.ToPtr(int32(wantNewOffers)),
		UpdatedOffers: lo.ToPtr(int32(wantUpdatedOffers)),
		DeletedOffers: lo.ToPtr(wantDeletedOffers),
		FailedOffers:  lo.ToPtr(int32(wantFailedOffers)),
		ParseErrors:   lo.ToPtr(wantParseErrors),
		OffersVersion: version,
	}

	fetcher := mocks.NewFetcher(t)
	decoder := mocks.NewDecoder(t)
	storage := mocks.NewStorage(t)

	mockStorageStartRun(storage, feedURL, run, nil)
	mockFetcher(fetcher, feedURL, nil)
	mockDecoder(decoder, offers, summary, nil)
	for ix := range toUpsert {
		// first offer is always new, second (if exists) is updated
		mockStorageUpsertOffers(storage, toUpsert[ix], run.ShopID, 1, int32(len(toUpsert[ix])-1), nil)
	}
	mockStorageUpdateShop(storage, run.ShopID, summary.Catalog, nil)
	mockStorageSaveParseErrors(storage, run.ID, summary.Errors, nil)
	mockStorageDeleteOldOffers(storage, run.ShopID, version, batchSize, wantDeletedOffers, nil)
	mockStorageFinishRun(storage, wantRun, nil)

	par := parser.NewParser(
		fetcher,
		decoder,
		storage,
		batchSize,
		parser.WithClock(fakeClock{timestamp: version, now: &now}),
	)

	err := par.Parse(context.TODO(), feedURL)

	require.NoError(t, err, "shouldn't return any error")
}

func TestUnitParseStorageError(t *testing.T) {
	t.Run("start run error", func(t *testing.T) {
		run := &models.Run{
			ID:            runID,
			ShopID:        shopID,
			CreatedAt:     createdAt,
			OffersVersion: version,
		}

		fetcher := mocks.NewFetcher(t)
		decoder := mocks.NewDecoder(t)
		storage := mocks.NewStorage(t)

		mockStorageStartRun(storage, feedURL, run, assert.AnError)

		par := parser.NewParser(
			fetcher,
			decoder,
			storage,
			batchSize,
			parser.WithClock(fakeClock{timestamp: version, now: &now}),
		)

		err := par.Parse(context.TODO(), feedURL)

		require.ErrorContains(t, err,
			"can't start parsing",
			"should return error about failed parsing start",
		)
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})

	t.Run("upsert offers error", func(t *testing.T) {
		run := &models.Run{
			ID:            runID,
			ShopID:        shopID,
			CreatedAt:     createdAt,
			OffersVersion: version,
		}

		toUpsert := [][]models.Offer{
			{offers[0], offers[1]},
			{offers[3], offers[4]},
		}

		wantNewOffers := 1
		wantUpdatedOffers := 1
		wantFailedOffers := 2
		wantRun := &models.Run{
			ID:            runID,
			ShopID:        shopID,
			CreatedAt:     createdAt,
			FinishedAt:    &now,
			IsSuccess:     lo.ToPtr(false),
			StatusMessage: lo.ToPtr("can't upsert offers: assert.AnError general error for testing"),
			CreatedOffers: lo.ToPtr(int32(wantNewOffers)),
			UpdatedOffers: lo.ToPtr(int32(wantUpdatedOffers)),
			FailedOffers:  lo.ToPtr(int32(wantFailedOffers)),
			ParseErrors:   lo.ToPtr(wantParseErrors),
			OffersVersion: version,
		}

		fetcher := mocks.NewFetcher(t)
		decoder := mocks.NewDecoder(t)
		storage := mocks.NewStorage(t)

		mockStorageStartRun(storage, feedURL, run, nil)
		mockFetcher(fetcher, feedURL, nil)
		mockDecoder(decoder, offers[:6], summary, nil)
		mockStorageUpsertOffers(storage, toUpsert[0], run.ShopID, 1, 1, nil)
		mockStorageUpsertOffers(storage, toUpsert[1], run.ShopID, 0, 0, assert.AnError)
		mockStorageUpdateShop(storage, run.ShopID, summary.Catalog, nil)
		mockStorageSaveParseErrors(storage, run.ID, summary.Errors, nil)
		mockStorageFinishRun(storage, wantRun, nil)

		par := parser.NewParser(
			fetcher,
			decoder,
			storage,
			batchSize,
			parser.WithClock(fakeClock{timestamp: version, now: &now}),
		)

		err := par.Parse(context.TODO(), feedURL)

		require.ErrorContains(t, err,
			"can't upsert offers",
			"should return error about failed offers upserting",
		)
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})

	t.Run("update shop error", func(t *testing.T) {
		run := &models.Run{
			ID:            runID,
			ShopID:        shopID,
			CreatedAt:     createdAt,
			OffersVersion: version,
		}

		toUpsert := []models.Offer{offers[0], offers[1]}

		wantRun := &models.Run{
			ID:            runID,
			ShopID:        shopID,
			CreatedAt:     createdAt,
			FinishedAt:    &now,
			IsSuccess:     lo.ToPtr(false),
			StatusMessage: lo.ToPtr("can't update shop: assert.AnError general error for testing"),
			CreatedOffers: lo.ToPtr(int32(1)),
			UpdatedOffers: lo.ToPtr(int32(1)),
			FailedOffers:  lo.ToPtr(int32(0)),
			ParseErrors:   lo.ToPtr(wantParseErrors),
			OffersVersion: version,
		}

		fetcher := mocks.NewFetcher(t)
		decoder := mocks.NewDecoder(t)
		storage := mocks.NewStorage(t)

		mockStorageStartRun(storage, feedURL, run, nil)
		mockFetcher(fetcher, feedURL, nil)
		mockDecoder(decoder, offers[:2], summary, nil)
		mockStorageUpsertOffers(storage, toUpsert, run.ShopID, 1, 1, nil)
		mockStorageUpdateShop(storage, run.ShopID, summary.Catalog, assert.AnError)
		mockStorageSaveParseErrors(storage, run.ID, summary.Errors, nil)
		mockStorageFinishRun(storage, wantRun, nil)

		par := parser.NewParser(
			fetcher,
			decoder,
			storage,
			batchSize,
			parser.WithClock(fakeClock{timestamp: version, now: &now}),
		)

		err := par.Parse(context.TODO(), feedURL)

		require.ErrorContains(t, err,
			"can't update shop",
			"should return error about failed shop updating",
		)
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})

	t.Run("delete old offers error", func(t *testing.T) {
		run := &models.Run{
			ID:            runID,
			ShopID:        shopID,
			CreatedAt:     createdAt,
			OffersVersion: version,
		}

		// offers with id in batches of 2
		toUpsert := [][]models.Offer{
			{offers[0], offers[1]},
			{offers[3], offers[4]},
			{offers[6], offers[7]},
			{offers[8]},
		}

		wantNewOffers := 4
		wantUpdatedOffers := 3
		wantDeletedOffers := rand.Int31()
		wantFailedOffers := 2
		wantRun := &models.Run{
			ID:            runID,
			ShopID:        shopID,
			CreatedAt:     createdAt,
			FinishedAt:    &now,
			IsSuccess:     lo.ToPtr(false),
			StatusMessage: lo.ToPtr("can't delete outdated offers: assert.AnError general error for testing"),
			CreatedOffers: lo.ToPtr(int32(wantNewOffers)),
			UpdatedOffers: lo.ToPtr(int32(wantUpdatedOffers)),
			DeletedOffers: lo.ToPtr(wantDeletedOffers),
			FailedOffers:  lo.ToPtr(int32(wantFailedOffers)),
			ParseErrors:   lo.ToPtr(wantParseErrors),
			OffersVersion: version,
		}

		fetcher := mocks.NewFetcher(t)
		decoder := mocks.NewDecoder(t)
		storage := mocks.NewStorage(t)

		mockStorageStartRun(storage, feedURL, run, nil)
		mockFetcher(fetcher, feedURL, nil)
		mockDecoder(decoder, offers, summary, nil)
		for ix := range toUpsert {
			// first offer is always new, second (if exists) is updated
			mockStorageUpsertOffers(storage, toUpsert[ix], run.ShopID, 1, int32(len(toUpsert[ix])-1), nil)
		}
		mockStorageUpdateShop(storage, run.ShopID, summary.Catalog, nil)
		mockStorageSaveParseErrors(storage, run.ID, summary.Errors, nil)
		mockStorageDeleteOldOffers(storage, run.ShopID, version, batchSize, wantDeletedOffers, assert.AnError)
		mockStorageFinishRun(storage, wantRun, nil)

		par := parser.NewParser(
			fetcher,
			decoder,
			storage,
			batchSize,
			parser.WithClock(fakeClock{timestamp: version, now: &now}),
		)

		err := par.Parse(context.TODO(), feedURL)

		require.ErrorContains(t, err,
			"can't delete outdated offers",
			"should return error about failed deleting old offers",
		)
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})

	t.Run("finish run error", func(t *testing.T) {
		run := &models.Run{
			ID:            runID,
			ShopID:        shopID,
			CreatedAt:     createdAt,
			OffersVersion: version,
		}

		wantRun := &models.Run{
			ID:            runID,
			ShopID:        shopID,
			CreatedAt:     createdAt,
			FinishedAt:    &now,
			IsSuccess:     lo.ToPtr(false),
			StatusMessage: lo.ToPtr("can't fetch feed file: assert.AnError general error for testing"),
			OffersVersion: version,
		}

		fetcher := mocks.NewFetcher(t)
		decoder := mocks.NewDecoder(t)
		storage := mocks.NewStorage(t)

		mockStorageStartRun(storage, feedURL, run, nil)
		mockFetcher(fetcher, feedURL, assert.AnError)
		mockStorageFinishRun(storage, wantRun, assert.AnError)

		par := parser.NewParser(
			fetcher,
			decoder,
			storage,
			batchSize,
			parser.WithClock(fakeClock{timestamp: version, now: &now}),
		)

		err := par.Parse(context.TODO(), feedURL)

		require.ErrorContains(t, err, "can't finish failed parsing", "should return error about failed run finishing")
		require.ErrorContains(t, err, "can't fetch feed file", "should return error about failed fetching")
		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
	})
}

func TestUnitParseFetcherError(t *testing.T) {
	run := &models.Run{
		ID:            runID,
		ShopID:        shopID,
		CreatedAt:     createdAt,
		OffersVersion: version,
	}

	wantRun := &models.Run{
		ID:            runID,
		ShopID:        shopID,
		CreatedAt:     createdAt,
		FinishedAt:    &now,
		IsSuccess:     lo.ToPtr(false),
		StatusMessage: lo.ToPtr("can't fetch feed file: assert.AnError general error for testing"),
		OffersVersion: version,
	}

	fetcher := mocks.NewFetcher(t)
	decoder := mocks.NewDecoder(t)
	storage := mocks.NewStorage(t)

	mockStorageStartRun(storage, feedURL, run, nil)
	mockFetcher(fetcher, feedURL, assert.AnError)
	mockStorageFinishRun(storage, wantRun, nil)

	par := parser.NewParser(
		fetcher,
		decoder,
		storage,
		batchSize,
		parser.WithClock(fakeClock{timestamp: version, now: &now}),
	)

	err := par.Parse(context.TODO(), feedURL)

	require.ErrorContains(t, err, "can't fetch feed file", "should return error about failed fetching")
	require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
}

func TestUnitParseDecoderError(t *testing.T) {
	run := &models.Run{
		ID:            runID,
		ShopID:        shopID,
		CreatedAt:     createdAt,
		OffersVersion: version,
	}

	toUpsert := []models.Offer{offers[0], offers[1]}

	wantNewOffers := 1
	wantUpdatedOffers := 1
	wantFailedOffers := 0
	wantRun := &models.Run{
		ID:            runID,
		ShopID:        shopID,
		CreatedAt:     createdAt,
		FinishedAt:    &now,
		IsSuccess:     lo.ToPtr(false),
		StatusMessage: lo.ToPtr("can't decode feed file: assert.AnError general error for testing"),
		CreatedOffers: lo.ToPtr(int32(wantNewOffers)),
		UpdatedOffers: lo.ToPtr(int32(wantUpdatedOffers)),
		FailedOffers:  lo.ToPtr(int32(wantFailedOffers)),
		ParseErrors:   lo.ToPtr(wantParseErrors),
		OffersVersion: version,
	}

	fetcher := mocks.NewFetcher(t)
	decoder := mocks.NewDecoder(t)
	storage := mocks.NewStorage(t)

	mockStorageStartRun(storage, feedURL, run, nil)
	mockFetcher(fetcher, feedURL, nil)
	mockDecoder(decoder, offers[:2], summary, assert.AnError)
	mockStorageUpsertOffers(storage, toUpsert, run.ShopID, 1, 1, nil)
	mockStorageUpdateShop(storage, run.ShopID, summary.Catalog, nil)
	mockStorageSaveParseErrors(storage, run.ID, summary.Errors, nil)
	mockStorageFinishRun(storage, wantRun, nil)

	par := parser.NewParser(
		fetcher,
		decoder,
		storage,
		batchSize,
		parser.WithClock(fakeClock{timestamp: version, now: &now}),
	)

	err := par.Parse(context.TODO(), feedURL)

	require.ErrorContains(t, err, "can't decode feed file", "should return error about failed decoding")
	require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
}

func mockStorageStartRun(storage *mocks.Storage, feedURL string, run *models.Run, err error) {
	storage.On("StartRun", mock.Anything, feedURL, mock.AnythingOfType("int64")).Return(run, err)
}

func mockStorageFinishRun(storage *mocks.Storage, run *models.Run, err error) {
	storage.On("FinishRun", mock.Anything, run).Return(err)
}

func mockStorageUpdateShop(storage *mocks.Storage, shopID int, catalog *models.Catalog, err error) {
	storage.On("UpdateShop", mock.Anything, shopID, catalog).Return(err)
}

func mockStorageSaveParseErrors(storage *mocks.Storage, runID int, parseErrors []models.ParseError, err error) {
	storage.On("SaveParseErrors", mock.Anything, runID, parseErrors).Return(err)
}

func mockStorageUpsertOffers(
	storage *mocks.Storage,
	offers []models.Offer,
	shopID int, newOffers,
	updatedOffers int32,
	err error,
) {
	storage.On("UpsertOffers", mock.Anything, offers, shopID).Return(newOffers, updatedOffers, err)
}

func mockStorageDeleteOldOffers(
	storage *mocks.Storage,
	shopID int,
	version int64,
	batchSize uint,
	deletedOffers int32,
	err error,
) {
	storage.On("DeleteOldOffers", mock.Anything, shopID, version, batchSize).Return(deletedOffers, err)
}

func mockDecoder(decoder *mocks.Decoder, offers []models.Offer, summary *models.ParseSummary, err error) {
	decoder.On("Decode", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		output := args.Get(2).(chan<- models.Offer)
		ctx := args.Get(0).(context.Context)
		for ix := range offers {
			select {
			case <-ctx.Done():
				return
			case output <- offers[ix]:
			}
		}
	}).Return(summary, err)
}

func mockFetcher(fetcher *mocks.Fetcher, feedURL string, err error) {
	var reader io.ReadCloser
	if err == nil {
		reader = io.NopCloser(strings.NewReader(""))
	}
	fetcher.On("FetchFile", mock.Anything, feedURL).Return(reader, err)
}

type fakeClock struct {
	timestamp int64
	now       *time.Time
}

func (c fakeClock) Timestamp() int64 {
	return c.timestamp
}

func (c fakeClock) Now() *time.Time {
	return c.now
}
