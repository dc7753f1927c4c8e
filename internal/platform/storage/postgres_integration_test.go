package storage_test

import (
	"context"
	"database/sql"
	"math/rand"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/ayakovlev/market-feed-parser/internal/platform"
	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
	"github.com/ayakovlev/market-feed-parser/internal/platform/models/modelstesting"
	"github.com/ayakovlev/market-feed-parser/internal/platform/storage"
	pgmodels "github.com/ayakovlev/market-feed-parser/internal/platform/storage/gen/postgres/public/model"
	"github.com/ayakovlev/market-feed-parser/internal/platform/storage/storagetesting"
	"github.com/go-faker/faker/v4"
	_ "github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var loc = func() *time.Location {
	loc, err := time.LoadLocation("Etc/UTC")
	if err != nil {
		panic(err)
	}
	return loc
}()

func TestPostgresIntegration(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}

type PostgresTestSuite struct {
	suite.Suite
	DB *sql.DB
}

func (s *PostgresTestSuite) SetupSuite() {
	s.DB = storagetesting.Open(s.T())
	storagetesting.CleanupData(s.T(), s.DB)
}

func (s *PostgresTestSuite) TearDownSuite() {
	storagetesting.CleanupData(s.T(), s.DB)
	if err := s.DB.Close(); err != nil {
		s.FailNow("close DB", err)
	}
}

func (s *PostgresTestSuite) TestIntegrationStartRun() {
	storagetesting.CleanupData(s.T(), s.DB)
	feedURL := faker.Word()
	version := rand.Int63()

	tests := map[string]struct {
		storedShop *pgmodels.Shop
		storedRuns []pgmodels.Run
		wantRun    *models.Run
		wantErr    error
	}{
		"new shop": {
			wantRun: &models.Run{
				OffersVersion: version,
			},
		},
		"first run": {
			storedShop: &pgmodels.Shop{
				ID:  123,
				URL: feedURL,
			},
			wantRun: &models.Run{
				ShopID:        123,
				OffersVersion: version,
			},
		},
		"after successful run": {
			storedShop: &pgmodels.Shop{
				ID:  123,
				URL: feedURL,
			},
			storedRuns: []pgmodels.Run{
				{
					ShopID:        123,
					OffersVersion: version - 1,
					Success:       lo.ToPtr(true),
					FinishedAt:    lo.ToPtr(time.Now()),
				},
			},
			wantRun: &models.Run{
				ShopID:        123,
				OffersVersion: version,
			},
		},
		"after failed run": {
			storedShop: &pgmodels.Shop{
				ID:  123,
				URL: feedURL,
			},
			storedRuns: []pgmodels.Run{
				{
					ShopID:        123,
					OffersVersion: version - 1,
					Success:       lo.ToPtr(false),
					FinishedAt:    lo.ToPtr(time.Now()),
				},
			},
			wantRun: &models.Run{
				ShopID:        123,
				OffersVersion: version,
			},
		},
		"already running error": {
			storedShop: &pgmodels.Shop{
				ID:  123,
				URL: feedURL,
			},
			storedRuns: []pgmodels.Run{
				{
					ShopID:        123,
					OffersVersion: version - 1,
				},
			},
			wantErr: platform.ErrAlreadyRunning,
		},
	}

	for name, tt := range tests {
		s.Run(name, func() {
			defer storagetesting.CleanupData(s.T(), s.DB)

			if tt.storedShop != nil {
				storagetesting.InsertShops(s.T(), s.DB, *tt.storedShop)
			}

			if len(tt.storedRuns) > 0 {
				storagetesting.InsertRuns(s.T(), s.DB, tt.storedRuns...)
			}

			post := storage.NewPostgres(s.DB)

			run, err := post.StartRun(context.TODO(), feedURL, version)

			if tt.wantErr == nil {
				s.Require().NoError(err, "shouldn't return any error")
				assertRun(s.T(), tt.wantRun, run)
			} else {
				s.Require().ErrorIs(err, tt.wantErr, "should return correct error")
			}
		})
	}
}

func (s *PostgresTestSuite) TestIntegrationFinishRun() {
	storagetesting.CleanupData(s.T(), s.DB)
	version := rand.Int63()
	createdAt := time.Date(2024, time.April, 1, 1, 1, 1, 0, loc)
	finishedAt := time.Date(2024, time.April, 1, 2, 1, 1, 0, loc)
	shopID := 1

	runsState := []pgmodels.Run{
		{
			ID:            1,
			ShopID:        int32(shopID),
			CreatedAt:     createdAt,
			OffersVersion: version,
		},
		{
			ID:            2,
			ShopID:        int32(shopID),
			CreatedAt:     createdAt,
			OffersVersion: rand.Int63(),
			CreatedOffers: lo.ToPtr(rand.Int31()),
			UpdatedOffers: lo.ToPtr(rand.Int31()),
			DeletedOffers: lo.ToPtr(rand.Int31()),
			FailedOffers:  lo.ToPtr(rand.Int31()),
			ParseErrors:   lo.ToPtr(rand.Int31()),
			Success:       lo.ToPtr(true),
		},
		{
			ID:            3,
			ShopID:        int32(shopID),
			CreatedAt:     createdAt,
			OffersVersion: rand.Int63(),
			CreatedOffers: lo.ToPtr(rand.Int31()),
			UpdatedOffers: lo.ToPtr(rand.Int31()),
			DeletedOffers: lo.ToPtr(rand.Int31()),
			FailedOffers:  lo.ToPtr(rand.Int31()),
			ParseErrors:   lo.ToPtr(rand.Int31()),
			Success:       lo.ToPtr(false),
		},
	}

	createdOffers := rand.Int31()
	updatedOffers := rand.Int31()
	deletedOffers := rand.Int31()
	failedOffers := rand.Int31()
	parseErrors := rand.Int31()

	tests := map[string]struct {
		run           models.Run
		storedRuns    []pgmodels.Run
		wantRunsState []pgmodels.Run
		wantErr       bool
	}{
		"single run": {
			run: models.Run{
				ID:            1,
				ShopID:        shopID,
				CreatedAt:     createdAt,
				OffersVersion: version,
				IsSuccess:     lo.ToPtr(true),
				FinishedAt:    &finishedAt,
				CreatedOffers: &createdOffers,
				UpdatedOffers: &updatedOffers,
				DeletedOffers: &deletedOffers,
				FailedOffers:  &failedOffers,
				ParseErrors:   &parseErrors,
			},
			storedRuns: runsState[0:1],
			wantRunsState: []pgmodels.Run{
				{
					ID:            1,
					ShopID:        int32(shopID),
					CreatedAt:     createdAt,
					OffersVersion: version,
					Success:       lo.ToPtr(true),
					FinishedAt:    &finishedAt,
					CreatedOffers: &createdOffers,
					UpdatedOffers: &updatedOffers,
					DeletedOffers: &deletedOffers,
					FailedOffers:  &failedOffers,
					ParseErrors:   &parseErrors,
				},
			},
		},
		"many runs": {
			run: models.Run{
				ID:            1,
				ShopID:        shopID,
				CreatedAt:     createdAt,
				OffersVersion: version,
				IsSuccess:     lo.ToPtr(true),
				FinishedAt:    &finishedAt,
				CreatedOffers: &createdOffers,
				UpdatedOffers: &updatedOffers,
				DeletedOffers: &deletedOffers,
				FailedOffers:  &failedOffers,
				ParseErrors:   &parseErrors,
			},
			storedRuns: runsState,
			wantRunsState: []pgmodels.Run{
				{
					ID:            1,
					ShopID:        int32(shopID),
					CreatedAt:     createdAt,
					OffersVersion: version,
					Success:       lo.ToPtr(true),
					FinishedAt:    &finishedAt,
					CreatedOffers: &createdOffers,
					UpdatedOffers: &updatedOffers,
					DeletedOffers: &deletedOffers,
					FailedOffers:  &failedOffers,
					ParseErrors:   &parseErrors,
				},
				runsState[1],
				runsState[2],
			},
		},
		"not existing shop error": {
			run: models.Run{
				ID:            1,
				ShopID:        2, // ID of not existing shop
				CreatedAt:     createdAt,
				OffersVersion: version,
				IsSuccess:     lo.ToPtr(true),
				FinishedAt:    &finishedAt,
				CreatedOffers: &createdOffers,
				UpdatedOffers: &updatedOffers,
				DeletedOffers: &deletedOffers,
				FailedOffers:  &failedOffers,
				ParseErrors:   &parseErrors,
			},
			storedRuns: runsState,
			wantErr:    true,
		},
	}

	for name, tt := range tests {
		s.Run(name, func() {
			defer storagetesting.CleanupData(s.T(), s.DB)

			storagetesting.InsertShops(s.T(), s.DB, pgmodels.Shop{ID: int32(shopID), URL: faker.Word()})
			storagetesting.InsertRuns(s.T(), s.DB, tt.storedRuns...)

			post := storage.NewPostgres(s.DB)

			err := post.FinishRun(context.TODO(), &tt.run)

			if tt.wantErr {
				s.Require().Error(err, "should return error")
			} else {
				s.Require().NoError(err, "shouldn't return any error")
				assertRuns(s.T(), tt.wantRunsState, storagetesting.GetRuns(s.T(), s.DB))
			}
		})
	}
}

func (s *PostgresTestSuite) TestIntegrationUpdateShop() {
	storagetesting.CleanupData(s.T(), s.DB)
	feedURL := faker.Word()
	decodedShop := modelstesting.FakeShop()

	tests := map[string]struct {
		shopID      func(storedID int) int
		catalog     *models.Catalog
		wantName    string
		wantCompany string
		wantErr     bool
	}{
		"ok": {
			catalog: &models.Catalog{
				Date: "2024-03-01 12:00",
				Shop: &decodedShop,
			},
			wantName:    decodedShop.Name,
			wantCompany: decodedShop.Company,
		},
		"no shop decoded": {
			catalog: &models.Catalog{
				Date: "2024-03-01 12:00",
			},
		},
		"not existing shop error": {
			shopID: func(storedID int) int { return storedID + 1 },
			catalog: &models.Catalog{
				Shop: &decodedShop,
			},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		s.Run(name, func() {
			defer storagetesting.CleanupData(s.T(), s.DB)

			storagetesting.InsertShops(s.T(), s.DB, pgmodels.Shop{URL: feedURL})
			shopID := storagetesting.GetShopID(s.T(), s.DB, feedURL)
			if tt.shopID != nil {
				shopID = tt.shopID(shopID)
			}

			post := storage.NewPostgres(s.DB)

			err := post.UpdateShop(context.TODO(), shopID, tt.catalog)

			if tt.wantErr {
				s.Require().Error(err, "should return error")
				return
			}

			s.Require().NoError(err, "shouldn't return any error")

			shops := storagetesting.GetShops(s.T(), s.DB)
			s.Require().Len(shops, 1, "should still have single shop")
			s.Equal(tt.wantName, shops[0].Name, "should store decoded shop name")
			s.Equal(tt.wantCompany, shops[0].Company, "should store decoded shop company")
			s.Equal(feedURL, shops[0].URL, "shouldn't change shop url")
		})
	}
}

func (s *PostgresTestSuite) TestIntegrationUpsertOffers() {
	storagetesting.CleanupData(s.T(), s.DB)
	version := rand.Int63()
	createdAt := time.Date(2024, time.April, 1, 1, 1, 1, 0, loc)
	deletedAt := time.Date(2024, time.April, 1, 2, 1, 1, 0, loc)
	shopID := int32(1)

	setOfferData := func(offer *models.Offer) {
		offer.CreatedAt = createdAt
		offer.DeletedAt = nil
		offer.Version = version
	}
	setOfferID := func(id string) func(*models.Offer) {
		return func(o *models.Offer) {
			o.OfferID = id
		}
	}

	offers := []models.Offer{
		modelstesting.FakeOffer(setOfferData, setOfferID("1")),
		modelstesting.FakeOffer(setOfferData, setOfferID("2")),
		modelstesting.FakeOffer(setOfferData, setOfferID("3")),
		modelstesting.FakeOffer(setOfferData, setOfferID("4")),
		modelstesting.FakeOffer(setOfferData, setOfferID("5")),
	}

	tests := map[string]struct {
		storedOffers []pgmodels.Offer
		wantOffers   []models.Offer
		wantCreated  int32
		wantUpdated  int32
		wantErr      bool
	}{
		"ok": {
			storedOffers: []pgmodels.Offer{
				{
					OfferID:   "1",
					ShopID:    shopID,
					Version:   version - 10,
					CreatedAt: createdAt,
				},
				{
					OfferID:   "4",
					ShopID:    shopID,
					Version:   version - 10,
					CreatedAt: createdAt,
					DeletedAt: &deletedAt,
				},
			},
			wantOffers:  offers,
			wantCreated: 3,
			wantUpdated: 2,
		},
		"skip lower version": {
			storedOffers: []pgmodels.Offer{
				{
					OfferID:   "1",
					ShopID:    shopID,
					Version:   version + 10,
					CreatedAt: createdAt,
				},
				{
					OfferID:   "4",
					ShopID:    shopID,
					Version:   version - 10,
					CreatedAt: createdAt,
					DeletedAt: &deletedAt,
				},
			},
			wantOffers: []models.Offer{
				{
					OfferID:   "1",
					Version:   version + 10,
					CreatedAt: createdAt,
				},
				offers[1],
				offers[2],
				offers[3],
				offers[4],
			},
			wantCreated: 3,
			wantUpdated: 1,
		},
	}

	for name, tt := range tests {
		s.Run(name, func() {
			defer storagetesting.CleanupData(s.T(), s.DB)

			storagetesting.InsertShops(s.T(), s.DB, pgmodels.Shop{ID: shopID, URL: faker.Word()})
			storagetesting.InsertOffers(s.T(), s.DB, tt.storedOffers...)

			post := storage.NewPostgres(s.DB)

			created, updated, err := post.UpsertOffers(context.TODO(), offers, int(shopID))

			if tt.wantErr {
				s.Require().Error(err, "should return error")
			} else {
				s.Require().NoError(err, "shouldn't return any error")
				s.Equal(tt.wantCreated, created, "should return correct number of created offers")
				s.Equal(tt.wantUpdated, updated, "should return correct number of updated offers")
				assertOffers(s.T(), tt.wantOffers, storagetesting.GetOffers(s.T(), s.DB), int64(shopID))
				assertParams(s.T(), tt.wantOffers, getAllParams(s.T(), s.DB))
			}
		})
	}
}

func (s *PostgresTestSuite) TestIntegrationDeleteOldOffers() {
	defer storagetesting.CleanupData(s.T(), s.DB)
	storagetesting.CleanupData(s.T(), s.DB)

	version := rand.Int63()
	createdAt := time.Date(2024, time.April, 1, 1, 1, 1, 0, loc)
	deletedAt := time.Date(2024, time.April, 1, 2, 1, 1, 0, loc)
	shopID := int32(1)

	storageState := []pgmodels.Offer{
		{
			OfferID:   "1",
			ShopID:    shopID,
			Version:   version - 10,
			CreatedAt: createdAt,
		},
		{
			OfferID:   "2",
			ShopID:    shopID,
			Version:   version,
			CreatedAt: createdAt,
			DeletedAt: &deletedAt,
		},
		{
			OfferID:   "3",
			ShopID:    shopID,
			Version:   version,
			CreatedAt: createdAt,
		},
		{
			OfferID:   "4",
			ShopID:    shopID,
			Version:   version - 10,
			CreatedAt: createdAt,
			DeletedAt: &deletedAt,
		},
		{
			OfferID:   "5",
			ShopID:    shopID,
			Version:   version - 10,
			CreatedAt: createdAt,
		},
	}

	wantState := []models.Offer{
		{
			OfferID:   "1",
			Version:   version - 10,
			CreatedAt: createdAt,
			DeletedAt: &deletedAt,
		},
		{
			OfferID:   "2",
			Version:   version,
			CreatedAt: createdAt,
			DeletedAt: &deletedAt,
		},
		{
			OfferID:   "3",
			Version:   version,
			CreatedAt: createdAt,
		},
		{
			OfferID:   "4",
			Version:   version - 10,
			CreatedAt: createdAt,
			DeletedAt: &deletedAt,
		},
		{
			OfferID:   "5",
			Version:   version - 10,
			CreatedAt: createdAt,
			DeletedAt: &deletedAt,
		},
	}

	storagetesting.InsertShops(s.T(), s.DB, pgmodels.Shop{ID: shopID, URL: faker.Word()})
	storagetesting.InsertOffers(s.T(), s.DB, storageState...)

	post := storage.NewPostgres(s.DB)

	deleted, err := post.DeleteOldOffers(context.TODO(), int(shopID), version, 1)

	s.Require().NoError(err, "shouldn't return any error")
	s.Equal(int32(2), deleted, "should return correct number of deleted offers")
	state := storagetesting.GetOffers(s.T(), s.DB)
	lo.ForEach(state, func(_ pgmodels.Offer, ix int) {
		if state[ix].DeletedAt != nil {
			state[ix].DeletedAt = &deletedAt
		}
	})
	assertOffers(s.T(), wantState, state, int64(shopID))
}

func (s *PostgresTestSuite) TestIntegrationSaveParseErrors() {
	storagetesting.CleanupData(s.T(), s.DB)

	parseErrors := []models.ParseError{
		{
			Kind:    models.MalformedXML,
			Line:    10,
			Column:  4,
			Message: "unexpected closing tag",
			Value:   "</shop>",
		},
		{
			Kind:    models.TypeMismatch,
			Line:    42,
			Column:  12,
			Message: "can't parse value as number",
			Value:   "abc",
		},
	}

	tests := map[string]struct {
		parseErrors []models.ParseError
		wantState   []pgmodels.ParseError
	}{
		"ok": {
			parseErrors: parseErrors,
			wantState: []pgmodels.ParseError{
				{
					RunID:   1,
					Kind:    string(models.MalformedXML),
					Line:    10,
					Col:     4,
					Message: "unexpected closing tag",
					Value:   "</shop>",
				},
				{
					RunID:   1,
					Kind:    string(models.TypeMismatch),
					Line:    42,
					Col:     12,
					Message: "can't parse value as number",
					Value:   "abc",
				},
			},
		},
		"no errors": {},
	}

	for name, tt := range tests {
		s.Run(name, func() {
			defer storagetesting.CleanupData(s.T(), s.DB)

			storagetesting.InsertShops(s.T(), s.DB, pgmodels.Shop{ID: 1, URL: faker.Word()})
			storagetesting.InsertRuns(s.T(), s.DB, pgmodels.Run{ID: 1, ShopID: 1, OffersVersion: rand.Int63()})

			post := storage.NewPostgres(s.DB)

			err := post.SaveParseErrors(context.TODO(), 1, tt.parseErrors)

			s.Require().NoError(err, "shouldn't return any error")

			state := storagetesting.GetParseErrors(s.T(), s.DB)
			require.Len(s.T(), state, len(tt.wantState), "should store correct number of parse errors")

			slices.SortFunc(state, func(a, b pgmodels.ParseError) int { return int(a.Line - b.Line) })
			lo.ForEach(state, func(_ pgmodels.ParseError, ix int) {
				state[ix].ID = 0
			})

			for ix := range state {
				assert.EqualValues(s.T(), tt.wantState[ix], state[ix], "parse error at index %d has incorrect values", ix)
			}
		})
	}
}

// assertOffers is a helper test function to assert offers slice.
func assertOffers(t *testing.T, expected []models.Offer, actual []pgmodels.Offer, shopID int64) {
	t.Helper()

	require.Len(t, actual, len(expected), "offers slice should have correct length")

	exp := make([]pgmodels.Offer, 0, len(expected))
	for ix := range expected {
		exp = append(exp, *storage.ToDBOffer(&expected[ix], shopID, nil))
	}

	slices.SortFunc(exp, func(a, b pgmodels.Offer) int { return strings.Compare(a.OfferID, b.OfferID) })
	slices.SortFunc(
		actual,
		func(a, b pgmodels.Offer) int {
			return strings.Compare(a.OfferID, b.OfferID)
		},
	)
	lo.ForEach(actual, func(_ pgmodels.Offer, ix int) {
		actual[ix].ID = 0
		actual[ix].CreatedAt = time.Time{}
		exp[ix].CreatedAt = time.Time{}
	})

	for ix := range actual {
		assert.EqualValues(t, exp[ix], actual[ix], "offer at index %d has incorrect values", ix)
	}
}

// assertRuns is a helper test function to assert runs slice.
func assertRuns(t *testing.T, expected, actual []pgmodels.Run) {
	t.Helper()

	require.Len(t, actual, len(expected), "should have correct length")

	slices.SortFunc(expected, func(a, b pgmodels.Run) int { return int(b.ID - a.ID) })
	slices.SortFunc(actual, func(a, b pgmodels.Run) int { return int(b.ID - a.ID) })

	for ix := range expected {
		assert.Equalf(t, expected[ix], actual[ix], "run at index %d has incorrect values", ix)
	}
}

// assertRun is a helper test function to assert run.
func assertRun(t *testing.T, expected, actual *models.Run) {
	t.Helper()

	if expected == nil {
		require.Nil(t, actual, "run should be nil")
		return
	}

	require.NotNil(t, actual, "run should not be nil")

	require.NotZero(t, actual.ShopID, "run should have new shop id")
	require.NotZero(t, actual.ID, "run should have id")

	actual.CreatedAt = time.Time{}
	actual.ID = 0
	if expected.ShopID == 0 {
		actual.ShopID = 0
	}

	assert.Equal(t, *expected, *actual, "run has incorrect values")
}

// assertParams is a helper test function to assert params of expected offers.
func assertParams(t *testing.T, expected []models.Offer, actual []pgmodels.OfferParam) {
	t.Helper()

	exp := []pgmodels.OfferParam{}
	for ix := range expected {
		exp = append(exp, storage.ToDBParams(0, expected[ix].Params)...)
	}

	require.Len(t, actual, len(exp), "params slice should have correct length")

	slices.SortFunc(exp, compareParams)
	slices.SortFunc(actual, compareParams)
	lo.ForEach(actual, func(_ pgmodels.OfferParam, ix int) {
		actual[ix].ID = 0
		actual[ix].OfferID = 0
	})

	for ix := range actual {
		assert.EqualValues(t, exp[ix], actual[ix], "param at index %d has incorrect values", ix)
	}
}

// compareParams orders params by name, value and unit, faker data may repeat names.
func compareParams(a, b pgmodels.OfferParam) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := strings.Compare(a.Value, b.Value); c != 0 {
		return c
	}
	return strings.Compare(a.Unit, b.Unit)
}

// getAllParams is a helper test function to get params of all offers.
func getAllParams(t *testing.T, db *sql.DB) []pgmodels.OfferParam {
	t.Helper()

	params := []pgmodels.OfferParam{}
	for _, offer := range storagetesting.GetOffers(t, db) {
		params = append(params, storagetesting.GetParamsByOfferID(t, db, int(offer.ID))...)
	}

	return params
}
