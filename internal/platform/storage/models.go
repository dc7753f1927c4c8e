package storage

import (
	"encoding/json"
	"strings"

	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
	"github.com/samber/lo"

	pgmodels "github.com/ayakovlev/market-feed-parser/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

func toDBRun(run *models.Run) *pgmodels.Run {
	return &pgmodels.Run{
		OffersVersion: run.OffersVersion,
		ShopID:        int32(run.ShopID),
		FinishedAt:    run.FinishedAt,
		Success:       run.IsSuccess,
		StatusMessage: run.StatusMessage,
		CreatedOffers: run.CreatedOffers,
		UpdatedOffers: run.UpdatedOffers,
		DeletedOffers: run.DeletedOffers,
		FailedOffers:  run.FailedOffers,
		ParseErrors:   run.ParseErrors,
	}
}

// ToDBOffer converts models.Offer into postgres offer model.
func ToDBOffer(offer *models.Offer, shopID int64, id *int32) *pgmodels.Offer {
	dbOffer := pgmodels.Offer{
		Version:              offer.Version,
		ShopID:               int32(shopID),
		OfferID:              offer.OfferID,
		Type:                 offer.Type,
		Bid:                  int32(offer.Bid),
		Cbid:                 int32(offer.Cbid),
		Available:            offer.Available,
		Name:                 offer.Name,
		Vendor:               offer.Vendor,
		VendorCode:           offer.VendorCode,
		Model:                offer.Model,
		URL:                  offer.URL,
		Pictures:             joinLines(offer.Pictures),
		Barcodes:             joinLines(offer.Barcodes),
		CurrencyID:           offer.CurrencyID,
		CategoryID:           int64(offer.CategoryID),
		Description:          offer.Description,
		SalesNotes:           offer.SalesNotes,
		Delivery:             offer.Delivery,
		Pickup:               offer.Pickup,
		Store:                offer.Store,
		Downloadable:         offer.Downloadable,
		EnableAutoDiscounts:  offer.EnableAutoDiscounts,
		ManufacturerWarranty: offer.ManufacturerWarranty,
		Adult:                offer.Adult,
		CreditTemplateID:     offer.CreditTemplateID,
		CountryOfOrigin:      offer.CountryOfOrigin,
		Weight:               offer.Weight,
		Dimensions:           offer.Dimensions,
		Expiry:               offer.Expiry,
		MinQuantity:          toDBQuantity(offer.MinQuantity),
		GroupID:              int64(offer.GroupID),
		DeliveryOptions:      toDBOptions(offer.DeliveryOptions),
		PickupOptions:        toDBOptions(offer.PickupOptions),
		Extra:                toDBExtra(offer.Extra),
		DeletedAt:            offer.DeletedAt,
	}

	if offer.Price != nil {
		dbOffer.Price = lo.ToPtr(offer.Price.Value)
		dbOffer.PriceFrom = offer.Price.From
	}

	if offer.OldPrice != nil {
		dbOffer.OldPrice = lo.ToPtr(offer.OldPrice.Value)
		dbOffer.OldPriceFrom = offer.OldPrice.From
	}

	if offer.Condition != nil {
		dbOffer.ConditionType = lo.ToPtr(offer.Condition.Type)
		dbOffer.ConditionReason = lo.ToPtr(offer.Condition.Reason)
	}

	if offer.Age != nil {
		dbOffer.AgeUnit = lo.ToPtr(offer.Age.Unit)
		dbOffer.AgeValue = lo.ToPtr(int32(offer.Age.Value))
	}

	if id != nil {
		dbOffer.ID = *id
	}

	return &dbOffer
}

// ToDBParams converts models.Param slice into postgres offer param slice.
func ToDBParams(offerID int32, params []models.Param) []pgmodels.OfferParam {
	if len(params) == 0 {
		return []pgmodels.OfferParam{}
	}

	dbParams := make([]pgmodels.OfferParam, 0, len(params))
	for ix := range params {
		dbParams = append(dbParams, pgmodels.OfferParam{
			OfferID: offerID,
			Name:    params[ix].Name,
			Unit:    params[ix].Unit,
			Value:   params[ix].Value,
			ParamID: toDBIdentity(params[ix].ParamID),
			ValueID: toDBIdentity(params[ix].ValueID),
		})
	}
	return dbParams
}

func toDBShop(shop *models.Shop) *pgmodels.Shop {
	return &pgmodels.Shop{
		Name:    shop.Name,
		Company: shop.Company,
	}
}

func toDBParseError(parseError *models.ParseError, runID int32) *pgmodels.ParseError {
	return &pgmodels.ParseError{
		RunID:   runID,
		Kind:    string(parseError.Kind),
		Line:    int32(parseError.Line),
		Col:     int32(parseError.Column),
		Message: parseError.Message,
		Value:   parseError.Value,
	}
}

func toDBQuantity(quantity *uint32) *int32 {
	if quantity == nil {
		return nil
	}
	return lo.ToPtr(int32(*quantity))
}

func toDBIdentity(id *uint64) *int64 {
	if id == nil {
		return nil
	}
	return lo.ToPtr(int64(*id))
}

// joinLines stores a list as a newline separated string, feed values
// never contain newlines.
func joinLines(values []string) string {
	return strings.Join(values, "\n")
}

func toDBOptions(options []models.DeliveryOption) string {
	if len(options) == 0 {
		return ""
	}

	encoded, err := json.Marshal(options)
	if err != nil {
		return ""
	}
	return string(encoded)
}

func toDBExtra(extra map[string][]string) string {
	if len(extra) == 0 {
		return ""
	}

	encoded, err := json.Marshal(extra)
	if err != nil {
		return ""
	}
	return string(encoded)
}
