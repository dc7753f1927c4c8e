package modelstesting

import (
	"math/rand"

	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
)

// FakeOffer returns models.Offer with fake data and random number of fake
// params, pictures and barcodes.
func FakeOffer(ops ...func(o *models.Offer)) models.Offer {
	offer := models.Offer{
		Version:         rand.Int63(),
		OfferID:         faker.Word(),
		Type:            faker.Word(),
		Available:       lo.ToPtr(true),
		Name:            faker.Word(),
		Vendor:          faker.Word(),
		VendorCode:      faker.Word(),
		Model:           faker.Word(),
		URL:             faker.Word(),
		Pictures:        fakeStrings(),
		Price:           &models.Price{Value: rand.Float32() * 10000},
		CurrencyID:      "RUR",
		CategoryID:      uint64(rand.Intn(1000) + 1),
		Description:     faker.Word(),
		SalesNotes:      faker.Word(),
		Delivery:        lo.ToPtr(true),
		Pickup:          lo.ToPtr(false),
		Barcodes:        fakeStrings(),
		Params:          fakeParams(),
		CountryOfOrigin: faker.Word(),
	}

	for _, op := range ops {
		op(&offer)
	}

	return offer
}

// FakeParam returns models.Param with fake data.
func FakeParam(ops ...func(p *models.Param)) models.Param {
	param := models.Param{
		Name:  faker.Word(),
		Unit:  faker.Word(),
		Value: faker.Word(),
	}

	for _, op := range ops {
		op(&param)
	}

	return param
}

// FakeShop returns models.Shop with fake data.
func FakeShop(ops ...func(s *models.Shop)) models.Shop {
	shop := models.Shop{
		Name:     faker.Word(),
		Company:  faker.Word(),
		URL:      faker.Word(),
		Platform: faker.Word(),
		Version:  faker.Word(),
		Email:    faker.Word(),
	}

	for _, op := range ops {
		op(&shop)
	}

	return shop
}

// FakeParseError returns models.ParseError with fake data.
func FakeParseError(ops ...func(e *models.ParseError)) models.ParseError {
	parseError := models.ParseError{
		Kind:    models.MalformedXML,
		Line:    rand.Intn(1000) + 1,
		Column:  rand.Intn(100) + 1,
		Message: faker.Word(),
		Value:   faker.Word(),
	}

	for _, op := range ops {
		op(&parseError)
	}

	return parseError
}

func fakeStrings() []string {
	stringsLen := rand.Intn(5)
	strs := make([]string, 0, stringsLen)
	for i := 0; i < stringsLen; i++ {
		strs = append(strs, faker.Word())
	}

	return strs
}

func fakeParams() []models.Param {
	paramsLen := rand.Intn(5)
	params := make([]models.Param, 0, paramsLen)
	for i := 0; i < paramsLen; i++ {
		params = append(params, FakeParam())
	}

	return params
}
