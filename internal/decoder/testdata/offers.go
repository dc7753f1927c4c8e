// Package testdata holds the models expected when decoding feed.xml.
package testdata

import (
	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
	"github.com/samber/lo"
)

// FeedDate is the yml_catalog date attribute of feed.xml.
const FeedDate = "2024-03-01 12:00"

// Shop is the shop block of feed.xml.
var Shop = &models.Shop{
	Name:     "BestSeller",
	Company:  "Tovary i uslugi Ltd.",
	URL:      "http://best.seller.ru/",
	Platform: "CMS",
	Version:  "2.3",
	Agency:   "Agency",
	Email:    "CMS@CMS.ru",
	Currencies: []models.Currency{
		{ID: "RUR", Rate: "1"},
		{ID: "USD", Rate: "CBRF", Plus: "3"},
	},
	Categories: []models.Category{
		{ID: 1, Name: "Бытовая техника"},
		{ID: 10, ParentID: lo.ToPtr(uint64(1)), Name: "Мелкая техника для кухни"},
	},
	DeliveryOptions: []models.DeliveryOption{
		{Cost: 200, Days: "1"},
		{Cost: 0, Days: "5-7", OrderBefore: lo.ToPtr(uint32(14))},
	},
	PickupOptions: []models.DeliveryOption{
		{Cost: 0, Days: "3"},
	},
}

// Offers are the offers of feed.xml, in document order.
var Offers = []models.Offer{
	{
		OfferID:    "9012",
		Bid:        80,
		Name:       "Мороженица Brand 3811",
		Vendor:     "Brand",
		VendorCode: "A1234567B",
		URL:        "http://best.seller.ru/product_page.asp?pid=12345",
		Pictures: []string{
			"http://best.seller.ru/img/model_12345.jpg",
			"http://best.seller.ru/img/model_12345_side.jpg",
		},
		Price:      &models.Price{Value: 8990},
		OldPrice:   &models.Price{Value: 9990, From: true},
		CurrencyID: "RUR",
		CategoryID: 10,
		Delivery:   lo.ToPtr(true),
		Pickup:     lo.ToPtr(false),
		Store:      lo.ToPtr(false),
		DeliveryOptions: []models.DeliveryOption{
			{Cost: 300, Days: "1-3"},
		},
		Description:          "Мороженица незаменима для всех любителей десертов.",
		SalesNotes:           "Необходима предоплата.",
		ManufacturerWarranty: true,
		CountryOfOrigin:      "Китай",
		Barcodes:             []string{"4601546021298"},
		Params: []models.Param{
			{Name: "Цвет", Value: "белый"},
			{Name: "Вес", Unit: "кг", Value: "3.6"},
		},
		Condition:        &models.Condition{Type: "likenew", Reason: "Повреждена упаковка"},
		CreditTemplateID: "20034",
		Weight:           3.6,
		Dimensions:       "20.1/20.5/22.5",
	},
	{
		OfferID:             "9013",
		Type:                "vendor.model",
		Available:           lo.ToPtr(false),
		Model:               "3811 Mini",
		Vendor:              "Brand",
		Price:               &models.Price{Value: 5990.5, From: true},
		CurrencyID:          "RUR",
		CategoryID:          10,
		EnableAutoDiscounts: true,
		MinQuantity:         lo.ToPtr(uint32(2)),
		GroupID:             1002,
		Age:                 &models.Age{Unit: "month", Value: 12},
		Expiry:              "P1Y2M10DT2H30M",
		Extra: map[string][]string{
			"supplier":     {""},
			"custom_score": {"87"},
		},
	},
}
