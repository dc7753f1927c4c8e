package helpers

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
	"github.com/ayakovlev/market-feed-parser/internal/platform/models/modelstesting"
	pgmodels "github.com/ayakovlev/market-feed-parser/internal/platform/storage/gen/postgres/public/model"
	"github.com/ayakovlev/market-feed-parser/internal/platform/storage/storagetesting"
	"github.com/go-jet/jet/v2/qrm"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"
	feedDate    = "2024-01-01 12:00"
)

// WaitForRunToBeFinished is blocking helper function, returns latest run after it is finished.
// previousRunID guards against picking up an older finished run, pass 0 when waiting for the first one.
func WaitForRunToBeFinished(t *testing.T, queryable qrm.Queryable, feedURL string, previousRunID int) *models.Run {
	t.Helper()

	var shopID int
	for {
		<-time.After(time.Millisecond * 250)
		shopID = storagetesting.GetShopID(t, queryable, feedURL)
		if shopID != 0 {
			break
		}
	}

	var latestRun *models.Run
	for {
		<-time.After(time.Millisecond * 500)
		latestRun = storagetesting.GetLatestRun(t, queryable, shopID)
		if latestRun != nil && latestRun.ID != previousRunID && latestRun.FinishedAt != nil {
			return latestRun
		}
	}
}

// GetOffers is helper function for getting offers from db ordered by OfferID (must be integer).
func GetOffers(t *testing.T, queryable qrm.Queryable, feedURL string) []models.Offer {
	t.Helper()

	shopID := storagetesting.GetShopID(t, queryable, feedURL)
	dbOffers := storagetesting.GetOffersByShopID(t, queryable, shopID)

	offers := make([]models.Offer, len(dbOffers))
	for ix := range dbOffers {
		offers[ix] = *fromDBOffer(
			t,
			&dbOffers[ix],
			storagetesting.GetParamsByOfferID(t, queryable, int(dbOffers[ix].ID)),
		)
	}

	sort.Slice(offers, func(i, j int) bool {
		var aID, bID int
		var err error
		if aID, err = strconv.Atoi(offers[i].OfferID); err != nil {
			require.FailNow(t, "expected offerID should be integer")
		}
		if bID, err = strconv.Atoi(offers[j].OfferID); err != nil {
			require.FailNow(t, "expected offerID should be integer")
		}
		return aID < bID
	})

	return offers
}

// GetShop is helper function for getting stored shop metadata by feed URL.
func GetShop(t *testing.T, queryable qrm.Queryable, feedURL string) *pgmodels.Shop {
	t.Helper()

	shops := storagetesting.GetShops(t, queryable)
	for ix := range shops {
		if shops[ix].URL == feedURL {
			return &shops[ix]
		}
	}

	require.FailNowf(t, "shop not found", "no shop with url %q", feedURL)
	return nil
}

// GetRunParseErrors is helper function for getting parse errors recorded for a run.
func GetRunParseErrors(t *testing.T, queryable qrm.Queryable, runID int) []pgmodels.ParseError {
	t.Helper()

	return lo.Filter(storagetesting.GetParseErrors(t, queryable), func(e pgmodels.ParseError, _ int) bool {
		return int(e.RunID) == runID
	})
}

// PrepareMockedHTTPServer is helper function for mocking http srv and client.
// Returns function for setting feed file to return, feed number is from 0 to len(feedFiles) inclusive.
func PrepareMockedHTTPServer(t *testing.T, feedFiles [][]byte, statusCode int) (*httptest.Server, func(int)) {
	t.Helper()

	feedFileToReturnIx := 0

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		wrt.Header().Add(contentType, "application/xml")
		wrt.WriteHeader(statusCode)
		_, _ = wrt.Write(feedFiles[feedFileToReturnIx])
	}))

	t.Cleanup(func() {
		srv.Close()
	})

	return srv, func(i int) { feedFileToReturnIx = i }
}

// DeclareRMQExchange is helper function for declaring RMQ exchange.
func DeclareRMQExchange(t *testing.T, ch *amqp.Channel, exchange string) {
	t.Helper()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		require.FailNow(t, "can't declare exchange", exchange, err)
	}
}

// DeclareRMQQueue is helper function for declaring RMQ queue and binding and cleaning them after test is finished.
func DeclareRMQQueue(t *testing.T, channel *amqp.Channel, queueName, exchange, routingKey string) {
	t.Helper()

	_, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		require.FailNow(t, "can't declare queue", queueName, err)
	}

	err = channel.QueueBind(queueName, routingKey, exchange, false, nil)
	if err != nil {
		require.FailNow(t, "can't bind queue", queueName, routingKey, err)
	}

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, true)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}

// GenerateTestData generates n offers with OfferID in [1;n].
func GenerateTestData(t *testing.T, n int) []models.Offer {
	t.Helper()

	results := make([]models.Offer, n)

	for ix := 0; ix < n; ix++ {
		ix := ix
		results[ix] = modelstesting.FakeOffer(func(o *models.Offer) { o.OfferID = strconv.Itoa(ix + 1) })
	}

	return results
}

// FeedToYML renders shop and offers as a complete yml_catalog feed file.
func FeedToYML(t *testing.T, shop *models.Shop, offers []models.Offer) []byte {
	t.Helper()

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	openElement(t, enc, "yml_catalog", attr("date", feedDate))
	openElement(t, enc, "shop")
	textElement(t, enc, "name", shop.Name)
	textElement(t, enc, "company", shop.Company)
	textElement(t, enc, "url", shop.URL)
	if shop.Platform != "" {
		textElement(t, enc, "platform", shop.Platform)
	}
	if shop.Version != "" {
		textElement(t, enc, "version", shop.Version)
	}
	if shop.Agency != "" {
		textElement(t, enc, "agency", shop.Agency)
	}
	if shop.Email != "" {
		textElement(t, enc, "email", shop.Email)
	}
	openElement(t, enc, "offers")
	for ix := range offers {
		encodeOffer(t, enc, &offers[ix])
	}
	closeElement(t, enc, "offers")
	closeElement(t, enc, "shop")
	closeElement(t, enc, "yml_catalog")

	if err := enc.Flush(); err != nil {
		require.FailNow(t, "can't flush xml encoder", err)
	}

	return buf.Bytes()
}

// encodeOffer writes single <offer> element, skipping unset optional fields.
func encodeOffer(t *testing.T, enc *xml.Encoder, offer *models.Offer) {
	t.Helper()

	attrs := []xml.Attr{attr("id", offer.OfferID)}
	if offer.Type != "" {
		attrs = append(attrs, attr("type", offer.Type))
	}
	if offer.Bid != 0 {
		attrs = append(attrs, attr("bid", strconv.FormatUint(uint64(offer.Bid), 10)))
	}
	if offer.Cbid != 0 {
		attrs = append(attrs, attr("cbid", strconv.FormatUint(uint64(offer.Cbid), 10)))
	}
	if offer.Available != nil {
		attrs = append(attrs, attr("available", strconv.FormatBool(*offer.Available)))
	}
	openElement(t, enc, "offer", attrs...)

	textElement(t, enc, "name", offer.Name)
	textElement(t, enc, "vendor", offer.Vendor)
	textElement(t, enc, "vendorCode", offer.VendorCode)
	textElement(t, enc, "model", offer.Model)
	textElement(t, enc, "url", offer.URL)
	for ix := range offer.Pictures {
		textElement(t, enc, "picture", offer.Pictures[ix])
	}
	if offer.Price != nil {
		priceElement(t, enc, "price", offer.Price)
	}
	if offer.OldPrice != nil {
		priceElement(t, enc, "oldprice", offer.OldPrice)
	}
	textElement(t, enc, "currencyId", offer.CurrencyID)
	textElement(t, enc, "categoryId", strconv.FormatUint(offer.CategoryID, 10))
	textElement(t, enc, "description", offer.Description)
	textElement(t, enc, "sales_notes", offer.SalesNotes)
	optBoolElement(t, enc, "delivery", offer.Delivery)
	optBoolElement(t, enc, "pickup", offer.Pickup)
	optBoolElement(t, enc, "store", offer.Store)
	if offer.Downloadable {
		textElement(t, enc, "downloadable", "true")
	}
	if offer.EnableAutoDiscounts {
		textElement(t, enc, "enable_auto_discounts", "true")
	}
	if offer.ManufacturerWarranty {
		textElement(t, enc, "manufacturer_warranty", "true")
	}
	if offer.Adult {
		textElement(t, enc, "adult", "true")
	}
	for ix := range offer.Barcodes {
		textElement(t, enc, "barcode", offer.Barcodes[ix])
	}
	for ix := range offer.Params {
		paramElement(t, enc, &offer.Params[ix])
	}
	if offer.Condition != nil {
		openElement(t, enc, "condition", attr("type", offer.Condition.Type))
		textElement(t, enc, "reason", offer.Condition.Reason)
		closeElement(t, enc, "condition")
	}
	if offer.CreditTemplateID != "" {
		openElement(t, enc, "credit-template", attr("id", offer.CreditTemplateID))
		closeElement(t, enc, "credit-template")
	}
	textElement(t, enc, "country_of_origin", offer.CountryOfOrigin)
	if offer.Weight != 0 {
		textElement(t, enc, "weight", formatFloat(offer.Weight))
	}
	if offer.Dimensions != "" {
		textElement(t, enc, "dimensions", offer.Dimensions)
	}
	if offer.Expiry != "" {
		textElement(t, enc, "expiry", offer.Expiry)
	}
	if offer.MinQuantity != nil {
		textElement(t, enc, "min-quantity", strconv.FormatUint(uint64(*offer.MinQuantity), 10))
	}
	if offer.GroupID != 0 {
		textElement(t, enc, "group_id", strconv.FormatUint(uint64(offer.GroupID), 10))
	}
	if offer.Age != nil {
		textElement(t, enc, "age", strconv.FormatUint(uint64(offer.Age.Value), 10), attr("unit", offer.Age.Unit))
	}
	optionsElement(t, enc, "delivery-options", offer.DeliveryOptions)
	optionsElement(t, enc, "pickup-options", offer.PickupOptions)
	for _, name := range sortedKeys(offer.Extra) {
		for _, value := range offer.Extra[name] {
			textElement(t, enc, name, value)
		}
	}

	closeElement(t, enc, "offer")
}

func paramElement(t *testing.T, enc *xml.Encoder, param *models.Param) {
	t.Helper()

	attrs := []xml.Attr{attr("name", param.Name)}
	if param.Unit != "" {
		attrs = append(attrs, attr("unit", param.Unit))
	}
	if param.ParamID != nil {
		attrs = append(attrs, attr("id", strconv.FormatUint(*param.ParamID, 10)))
	}
	if param.ValueID != nil {
		attrs = append(attrs, attr("valueId", strconv.FormatUint(*param.ValueID, 10)))
	}
	textElement(t, enc, "param", param.Value, attrs...)
}

func priceElement(t *testing.T, enc *xml.Encoder, name string, price *models.Price) {
	t.Helper()

	if price.From {
		textElement(t, enc, name, formatFloat(price.Value), attr("from", "true"))
		return
	}
	textElement(t, enc, name, formatFloat(price.Value))
}

func optBoolElement(t *testing.T, enc *xml.Encoder, name string, value *bool) {
	t.Helper()

	if value == nil {
		return
	}
	textElement(t, enc, name, strconv.FormatBool(*value))
}

func optionsElement(t *testing.T, enc *xml.Encoder, name string, options []models.DeliveryOption) {
	t.Helper()

	if len(options) == 0 {
		return
	}
	openElement(t, enc, name)
	for ix := range options {
		attrs := []xml.Attr{
			attr("cost", strconv.FormatUint(uint64(options[ix].Cost), 10)),
			attr("days", options[ix].Days),
		}
		if options[ix].OrderBefore != nil {
			attrs = append(attrs, attr("order-before", strconv.FormatUint(uint64(*options[ix].OrderBefore), 10)))
		}
		openElement(t, enc, "option", attrs...)
		closeElement(t, enc, "option")
	}
	closeElement(t, enc, name)
}

func openElement(t *testing.T, enc *xml.Encoder, name string, attrs ...xml.Attr) {
	t.Helper()

	err := enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
	if err != nil {
		require.FailNow(t, "can't encode xml element", name, err)
	}
}

func closeElement(t *testing.T, enc *xml.Encoder, name string) {
	t.Helper()

	if err := enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}}); err != nil {
		require.FailNow(t, "can't close xml element", name, err)
	}
}

func textElement(t *testing.T, enc *xml.Encoder, name, text string, attrs ...xml.Attr) {
	t.Helper()

	openElement(t, enc, name, attrs...)
	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			require.FailNow(t, "can't encode xml text", name, err)
		}
	}
	closeElement(t, enc, name)
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func sortedKeys(extra map[string][]string) []string {
	keys := lo.Keys(extra)
	sort.Strings(keys)
	return keys
}

// fromDBOffer converts postgres offer row back into models.Offer.
func fromDBOffer(t *testing.T, offer *pgmodels.Offer, params []pgmodels.OfferParam) *models.Offer {
	t.Helper()

	result := models.Offer{
		Version:              offer.Version,
		OfferID:              offer.OfferID,
		Type:                 offer.Type,
		Bid:                  uint32(offer.Bid),
		Cbid:                 uint32(offer.Cbid),
		Available:            offer.Available,
		Name:                 offer.Name,
		Vendor:               offer.Vendor,
		VendorCode:           offer.VendorCode,
		Model:                offer.Model,
		URL:                  offer.URL,
		Pictures:             splitLines(offer.Pictures),
		Barcodes:             splitLines(offer.Barcodes),
		CurrencyID:           offer.CurrencyID,
		CategoryID:           uint64(offer.CategoryID),
		Description:          offer.Description,
		SalesNotes:           offer.SalesNotes,
		Delivery:             offer.Delivery,
		Pickup:               offer.Pickup,
		Store:                offer.Store,
		Downloadable:         offer.Downloadable,
		EnableAutoDiscounts:  offer.EnableAutoDiscounts,
		ManufacturerWarranty: offer.ManufacturerWarranty,
		Adult:                offer.Adult,
		Params:               fromDBParams(params),
		CreditTemplateID:     offer.CreditTemplateID,
		CountryOfOrigin:      offer.CountryOfOrigin,
		Weight:               offer.Weight,
		Dimensions:           offer.Dimensions,
		Expiry:               offer.Expiry,
		MinQuantity:          fromDBQuantity(offer.MinQuantity),
		GroupID:              uint32(offer.GroupID),
		DeliveryOptions:      fromDBOptions(t, offer.DeliveryOptions),
		PickupOptions:        fromDBOptions(t, offer.PickupOptions),
		Extra:                fromDBExtra(t, offer.Extra),
		CreatedAt:            offer.CreatedAt,
		DeletedAt:            offer.DeletedAt,
	}

	if offer.Price != nil {
		result.Price = &models.Price{Value: *offer.Price, From: offer.PriceFrom}
	}

	if offer.OldPrice != nil {
		result.OldPrice = &models.Price{Value: *offer.OldPrice, From: offer.OldPriceFrom}
	}

	if offer.ConditionType != nil {
		result.Condition = &models.Condition{
			Type:   *offer.ConditionType,
			Reason: lo.FromPtr(offer.ConditionReason),
		}
	}

	if offer.AgeUnit != nil && offer.AgeValue != nil {
		result.Age = &models.Age{
			Unit:  *offer.AgeUnit,
			Value: uint32(*offer.AgeValue),
		}
	}

	return &result
}

func fromDBParams(params []pgmodels.OfferParam) []models.Param {
	if len(params) == 0 {
		return []models.Param{}
	}

	result := make([]models.Param, 0, len(params))
	for ix := range params {
		result = append(result, models.Param{
			Name:    params[ix].Name,
			Unit:    params[ix].Unit,
			Value:   params[ix].Value,
			ParamID: fromDBIdentity(params[ix].ParamID),
			ValueID: fromDBIdentity(params[ix].ValueID),
		})
	}
	return result
}

func fromDBQuantity(quantity *int32) *uint32 {
	if quantity == nil {
		return nil
	}
	return lo.ToPtr(uint32(*quantity))
}

func fromDBIdentity(id *int64) *uint64 {
	if id == nil {
		return nil
	}
	return lo.ToPtr(uint64(*id))
}

func fromDBOptions(t *testing.T, encoded string) []models.DeliveryOption {
	t.Helper()

	if encoded == "" {
		return nil
	}

	var options []models.DeliveryOption
	if err := json.Unmarshal([]byte(encoded), &options); err != nil {
		require.FailNow(t, "can't unmarshal delivery options", err)
	}
	return options
}

func fromDBExtra(t *testing.T, encoded string) map[string][]string {
	t.Helper()

	if encoded == "" {
		return nil
	}

	var extra map[string][]string
	if err := json.Unmarshal([]byte(encoded), &extra); err != nil {
		require.FailNow(t, "can't unmarshal extension fields", err)
	}
	return extra
}

func splitLines(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, "\n")
}
