package models

import "time"

// Catalog is the root of a parsed feed: the generation date and the shop.
type Catalog struct {
	Date string
	Shop *Shop
}

// Shop is shop description model.
type Shop struct {
	Name     string
	Company  string
	URL      string
	Platform string
	Version  string
	Agency   string
	Email    string

	Currencies      []Currency
	Categories      []Category
	DeliveryOptions []DeliveryOption
	PickupOptions   []DeliveryOption
}

// Currency is shop currency model. Rate is kept verbatim because feeds may
// use bank policy tokens ("CBRF") instead of numbers.
type Currency struct {
	ID   string
	Rate string
	Plus string
}

// Category is shop category model. Name is the element text.
type Category struct {
	ID       uint64
	ParentID *uint64
	Name     string
}

// DeliveryOption is a single delivery or pickup option. Days is kept
// verbatim ("2", "1-3"). OrderBefore is an hour of day, 0-23.
type DeliveryOption struct {
	Cost        uint32
	Days        string
	OrderBefore *uint32
}

// Run is parsing process run model.
type Run struct {
	ID            int
	ShopID        int
	CreatedAt     time.Time
	FinishedAt    *time.Time
	IsSuccess     *bool
	StatusMessage *string
	CreatedOffers *int32
	UpdatedOffers *int32
	DeletedOffers *int32
	FailedOffers  *int32
	ParseErrors   *int32
	OffersVersion int64
}

// Offer is offer model. Pointer fields are tri-state: nil means the feed
// did not set the value.
type Offer struct {
	ID        int
	ShopID    int
	Version   int64
	CreatedAt time.Time
	DeletedAt *time.Time

	OfferID   string
	Type      string
	Bid       uint32
	Cbid      uint32
	Available *bool

	Name                 string
	Vendor               string
	VendorCode           string
	Model                string
	URL                  string
	Pictures             []string
	Price                *Price
	OldPrice             *Price
	CurrencyID           string
	CategoryID           uint64
	Description          string
	SalesNotes           string
	Delivery             *bool
	Pickup               *bool
	Store                *bool
	Downloadable         bool
	EnableAutoDiscounts  bool
	ManufacturerWarranty bool
	Adult                bool
	Barcodes             []string
	Params               []Param
	Condition            *Condition
	CreditTemplateID     string
	CountryOfOrigin      string
	Weight               float32
	Dimensions           string
	Expiry               string
	MinQuantity          *uint32
	GroupID              uint32
	Age                  *Age
	DeliveryOptions      []DeliveryOption
	PickupOptions        []DeliveryOption

	// Extra collects unrecognized offer tags: tag name to flattened text of
	// every occurrence, in document order.
	Extra map[string][]string
}

// Price is offer price model. From reports the `from="true"` attribute.
type Price struct {
	Value float32
	From  bool
}

// Param is offer parameter model. ParamID and ValueID come from the
// extended parameter identity scheme and are usually absent.
type Param struct {
	Name    string
	Unit    string
	Value   string
	ParamID *uint64
	ValueID *uint64
}

// Condition describes a used or refurbished offer.
type Condition struct {
	Type   string
	Reason string
}

// Age is minimal recommended age model. Unit is "year" or "month".
type Age struct {
	Unit  string
	Value uint32
}
