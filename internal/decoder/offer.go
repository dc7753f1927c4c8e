package decoder

import (
	"strings"

	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
)

// parseOffers reads one <offers> section. nested tells whether the section
// sits inside <shop>; together with the section policy it decides whether
// the offers are collected.
func (p *parse) parseOffers(open token, nested bool) error {
	if open.selfClosing {
		return nil
	}
	for {
		t, err := p.tok.next()
		if err != nil {
			return p.streamFailed(err)
		}
		switch t.kind {
		case tokenOpen:
			if t.name == "offer" {
				if err := p.parseOffer(t, nested); err != nil {
					return err
				}
				continue
			}
			p.errs.add(models.UnrecognizedField, t.line, t.col, "unrecognized element <"+t.name+"> in <offers>", "")
			if err := p.skipElement(t); err != nil {
				return err
			}
		case tokenClose:
			if t.name == "offers" {
				return nil
			}
		case tokenEOF:
			return nil
		}
	}
}

func (p *parse) parseOffer(open token, nested bool) error {
	offer := models.Offer{}
	if v, ok := open.attr("id"); ok {
		offer.OfferID = strings.TrimSpace(v)
	}
	if v, ok := open.attr("type"); ok {
		offer.Type = v
	}
	if bid, ok := p.uintAttr(open, "bid", 32); ok {
		offer.Bid = uint32(bid)
	}
	if cbid, ok := p.uintAttr(open, "cbid", 32); ok {
		offer.Cbid = uint32(cbid)
	}
	offer.Available = p.boolAttr(open, "available")
	if !open.selfClosing {
	fields:
		for {
			t, err := p.tok.next()
			if err != nil {
				return p.streamFailed(err)
			}
			switch t.kind {
			case tokenOpen:
				if err := p.offerField(&offer, t); err != nil {
					return err
				}
			case tokenClose:
				if t.name == "offer" {
					break fields
				}
			case tokenEOF:
				break fields
			}
		}
	}
	if offer.OfferID == "" {
		p.errs.add(models.MissingRequiredField, open.line, open.col, "offer is missing required attribute id", "")
	}
	if !p.collects(nested) {
		return nil
	}
	return p.emit(offer)
}

func (p *parse) collects(nested bool) bool {
	switch p.cfg.Sections {
	case SectionsNested:
		return nested
	case SectionsTopLevel:
		return !nested
	default:
		return true
	}
}

// offerField maps one offer child element. Recognized tags follow the YML
// vocabulary; anything else lands in the extension map without diagnostics.
func (p *parse) offerField(o *models.Offer, t token) error {
	switch t.name {
	case "name":
		return p.textInto(t, &o.Name)
	case "vendor":
		return p.textInto(t, &o.Vendor)
	case "vendorCode":
		return p.textInto(t, &o.VendorCode)
	case "model":
		return p.textInto(t, &o.Model)
	case "url":
		return p.textInto(t, &o.URL)
	case "available":
		// usually an offer attribute, but some feeds write it as an element
		return p.readTriBool(t, &o.Available)
	case "picture":
		s, err := p.readText(t)
		if err != nil {
			return err
		}
		if s != "" {
			o.Pictures = append(o.Pictures, s)
		}
	case "barcode":
		s, err := p.readText(t)
		if err != nil {
			return err
		}
		if s != "" {
			o.Barcodes = append(o.Barcodes, s)
		}
	case "price":
		pr, err := p.readPrice(t)
		if err != nil {
			return err
		}
		if pr != nil {
			o.Price = pr
		}
	case "oldprice":
		pr, err := p.readPrice(t)
		if err != nil {
			return err
		}
		if pr != nil {
			o.OldPrice = pr
		}
	case "currencyId":
		return p.textInto(t, &o.CurrencyID)
	case "categoryId":
		return p.readUint64(t, &o.CategoryID)
	case "description":
		return p.textInto(t, &o.Description)
	case "sales_notes":
		return p.textInto(t, &o.SalesNotes)
	case "delivery":
		return p.readTriBool(t, &o.Delivery)
	case "pickup":
		return p.readTriBool(t, &o.Pickup)
	case "store":
		return p.readTriBool(t, &o.Store)
	case "downloadable":
		return p.readBool(t, &o.Downloadable)
	case "enable_auto_discounts":
		return p.readBool(t, &o.EnableAutoDiscounts)
	case "manufacturer_warranty":
		return p.readBool(t, &o.ManufacturerWarranty)
	case "adult":
		return p.readBool(t, &o.Adult)
	case "param":
		return p.parseParam(o, t)
	case "condition":
		return p.parseCondition(o, t)
	case "credit-template":
		if v, ok := t.attr("id"); ok {
			o.CreditTemplateID = strings.TrimSpace(v)
		}
		return p.skipElement(t)
	case "country_of_origin":
		return p.textInto(t, &o.CountryOfOrigin)
	case "weight":
		return p.readFloat32(t, &o.Weight)
	case "dimensions":
		return p.textInto(t, &o.Dimensions)
	case "expiry":
		return p.textInto(t, &o.Expiry)
	case "min-quantity":
		return p.readOptUint32(t, &o.MinQuantity)
	case "group_id":
		return p.readUint32(t, &o.GroupID)
	case "age":
		return p.parseAge(o, t)
	case "delivery-options":
		opts, err := p.parseOptions(t)
		if err != nil {
			return err
		}
		o.DeliveryOptions = opts
	case "pickup-options":
		opts, err := p.parseOptions(t)
		if err != nil {
			return err
		}
		o.PickupOptions = opts
	default:
		s, err := p.readText(t)
		if err != nil {
			return err
		}
		if o.Extra == nil {
			o.Extra = map[string][]string{}
		}
		o.Extra[t.name] = append(o.Extra[t.name], s)
	}
	return nil
}

func (p *parse) parseParam(o *models.Offer, t token) error {
	param := models.Param{}
	if v, ok := t.attr("name"); ok {
		param.Name = v
	}
	if v, ok := t.attr("unit"); ok {
		param.Unit = v
	}
	if id, ok := p.uintAttr(t, "id", 64); ok {
		param.ParamID = &id
	}
	if vid, ok := p.uintAttr(t, "valueId", 64); ok {
		param.ValueID = &vid
	}
	value, err := p.readText(t)
	if err != nil {
		return err
	}
	param.Value = value
	o.Params = append(o.Params, param)
	return nil
}

func (p *parse) parseCondition(o *models.Offer, t token) error {
	cond := &models.Condition{}
	if v, ok := t.attr("type"); ok {
		cond.Type = v
	}
	if !t.selfClosing {
	children:
		for {
			ct, err := p.tok.next()
			if err != nil {
				return p.streamFailed(err)
			}
			switch ct.kind {
			case tokenOpen:
				if ct.name == "reason" {
					if err := p.textInto(ct, &cond.Reason); err != nil {
						return err
					}
					continue
				}
				p.errs.add(models.UnrecognizedField, ct.line, ct.col, "unrecognized element <"+ct.name+"> in <condition>", "")
				if err := p.skipElement(ct); err != nil {
					return err
				}
			case tokenClose:
				if ct.name == "condition" {
					break children
				}
			case tokenEOF:
				break children
			}
		}
	}
	o.Condition = cond
	return nil
}

func (p *parse) parseAge(o *models.Offer, t token) error {
	age := models.Age{Unit: "year"}
	if v, ok := t.attr("unit"); ok {
		age.Unit = v
	}
	s, err := p.readText(t)
	if err != nil {
		return err
	}
	n, ok := parseUint(s, 32)
	if !ok {
		p.errs.add(models.TypeMismatch, t.line, t.col, "element <age> is not a valid number", s)
		return nil
	}
	age.Value = uint32(n)
	o.Age = &age
	return nil
}
