package decoder

import (
	"fmt"

	"github.com/ayakovlev/market-feed-parser/internal/platform/models"
)

func (p *parse) parseShop(open token) (*models.Shop, error) {
	shop := &models.Shop{}
	if open.selfClosing {
		return p.finishShop(shop, open)
	}
	for {
		t, err := p.tok.next()
		if err != nil {
			return nil, p.streamFailed(err)
		}
		switch t.kind {
		case tokenOpen:
			if err := p.shopField(shop, t); err != nil {
				return nil, err
			}
		case tokenClose:
			if t.name == "shop" {
				return p.finishShop(shop, open)
			}
		case tokenEOF:
			return p.finishShop(shop, open)
		}
	}
}

func (p *parse) shopField(shop *models.Shop, t token) error {
	switch t.name {
	case "name":
		return p.textInto(t, &shop.Name)
	case "company":
		return p.textInto(t, &shop.Company)
	case "url":
		return p.textInto(t, &shop.URL)
	case "platform":
		return p.textInto(t, &shop.Platform)
	case "version":
		return p.textInto(t, &shop.Version)
	case "agency":
		return p.textInto(t, &shop.Agency)
	case "email":
		return p.textInto(t, &shop.Email)
	case "currencies":
		return p.parseCurrencies(shop, t)
	case "categories":
		return p.parseCategories(shop, t)
	case "delivery-options":
		opts, err := p.parseOptions(t)
		if err != nil {
			return err
		}
		shop.DeliveryOptions = opts
	case "pickup-options":
		opts, err := p.parseOptions(t)
		if err != nil {
			return err
		}
		shop.PickupOptions = opts
	case "offers":
		return p.parseOffers(t, true)
	default:
		p.errs.add(models.UnrecognizedField, t.line, t.col, "unrecognized shop element <"+t.name+">", "")
		return p.skipElement(t)
	}
	return nil
}

// finishShop reports the required fields a shop block left empty. In strict
// mode the shop is rejected instead.
func (p *parse) finishShop(shop *models.Shop, open token) (*models.Shop, error) {
	missing := false
	for _, f := range []struct{ name, value string }{
		{"name", shop.Name},
		{"company", shop.Company},
		{"url", shop.URL},
	} {
		if f.value == "" {
			missing = true
			p.errs.add(models.MissingRequiredField, open.line, open.col, "shop is missing required element <"+f.name+">", "")
		}
	}
	if missing && p.cfg.StrictShop {
		return nil, fmt.Errorf("shop at line %d, column %d: %w", open.line, open.col, ErrShopInvalid)
	}
	return shop, nil
}

func (p *parse) parseCurrencies(shop *models.Shop, open token) error {
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
			if t.name != "currency" {
				p.errs.add(models.UnrecognizedField, t.line, t.col, "unrecognized element <"+t.name+"> in <currencies>", "")
				if err := p.skipElement(t); err != nil {
					return err
				}
				continue
			}
			cur := models.Currency{}
			if v, ok := t.attr("id"); ok {
				cur.ID = v
			}
			if v, ok := t.attr("rate"); ok {
				cur.Rate = v
			}
			if v, ok := t.attr("plus"); ok {
				cur.Plus = v
			}
			shop.Currencies = append(shop.Currencies, cur)
			if err := p.skipElement(t); err != nil {
				return err
			}
		case tokenClose:
			if t.name == "currencies" {
				return nil
			}
		case tokenEOF:
			return nil
		}
	}
}

func (p *parse) parseCategories(shop *models.Shop, open token) error {
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
			if t.name != "category" {
				p.errs.add(models.UnrecognizedField, t.line, t.col, "unrecognized element <"+t.name+"> in <categories>", "")
				if err := p.skipElement(t); err != nil {
					return err
				}
				continue
			}
			cat := models.Category{}
			if id, ok := p.uintAttr(t, "id", 64); ok {
				cat.ID = id
			}
			if pid, ok := p.uintAttr(t, "parentId", 64); ok {
				cat.ParentID = &pid
			}
			name, err := p.readText(t)
			if err != nil {
				return err
			}
			cat.Name = name
			shop.Categories = append(shop.Categories, cat)
		case tokenClose:
			if t.name == "categories" {
				return nil
			}
		case tokenEOF:
			return nil
		}
	}
}

// parseOptions reads a delivery-options or pickup-options list.
func (p *parse) parseOptions(open token) ([]models.DeliveryOption, error) {
	if open.selfClosing {
		return nil, nil
	}
	var opts []models.DeliveryOption
	for {
		t, err := p.tok.next()
		if err != nil {
			return opts, p.streamFailed(err)
		}
		switch t.kind {
		case tokenOpen:
			if t.name != "option" {
				p.errs.add(models.UnrecognizedField, t.line, t.col, "unrecognized element <"+t.name+"> in <"+open.name+">", "")
				if err := p.skipElement(t); err != nil {
					return opts, err
				}
				continue
			}
			opt := models.DeliveryOption{}
			if cost, ok := p.uintAttr(t, "cost", 32); ok {
				opt.Cost = uint32(cost)
			}
			if v, ok := t.attr("days"); ok {
				opt.Days = v
			}
			opt.OrderBefore = p.hourAttr(t, "order-before")
			opts = append(opts, opt)
			if err := p.skipElement(t); err != nil {
				return opts, err
			}
		case tokenClose:
			if t.name == open.name {
				return opts, nil
			}
		case tokenEOF:
			return opts, nil
		}
	}
}
