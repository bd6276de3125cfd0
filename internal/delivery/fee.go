// Package delivery computes delivery charges from the shop's fixed location
// and tracks the courier's last reported position.
package delivery

import (
	"math"

	"github.com/shopspring/decimal"
)

const earthRadiusKM = 6371.0

// freeRadiusKM is the distance the shop delivers at no charge.
const freeRadiusKM = 1.0

type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsZero reports whether the coordinate pair is unset. The storefront sends
// (0,0) when the customer denied the browser location prompt.
func (c Coord) IsZero() bool { return c.Lat == 0 && c.Lon == 0 }

// Distance returns the great-circle distance between a and b in kilometers.
func Distance(a, b Coord) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKM * 2 * math.Asin(math.Sqrt(h))
}

// Calculator prices delivery against a fixed origin.
type Calculator struct {
	Origin    Coord
	Base      decimal.Decimal // flat charge when the destination is unknown
	RatePerKM decimal.Decimal // charged per km beyond the free radius
}

func NewCalculator(origin Coord, base, ratePerKM string) Calculator {
	b, err := decimal.NewFromString(base)
	if err != nil {
		b = decimal.NewFromInt(40)
	}
	r, err := decimal.NewFromString(ratePerKM)
	if err != nil {
		r = decimal.NewFromInt(3)
	}
	return Calculator{Origin: origin, Base: b, RatePerKM: r}
}

// Quote returns the delivery fee and the grand total for an order going to
// dest. An unset destination falls back to the flat base charge; within the
// free radius delivery costs nothing.
func (c Calculator) Quote(dest Coord, subtotal decimal.Decimal) (fee, total decimal.Decimal) {
	fee = c.Base
	if !dest.IsZero() {
		km := Distance(c.Origin, dest)
		if km <= freeRadiusKM {
			fee = decimal.Zero
		} else {
			fee = decimal.NewFromFloat(km - freeRadiusKM).Mul(c.RatePerKM).Round(2)
		}
	}
	return fee, subtotal.Add(fee)
}

// Fallback is the degraded answer when the quote request itself is broken:
// the base charge on top of whatever subtotal could still be read. Delivery
// pricing is supplementary to checkout and must not fail it.
func (c Calculator) Fallback(subtotal decimal.Decimal) (fee, total decimal.Decimal) {
	return c.Base, subtotal.Add(c.Base)
}
