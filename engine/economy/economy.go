// Package economy implements merchant pricing and transaction validation.
// Business-rule rejections come back as sentinel errors, never panics; the
// front ends render them and re-prompt.
package economy

import (
	"errors"

	"github.com/okrause/emberfell/engine/entity"
	"github.com/okrause/emberfell/types"
)

var (
	// ErrInsufficientFunds rejects a purchase the buyer cannot afford.
	ErrInsufficientFunds = errors.New("not enough gold")
	// ErrNotOwned rejects selling an item that is not in the inventory.
	ErrNotOwned = errors.New("item not in inventory")
)

// BuyPrice returns the shop price for an item: a category-keyed multiplier
// on its power.
func BuyPrice(it types.Item) int {
	switch it.Kind {
	case types.KindWeapon:
		return it.Power * 15
	case types.KindArmor:
		return it.Power * 12
	case types.KindPotion:
		return it.Power * 2
	default:
		return it.Power * 10
	}
}

// SellPrice returns what a merchant pays for an item: half the buy price,
// rounded down.
func SellPrice(it types.Item) int {
	return BuyPrice(it) / 2
}

// Buy deducts the buy price and adds the item to the buyer's inventory.
// Shop stock is a catalog of templates and is never depleted. Fails with
// ErrInsufficientFunds leaving gold and inventory untouched.
func Buy(buyer *entity.Combatant, it types.Item) (int, error) {
	price := BuyPrice(it)
	if buyer.Gold < price {
		return price, ErrInsufficientFunds
	}
	buyer.Gold -= price
	buyer.AddItem(it)
	return price, nil
}

// Sell removes the item from the seller's inventory and credits the sell
// price. Fails with ErrNotOwned if the item is not held.
func Sell(seller *entity.Combatant, it types.Item) (int, error) {
	if !seller.HasItem(it) {
		return 0, ErrNotOwned
	}
	price := SellPrice(it)
	seller.Gold += price
	seller.RemoveItem(it)
	return price, nil
}
