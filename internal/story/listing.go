// Package story holds the narrative around the handheld: the marketplace
// listing, the scripted chat with the seller and the delivery interlude.
// Timed parts run on a sched.Scheduler.
package story

// Marketplace copy.
const (
	Brand        = "BayLike"
	BrandTagline = "Secure • Buyer Protection"
	SellerName   = "Emilia"
	SellerFull   = "Emilia Smith"
	ItemModel    = "W1‑SH"
	ListingTitle = "W1‑SH Handheld Computer (late 1990s)"
	ListingID    = "Ad • ID BL‑7421"
	Price        = "$50"
	Condition    = "Used · Working"
	Description  = "Vintage handheld computer W1‑SH from the late 1990s. Includes 2×AA batteries. " +
		"Screen powers on and the device should work. No manual available; seller has limited technical details."
	SellerNote = "This device belonged to a family member; technical details are limited."
	Protection = "Your purchase is protected by BayLike. If the item arrives not as described, you can request a refund."
	Footer     = "© 2030 BayLike — All rights reserved"

	BuyNowLabel        = "Buy Now"
	MessageSellerLabel = "Message Seller"
	BootLabel          = "Boot it up!"
)

// Detail is one row of the item details table.
type Detail struct {
	Name, Value string
}

// ItemDetails lists the listing's item details in display order.
var ItemDetails = []Detail{
	{"Model", "W1‑SH"},
	{"Era", "Late 1990s"},
	{"Condition", "Used — should work"},
	{"Power", "2×AA batteries (included)"},
	{"Manual", "Not included"},
	{"Known specs", "Unknown/undocumented"},
}
