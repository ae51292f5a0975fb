package zones

var defaultZones = []Zone{
	// Basic swap academies sit in towns
	{X: 15, Y: 35, Type: TypeSwap, Icon: "🏛️", Name: "Crypto Capital", Description: "Basic Swap Academy. Trade your first tokens under the guild's watch.", Action: "swap"},
	{X: 34, Y: 14, Type: TypeSwap, Icon: "🏪", Name: "Northern Bazaar", Description: "Merchants swap stablecoins for a handful of copper.", Action: "swap"},
	{X: 50, Y: 50, Type: TypeSwap, Icon: "🏦", Name: "Central Exchange", Description: "The busiest swap counter in the realm.", Action: "swap"},
	{X: 24, Y: 68, Type: TypeSwap, Icon: "⚓", Name: "Harbor Market", Description: "Sailors swap whatever washes ashore.", Action: "swap"},
	{X: 66, Y: 40, Type: TypeSwap, Icon: "🏘️", Name: "Eastgate Village", Description: "A quiet village with a fair swap rate.", Action: "swap"},
	{X: 4, Y: 4, Type: TypeSwap, Icon: "🛖", Name: "Frontier Outpost", Description: "The last swap desk before the wilds.", Action: "swap"},
	{X: 58, Y: 8, Type: TypeSwap, Icon: "⛏️", Name: "Miners' Exchange", Description: "Swap ore tokens for something shinier.", Action: "swap"},
	{X: 44, Y: 74, Type: TypeSwap, Icon: "🐪", Name: "Oasis Trading Post", Description: "Caravans stop here to rebalance their packs.", Action: "swap"},
	{X: 30, Y: 30, Type: TypeSwap, Icon: "🌾", Name: "Farmers' Swap", Description: "Harvest yields traded by the bushel.", Action: "swap"},
	{X: 70, Y: 20, Type: TypeSwap, Icon: "🗻", Name: "Summit Kiosk", Description: "Thin air, thin spreads.", Action: "swap"},

	// Advanced multi-route swaps
	{X: 12, Y: 20, Type: TypeAdvancedSwap, Icon: "🧭", Name: "Pathfinder Guild", Description: "Split a trade across many routes to find the best return.", Action: "advanced-swap"},
	{X: 38, Y: 25, Type: TypeAdvancedSwap, Icon: "🔀", Name: "Crossroads Router", Description: "Every road leads to a better price.", Action: "advanced-swap"},
	{X: 64, Y: 30, Type: TypeAdvancedSwap, Icon: "🌉", Name: "Bridge of Routes", Description: "Liquidity flows across the river here.", Action: "advanced-swap"},
	{X: 20, Y: 55, Type: TypeAdvancedSwap, Icon: "🌲", Name: "Forest Aggregator", Description: "Druids gather liquidity from every grove.", Action: "advanced-swap"},
	{X: 55, Y: 60, Type: TypeAdvancedSwap, Icon: "🗺️", Name: "Cartographers' Hall", Description: "Maps of every pool, updated by the hour.", Action: "advanced-swap"},
	{X: 74, Y: 55, Type: TypeAdvancedSwap, Icon: "🛤️", Name: "Rail Junction", Description: "Routes merge and diverge at speed.", Action: "advanced-swap"},
	{X: 26, Y: 8, Type: TypeAdvancedSwap, Icon: "🧪", Name: "Alchemist Tower", Description: "Transmute one token into another through many vessels.", Action: "advanced-swap"},
	{X: 48, Y: 38, Type: TypeAdvancedSwap, Icon: "🏜️", Name: "Dune Relay", Description: "Desert couriers relay orders across the sands.", Action: "advanced-swap"},

	// Limit orders
	{X: 8, Y: 30, Type: TypeLimitOrder, Icon: "📜", Name: "Scribe's Ledger", Description: "Write down your price and wait for the market to come to you.", Action: "limit-order"},
	{X: 22, Y: 44, Type: TypeLimitOrder, Icon: "⏳", Name: "Patience Shrine", Description: "Orders placed here are filled when the stars align.", Action: "limit-order"},
	{X: 45, Y: 12, Type: TypeLimitOrder, Icon: "🎯", Name: "Marksman's Range", Description: "Set your target price and hold steady.", Action: "limit-order"},
	{X: 60, Y: 45, Type: TypeLimitOrder, Icon: "📌", Name: "Order Board", Description: "Pin a maker order for passing traders.", Action: "limit-order"},
	{X: 33, Y: 62, Type: TypeLimitOrder, Icon: "🕰️", Name: "Clocktower", Description: "Orders expire when the bell tolls.", Action: "limit-order"},
	{X: 68, Y: 66, Type: TypeLimitOrder, Icon: "🧾", Name: "Merchant Guild Hall", Description: "The guild honours every signed order.", Action: "limit-order"},
	{X: 14, Y: 74, Type: TypeLimitOrder, Icon: "🪙", Name: "Mint Quarter", Description: "Fresh coins for those who can wait.", Action: "limit-order"},
	{X: 52, Y: 28, Type: TypeLimitOrder, Icon: "🔭", Name: "Observatory", Description: "Watch the price from afar and strike at the right moment.", Action: "limit-order"},

	// Bosses guard the castles
	{X: 40, Y: 40, Type: TypeBoss, Icon: "🐉", Name: "Gas Dragon", Description: "A beast that feeds on failed transactions. Beat it with a perfect route.", Action: "boss-battle"},
	{X: 75, Y: 3, Type: TypeBoss, Icon: "👹", Name: "Slippage Ogre", Description: "It steals a little from every careless trade.", Action: "boss-battle"},
	{X: 3, Y: 75, Type: TypeBoss, Icon: "🧛", Name: "MEV Vampire", Description: "Drinks from the mempool at night.", Action: "boss-battle"},
	{X: 75, Y: 75, Type: TypeBoss, Icon: "💀", Name: "Rug Lich", Description: "The final guardian. Its liquidity vanishes when you look away.", Action: "boss-battle"},

	// Treasure chests
	{X: 2, Y: 40, Type: TypeChest, Icon: "🎁", Name: "Hidden Cache", Description: "Someone left an airdrop behind.", Action: "open-chest"},
	{X: 18, Y: 10, Type: TypeChest, Icon: "💰", Name: "Mountain Hoard", Description: "Gold glints between the rocks.", Action: "open-chest"},
	{X: 30, Y: 50, Type: TypeChest, Icon: "🧰", Name: "Tinker's Box", Description: "A toolbox full of spare gas.", Action: "open-chest"},
	{X: 42, Y: 4, Type: TypeChest, Icon: "💎", Name: "Crystal Vault", Description: "A gem worth a small fortune.", Action: "open-chest"},
	{X: 56, Y: 70, Type: TypeChest, Icon: "🏺", Name: "Desert Urn", Description: "Buried by a long-gone caravan.", Action: "open-chest"},
	{X: 62, Y: 16, Type: TypeChest, Icon: "🗝️", Name: "Lost Key Chest", Description: "The lock gave way long ago.", Action: "open-chest"},
	{X: 72, Y: 34, Type: TypeChest, Icon: "📦", Name: "Supply Crate", Description: "Fell off a merchant cart.", Action: "open-chest"},
	{X: 10, Y: 60, Type: TypeChest, Icon: "🪺", Name: "Druid Nest", Description: "Tokens tucked between the twigs.", Action: "open-chest"},
	{X: 36, Y: 78, Type: TypeChest, Icon: "🐚", Name: "Shore Shell", Description: "The tide brought something valuable.", Action: "open-chest"},
	{X: 78, Y: 48, Type: TypeChest, Icon: "🧳", Name: "Traveller's Pack", Description: "Abandoned at the edge of the world.", Action: "open-chest"},
}
