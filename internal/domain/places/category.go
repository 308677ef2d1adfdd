package places

const (
	CategoryShrine        = "shrine"
	CategoryTemple        = "temple"
	CategoryMuseum        = "museum"
	CategoryRestaurant    = "restaurant"
	CategoryCafe          = "cafe"
	CategoryBar           = "bar"
	CategoryNightlife     = "nightlife"
	CategoryShopping      = "shopping"
	CategoryMarket        = "market"
	CategoryPark          = "park"
	CategoryGarden        = "garden"
	CategoryViewpoint     = "viewpoint"
	CategoryNature        = "nature"
	CategoryLandmark      = "landmark"
	CategoryWellness      = "wellness"
	CategoryAquarium      = "aquarium"
	CategoryZoo           = "zoo"
	CategoryEntertainment = "entertainment"
	CategoryHistoric      = "historic"
)
