package entities

// Catalog is the static category -> sub-category table. It is constructed once
// at startup and injected into the components that validate against it; it is
// never mutated afterwards.
type Catalog struct {
	order         []string
	subCategories map[string][]string
}

// NewCatalog builds the ten-category marketplace catalog.
func NewCatalog() *Catalog {
	c := &Catalog{subCategories: make(map[string][]string)}

	add := func(name string, subs ...string) {
		c.order = append(c.order, name)
		c.subCategories[name] = subs
	}

	add("Vehicles",
		"Cars", "Motorbikes", "Three Wheelers", "Bicycles", "Vans",
		"Buses & Lorries", "Vans, Buses, Lorries & Trucks", "Trucks",
		"Heavy Machinery & Tractors", "Heavy Duty", "Tractors",
		"Auto Services", "Rentals", "Auto Parts & Accessories",
		"Maintenance and Repair", "Boats & Water Transport")
	add("Property",
		"Land", "Houses For Sale", "House Rentals", "Room & Annex Rentals",
		"Houses", "Apartments", "New Developments", "Commercial Property")
	add("Electronics",
		"Mobile Phones", "Mobile Phone Accessories", "Computers & Tablets",
		"Computer Accessories", "TVs", "TV & Video Accessories",
		"Cameras & Camcorders", "Audio & MP3", "Electronic Home Appliances",
		"Air Conditions & Electrical fittings", "Video Games & Consoles",
		"Other Electronics")
	add("Home & Garden",
		"Furniture", "Home Appliances", "Bathroom & Sanitary ware",
		"Building Material & Tools", "Garden", "Home Decor", "Kitchen items",
		"Electricity, AC, Bathroom & Garden", "Other Home Items")
	add("Fashion & Beauty",
		"Bags & Luggage", "Clothing", "Shoes & Footwear", "Jewellery",
		"Sunglasses & Opticians", "Watches", "Other Fashion Accessories",
		"Beauty Products")
	add("Animals",
		"Pets", "Pet Food", "Veterinary Services", "Farm Animals",
		"Animal Accessories", "Other Animals")
	add("Hobby, Sport & Kids",
		"Musical Instruments", "Sports & Fitness", "Sports Supplements",
		"Travel", "Events & Tickets", "Art & Collectibles",
		"Music, Books & Movies", "Children's Items",
		"Other Hobby, Sport & Kids Items")
	add("Business & Industry",
		"Service", "Solar & Generators")
	add("Education",
		"Higher Education", "Textbooks", "Tuition", "Vocational Institutes",
		"Other Education")
	add("Agriculture",
		"Food", "Crops", "Seeds & Plants", "Other Agriculture")

	return c
}

// Categories returns the category names in catalog order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// SubCategories returns the sub-category labels of a category, or nil if the
// category does not exist.
func (c *Catalog) SubCategories(category string) []string {
	return c.subCategories[category]
}

// HasCategory reports whether the category exists.
func (c *Catalog) HasCategory(category string) bool {
	_, ok := c.subCategories[category]
	return ok
}

// IsValid reports whether the category/sub-category pair exists in the catalog.
func (c *Catalog) IsValid(category, subCategory string) bool {
	subs, ok := c.subCategories[category]
	if !ok {
		return false
	}
	for _, s := range subs {
		if s == subCategory {
			return true
		}
	}
	return false
}

// AsMap returns the full catalog keyed by category name, for the categories
// endpoint.
func (c *Catalog) AsMap() map[string][]string {
	out := make(map[string][]string, len(c.order))
	for name, subs := range c.subCategories {
		cp := make([]string, len(subs))
		copy(cp, subs)
		out[name] = cp
	}
	return out
}
