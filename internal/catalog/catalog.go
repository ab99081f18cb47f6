package catalog

import "hsa-ledger/internal/models"

// Catalog holds the static merchant set and the allowlist of merchant
// category codes eligible for HSA spend. Fixed at startup, read-only.
type Catalog struct {
	merchants []models.Merchant
	byID      map[int64]models.Merchant
	qualified map[string]struct{}
}

// MCC reference: 5912 drug stores/pharmacies, 8021 dentists/orthodontists,
// 8042 optometrists/ophthalmologists, 5411 grocery.
var defaultMerchants = []models.Merchant{
	{ID: 1, Name: "CVS Pharmacy", MCC: "5912", Category: "Pharmacy"},
	{ID: 2, Name: "Freeman Dental", MCC: "8021", Category: "Dental"},
	{ID: 3, Name: "Vision Center", MCC: "8042", Category: "Optometry"},
	{ID: 4, Name: "Walmart", MCC: "5411", Category: "Grocery"},
	{ID: 5, Name: "City Hospital", MCC: "8062", Category: "Hospital"},
	{ID: 6, Name: "Family Clinic", MCC: "8011", Category: "Physician"},
	{ID: 7, Name: "Back Care Chiropractic", MCC: "8041", Category: "Chiropractor"},
	{ID: 8, Name: "Quest Diagnostics", MCC: "8071", Category: "Lab Tests"},
	{ID: 9, Name: "EMS Ambulance", MCC: "4119", Category: "Ambulance"},
	{ID: 10, Name: "BlueShield Insurance", MCC: "6300", Category: "Insurance"},
	{ID: 11, Name: "Amazon.com", MCC: "5942", Category: "Online Retail"},
	{ID: 12, Name: "Best Buy", MCC: "5732", Category: "Electronics"},
	{ID: 13, Name: "Whole Foods Market", MCC: "5411", Category: "Grocery"},
	{ID: 14, Name: "Target", MCC: "5411", Category: "General Retail"},
	{ID: 15, Name: "Planet Fitness", MCC: "7997", Category: "Gym Membership"},
}

var qualifiedMCCs = []string{
	"5912", "8021", "8042", "8011", "8062", "8041", "8071", "4119", "6300",
}

// New initializes the catalog with the preloaded merchant set
func New() *Catalog {
	c := &Catalog{
		merchants: defaultMerchants,
		byID:      make(map[int64]models.Merchant, len(defaultMerchants)),
		qualified: make(map[string]struct{}, len(qualifiedMCCs)),
	}
	for _, m := range defaultMerchants {
		c.byID[m.ID] = m
	}
	for _, mcc := range qualifiedMCCs {
		c.qualified[mcc] = struct{}{}
	}
	return c
}

// List returns all merchants in catalog order
func (c *Catalog) List() []models.Merchant {
	out := make([]models.Merchant, len(c.merchants))
	copy(out, c.merchants)
	return out
}

// FindByID retrieves a merchant by id
func (c *Catalog) FindByID(id int64) (models.Merchant, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// IsQualified reports whether a merchant category code is HSA-eligible
func (c *Catalog) IsQualified(mcc string) bool {
	_, ok := c.qualified[mcc]
	return ok
}
