package config

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// TierDefaults are the capacity/threshold values applied when an inventory
// record is created lazily for an unseen (product, location) pair.
type TierDefaults struct {
	TotalStock   int `mapstructure:"totalStock"`
	MinThreshold int `mapstructure:"minThreshold"`
	MaxThreshold int `mapstructure:"maxThreshold"`
}

// Warehouse identifies one regional warehouse.
type Warehouse struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// Network describes the location topology of the retail network. It is built
// once at startup and passed explicitly into the services, so tests can
// substitute fixtures instead of reaching for package-level tables.
type Network struct {
	CentralID   string `mapstructure:"centralId"`
	CentralName string `mapstructure:"centralName"`

	// Warehouses maps region key (EAST, WEST, ...) to its regional warehouse.
	Warehouses map[string]Warehouse `mapstructure:"warehouses"`
	// RegionStores maps region key to the store IDs in that region.
	RegionStores map[string][]string `mapstructure:"regionStores"`

	StoreDefaults     TierDefaults `mapstructure:"storeDefaults"`
	WarehouseDefaults TierDefaults `mapstructure:"warehouseDefaults"`
	CentralDefaults   TierDefaults `mapstructure:"centralDefaults"`

	// SweepProducts are the SKUs covered by the scheduled warehouse sweep.
	SweepProducts []string `mapstructure:"sweepProducts"`
}

// DefaultNetwork returns the built-in four-region topology.
func DefaultNetwork() *Network {
	return &Network{
		CentralID:   "WH-CENTRAL",
		CentralName: "Central Warehouse",
		Warehouses: map[string]Warehouse{
			"EAST":  {ID: "WH-EAST", Name: "East Warehouse"},
			"WEST":  {ID: "WH-WEST", Name: "West Warehouse"},
			"NORTH": {ID: "WH-NORTH", Name: "North Warehouse"},
			"SOUTH": {ID: "WH-SOUTH", Name: "South Warehouse"},
		},
		RegionStores: map[string][]string{
			"EAST":  {"STORE-EAST-01", "STORE-EAST-02"},
			"WEST":  {"STORE-WEST-01", "STORE-WEST-02"},
			"NORTH": {"STORE-NORTH-01", "STORE-NORTH-02"},
			"SOUTH": {"STORE-SOUTH-01", "STORE-SOUTH-02"},
		},
		StoreDefaults:     TierDefaults{TotalStock: 200, MinThreshold: 60, MaxThreshold: 200},
		WarehouseDefaults: TierDefaults{TotalStock: 1000, MinThreshold: 100, MaxThreshold: 2000},
		CentralDefaults:   TierDefaults{TotalStock: 200, MinThreshold: 0, MaxThreshold: 500},
		SweepProducts:     []string{"PROD-001", "PROD-002", "PROD-003", "PROD-004", "PROD-005", "PROD-006"},
	}
}

// LoadNetwork builds the topology, applying overrides from the
// NETWORK_TOPOLOGY env var (JSON object, partial fields allowed).
func LoadNetwork() *Network {
	n := DefaultNetwork()
	raw := os.Getenv("NETWORK_TOPOLOGY")
	if raw == "" {
		return n
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		log.Printf("NETWORK_TOPOLOGY ignored: %v", err)
		return n
	}
	if err := mapstructure.Decode(m, n); err != nil {
		log.Printf("NETWORK_TOPOLOGY ignored: %v", err)
		return DefaultNetwork()
	}
	return n
}

// IsStore reports whether the location is a retail store.
func (n *Network) IsStore(locationID string) bool {
	return strings.HasPrefix(locationID, "STORE-")
}

// IsRegionalWarehouse reports whether the location is a regional warehouse.
func (n *Network) IsRegionalWarehouse(locationID string) bool {
	for _, wh := range n.Warehouses {
		if wh.ID == locationID {
			return true
		}
	}
	return false
}

// Region extracts the region key from a location ID (STORE-EAST-01 and
// WH-EAST both map to EAST). Empty when no region matches.
func (n *Network) Region(locationID string) string {
	for region := range n.Warehouses {
		if strings.Contains(locationID, region) {
			return region
		}
	}
	return ""
}

// WarehouseForStore resolves the regional warehouse serving a store.
func (n *Network) WarehouseForStore(storeID string) (Warehouse, bool) {
	if !n.IsStore(storeID) {
		return Warehouse{}, false
	}
	region := n.Region(storeID)
	wh, ok := n.Warehouses[region]
	return wh, ok
}

// SiblingStores returns the stores sharing a region with storeID, the given
// store first. Used by the shipment fallback search.
func (n *Network) SiblingStores(storeID string) []string {
	region := n.Region(storeID)
	stores, ok := n.RegionStores[region]
	if !ok {
		return []string{storeID}
	}
	out := []string{storeID}
	for _, s := range stores {
		if s != storeID {
			out = append(out, s)
		}
	}
	return out
}

// DefaultsFor returns the tier defaults for a location, keyed by its naming
// convention. Unknown locations are treated as central tier.
func (n *Network) DefaultsFor(locationID string) TierDefaults {
	switch {
	case n.IsStore(locationID):
		return n.StoreDefaults
	case n.IsRegionalWarehouse(locationID):
		return n.WarehouseDefaults
	default:
		return n.CentralDefaults
	}
}
