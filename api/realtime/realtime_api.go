package realtime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"stocknet.GO/api"
	"stocknet.GO/config"
	inventoryEntity "stocknet.GO/model/entity/inventory"
	inventoryRepo "stocknet.GO/model/repository/inventory"
	inventoryService "stocknet.GO/service/inventory"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// LocationAvailability is one location's slice of the availability response.
type LocationAvailability struct {
	LocationID string `json:"locationId"`
	Available  int    `json:"available"`
	TotalStock int    `json:"totalStock"`
	Breached   bool   `json:"breached"`
}

// AvailabilityResponse is the network-wide availability for one product.
type AvailabilityResponse struct {
	ProductID string                 `json:"productId"`
	Total     int                    `json:"total"`
	Locations []LocationAvailability `json:"locations"`
}

var netOnce sync.Once
var netInstance *config.Network

func topology() *config.Network {
	netOnce.Do(func() { netInstance = config.LoadNetwork() })
	return netInstance
}

// getCryptKey returns the partner signing key from env
func getCryptKey() string {
	return config.GetEnv("PARTNER_CRYPT_KEY", "")
}

// verifyPartnerSignature validates HMAC-SHA256 signature using constant-time comparison
func verifyPartnerSignature(partnerID, signature, cryptKey string) bool {
	if cryptKey == "" || partnerID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(cryptKey))
	mac.Write([]byte(partnerID))
	expected := mac.Sum(nil)
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, sig)
}

// RegisterRealtimeRoutes sets up the low-latency availability probe used by
// storefronts and signed partner integrations.
func RegisterRealtimeRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/realtime")

	// GET /api/realtime/availability?productId=XXX
	// Optional partnerId+signature identify a signed partner request.
	g.GET("/availability", func(c echo.Context) error {
		start := time.Now()

		productID := c.QueryParam("productId")
		if productID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "productId is required"})
		}

		partner := ""
		if pid := c.QueryParam("partnerId"); pid != "" {
			if !verifyPartnerSignature(pid, c.QueryParam("signature"), getCryptKey()) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid partner signature"})
			}
			partner = pid
		}

		net := topology()
		locations := []string{net.CentralID}
		for _, wh := range net.Warehouses {
			locations = append(locations, wh.ID)
		}
		for _, stores := range net.RegionStores {
			locations = append(locations, stores...)
		}

		// One query per location, fanned out; missing rows are zero slots.
		results := make([]*LocationAvailability, len(locations))
		gr, ctx := errgroup.WithContext(c.Request().Context())
		for i, locationID := range locations {
			i, locationID := i, locationID
			gr.Go(func() error {
				rec, err := inventoryRepo.NewInventoryRepository(db.WithContext(ctx)).Get(productID, locationID)
				if errors.Is(err, inventoryEntity.ErrNotFound) {
					return nil
				}
				if err != nil {
					return err
				}
				ev := inventoryService.Evaluate(rec.TotalStock, rec.Available)
				results[i] = &LocationAvailability{
					LocationID: locationID,
					Available:  rec.Available,
					TotalStock: rec.TotalStock,
					Breached:   ev.Breached,
				}
				return nil
			})
		}
		if err := gr.Wait(); err != nil {
			return api.WriteError(c, err)
		}

		resp := AvailabilityResponse{ProductID: productID}
		for _, r := range results {
			if r == nil {
				continue
			}
			resp.Total += r.Available
			resp.Locations = append(resp.Locations, *r)
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		if partner != "" {
			c.Response().Header().Set("X-Partner", partner)
		}
		return c.JSON(http.StatusOK, resp)
	})
}
