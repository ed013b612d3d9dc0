package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const priceListDoc = `{
  "product": {"attributes": {"instanceType": "m5.large"}},
  "terms": {
    "OnDemand": {
      "SKU123.JRTCKXETXF": {
        "priceDimensions": {
          "SKU123.JRTCKXETXF.6YS6EN2CT7": {
            "unit": "Hrs",
            "pricePerUnit": {"USD": "0.0960000000"}
          }
        }
      }
    }
  }
}`

func TestExtractOnDemandPrice(t *testing.T) {
	price, err := ExtractOnDemandPrice(priceListDoc)
	require.NoError(t, err)
	require.InDelta(t, 0.096, price, 1e-9)
}

func TestExtractOnDemandPriceMissingTerms(t *testing.T) {
	_, err := ExtractOnDemandPrice(`{"product": {}}`)
	require.ErrorContains(t, err, "terms")
}

func TestExtractOnDemandPriceMalformedJSON(t *testing.T) {
	_, err := ExtractOnDemandPrice(`{not json`)
	require.Error(t, err)
}

func TestNilClientReturnsNoPrices(t *testing.T) {
	var c *Client
	prices := c.OnDemandPrices(nil, []string{"m5.large"})
	require.Empty(t, prices)
}
