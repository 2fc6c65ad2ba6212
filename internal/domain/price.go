package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const notAvailable = "N/A"

// Metric is a provider value that may be missing. A missing metric is
// serialized as "N/A", never as 0 or null.
type Metric struct {
	Value     float64
	Available bool
}

func NewMetric(v float64) Metric {
	return Metric{Value: v, Available: true}
}

func MetricNotAvailable() Metric {
	return Metric{}
}

// MetricFromPointer treats nil as not available.
func MetricFromPointer(v *float64) Metric {
	if v == nil {
		return MetricNotAvailable()
	}
	return NewMetric(*v)
}

func (m Metric) String() string {
	if !m.Available {
		return notAvailable
	}
	return fmt.Sprintf("%g", m.Value)
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Available {
		return json.Marshal(notAvailable)
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = MetricNotAvailable()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != notAvailable {
			return fmt.Errorf("unexpected metric value %q", s)
		}
		*m = MetricNotAvailable()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("failed to parse metric: %w", err)
	}
	*m = NewMetric(v)
	return nil
}

// Quote is the normalized per-symbol view served to the dashboard.
type Quote struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Current   *float64 `json:"current"`
	Change    *float64 `json:"change"`
	Percent   *float64 `json:"percent"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	Volume    Metric   `json:"volume"`
	MarketCap Metric   `json:"marketCap"`
	PE        Metric   `json:"pe"`
}

// RawQuote keeps the provider's short field names, since clients read them as is.
type RawQuote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

type CompanyProfile struct {
	Ticker               string  `json:"ticker"`
	Name                 string  `json:"name"`
	Country              string  `json:"country,omitempty"`
	Currency             string  `json:"currency,omitempty"`
	Exchange             string  `json:"exchange,omitempty"`
	Industry             string  `json:"finnhubIndustry,omitempty"`
	Ipo                  string  `json:"ipo,omitempty"`
	Logo                 string  `json:"logo,omitempty"`
	MarketCapitalization float64 `json:"marketCapitalization,omitempty"`
	ShareOutstanding     float64 `json:"shareOutstanding,omitempty"`
	WebUrl               string  `json:"weburl,omitempty"`
}

type TradingMetrics struct {
	AverageVolume10Day *float64
	MarketCap          *float64
	PeRatio            *float64
}

type StockDetail struct {
	Quote   RawQuote       `json:"quote"`
	Profile CompanyProfile `json:"profile"`
}
