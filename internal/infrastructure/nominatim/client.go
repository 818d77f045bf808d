// Package nominatim реализует прямое геокодирование через Nominatim.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/config"
	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
)

type client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создает геокодер поверх Nominatim
func NewClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocodeRepository {
	return &client{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
}

func (c *client) Forward(ctx context.Context, query string, box domain.BoundingBox, limit int) ([]domain.Place, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	// viewbox задается как left,top,right,bottom
	params.Set("viewbox", fmt.Sprintf("%f,%f,%f,%f", box.MinLon, box.MaxLat, box.MaxLon, box.MinLat))
	params.Set("bounded", "1")

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Geocode request failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("Geocode request returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("geocode request status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	places := make([]domain.Place, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			c.logger.Warn("Skipping geocode result with bad coordinates",
				zap.String("name", r.DisplayName))
			continue
		}
		places = append(places, domain.Place{
			Name: r.DisplayName,
			Type: r.Type,
			Lat:  lat,
			Lng:  lon,
		})
	}

	c.logger.Debug("Geocode completed",
		zap.String("query", query),
		zap.Int("results", len(places)))

	return places, nil
}
