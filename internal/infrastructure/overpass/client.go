// Package overpass реализует поиск фонарей и инфраструктуры
// через Overpass API (OpenStreetMap).
package overpass

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	goverpass "github.com/serjvanilla/go-overpass"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/config"
	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
)

type client struct {
	api    *goverpass.Client
	logger *zap.Logger
}

// NewClient создает репозиторий инфраструктуры поверх Overpass API
func NewClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.FacilityRepository {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	api := goverpass.NewWithSettings(cfg.Endpoint, cfg.MaxRetries, httpClient)
	return &client{
		api:    &api,
		logger: logger,
	}
}

func (c *client) SearchStreetLamps(ctx context.Context, box domain.BoundingBox) ([]domain.StreetLamp, error) {
	query := fmt.Sprintf(
		`[out:json];node["highway"="street_lamp"](%s);out body;`,
		box.OverpassBBox(),
	)

	result, err := c.api.Query(query)
	if err != nil {
		c.logger.Error("Overpass street lamp query failed",
			zap.String("bbox", box.OverpassBBox()),
			zap.Error(err))
		return nil, fmt.Errorf("overpass lamp query: %w", err)
	}

	lamps := make([]domain.StreetLamp, 0, len(result.Nodes))
	for _, node := range result.Nodes {
		if node == nil {
			continue
		}
		lamps = append(lamps, domain.StreetLamp{
			ID:    strconv.FormatInt(node.ID, 10),
			Point: domain.Point{Lat: node.Lat, Lon: node.Lon},
		})
	}

	c.logger.Debug("Street lamps fetched from Overpass",
		zap.String("bbox", box.OverpassBBox()),
		zap.Int("count", len(lamps)))

	return lamps, nil
}

func (c *client) SearchFacilities(ctx context.Context, kind domain.FacilityKind, box domain.BoundingBox) ([]domain.Facility, error) {
	amenity, ok := amenityForKind(kind)
	if !ok {
		return nil, fmt.Errorf("unsupported facility kind: %s", kind)
	}

	query := fmt.Sprintf(
		`[out:json];(node["amenity"="%s"](%s);way["amenity"="%s"](%s););out body;>;out skel qt;`,
		amenity, box.OverpassBBox(), amenity, box.OverpassBBox(),
	)

	result, err := c.api.Query(query)
	if err != nil {
		c.logger.Error("Overpass facility query failed",
			zap.String("amenity", amenity),
			zap.String("bbox", box.OverpassBBox()),
			zap.Error(err))
		return nil, fmt.Errorf("overpass facility query: %w", err)
	}

	facilities := make([]domain.Facility, 0, len(result.Nodes)+len(result.Ways))

	for _, node := range result.Nodes {
		if node == nil || node.Tags["amenity"] != amenity {
			continue
		}
		facilities = append(facilities, domain.Facility{
			ID:        strconv.FormatInt(node.ID, 10),
			Name:      node.Tags["name"],
			Kind:      kind,
			Point:     domain.Point{Lat: node.Lat, Lon: node.Lon},
			Phone:     node.Tags["phone"],
			Emergency: node.Tags["emergency"] == "yes",
		})
	}

	for _, way := range result.Ways {
		if way == nil || way.Tags["amenity"] != amenity || len(way.Nodes) == 0 {
			continue
		}
		// Для зданий берем центроид контура
		var lat, lon float64
		n := 0
		for _, node := range way.Nodes {
			if node == nil {
				continue
			}
			lat += node.Lat
			lon += node.Lon
			n++
		}
		if n == 0 {
			continue
		}
		facilities = append(facilities, domain.Facility{
			ID:        "way/" + strconv.FormatInt(way.ID, 10),
			Name:      way.Tags["name"],
			Kind:      kind,
			Point:     domain.Point{Lat: lat / float64(n), Lon: lon / float64(n)},
			Phone:     way.Tags["phone"],
			Emergency: way.Tags["emergency"] == "yes",
		})
	}

	c.logger.Debug("Facilities fetched from Overpass",
		zap.String("amenity", amenity),
		zap.Int("count", len(facilities)))

	return facilities, nil
}

func amenityForKind(kind domain.FacilityKind) (string, bool) {
	switch kind {
	case domain.FacilityHospital:
		return "hospital", true
	case domain.FacilityPolice:
		return "police", true
	default:
		return "", false
	}
}
