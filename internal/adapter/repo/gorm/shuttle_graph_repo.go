package gormrepo

import (
	"context"
	"fmt"

	"galaxyassist/internal/adapter/repo/gorm/model"
	"galaxyassist/internal/domain/travel"

	"gorm.io/gorm"
)

type ShuttleGraphRepo struct {
	db *gorm.DB
}

func NewShuttleGraphRepo(db *gorm.DB) ShuttleGraphRepo {
	return ShuttleGraphRepo{db: db}
}

func (r ShuttleGraphRepo) LoadStops(ctx context.Context) ([]travel.ShuttleStop, error) {
	db := getDBFromCtx(ctx, r.db)

	stopRows := []model.ShuttleStop{}
	if err := db.Order("planet, position, id").Find(&stopRows).Error; err != nil {
		return nil, fmt.Errorf("load shuttle stops: %w", err)
	}
	routeRows := []model.ShuttleRoute{}
	if err := db.Order("from_planet, from_city, position, id").Find(&routeRows).Error; err != nil {
		return nil, fmt.Errorf("load shuttle routes: %w", err)
	}

	dests := map[travel.Location][]travel.Location{}
	for _, row := range routeRows {
		from := travel.Location{Planet: row.FromPlanet, City: row.FromCity}
		dests[from] = append(dests[from], travel.Location{Planet: row.ToPlanet, City: row.ToCity})
	}

	out := make([]travel.ShuttleStop, 0, len(stopRows))
	for _, row := range stopRows {
		loc := travel.Location{Planet: row.Planet, City: row.City}
		d := dests[loc]
		if d == nil {
			d = []travel.Location{}
		}
		out = append(out, travel.ShuttleStop{
			Planet:       row.Planet,
			City:         row.City,
			Coordinates:  travel.Point{X: int(row.X), Y: int(row.Y)},
			Destinations: d,
		})
	}
	return out, nil
}

// ReplaceStops swaps the stored network for stops inside one transaction.
func (r ShuttleGraphRepo) ReplaceStops(ctx context.Context, stops []travel.ShuttleStop) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.ShuttleRoute{}).Error; err != nil {
			return fmt.Errorf("clear shuttle routes: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&model.ShuttleStop{}).Error; err != nil {
			return fmt.Errorf("clear shuttle stops: %w", err)
		}
		if len(stops) == 0 {
			return nil
		}
		stopRows := make([]model.ShuttleStop, 0, len(stops))
		routeRows := []model.ShuttleRoute{}
		perPlanet := map[string]int32{}
		for _, s := range stops {
			stopRows = append(stopRows, model.ShuttleStop{
				Planet:   s.Planet,
				City:     s.City,
				X:        int32(s.Coordinates.X),
				Y:        int32(s.Coordinates.Y),
				Position: perPlanet[s.Planet],
			})
			perPlanet[s.Planet]++
			for i, d := range s.Destinations {
				routeRows = append(routeRows, model.ShuttleRoute{
					FromPlanet: s.Planet,
					FromCity:   s.City,
					ToPlanet:   d.Planet,
					ToCity:     d.City,
					Position:   int32(i),
				})
			}
		}
		if err := tx.Create(&stopRows).Error; err != nil {
			return fmt.Errorf("insert shuttle stops: %w", err)
		}
		if len(routeRows) > 0 {
			if err := tx.Create(&routeRows).Error; err != nil {
				return fmt.Errorf("insert shuttle routes: %w", err)
			}
		}
		return nil
	})
}
