package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"galaxyassist/internal/adapter/repo/gorm/model"
	"galaxyassist/internal/app/ports"
	"galaxyassist/internal/domain/travel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NavigationRunRepo struct {
	db *gorm.DB
}

func NewNavigationRunRepo(db *gorm.DB) NavigationRunRepo {
	return NavigationRunRepo{db: db}
}

func (r NavigationRunRepo) Save(ctx context.Context, run ports.NavigationRunRecord) error {
	legs, err := json.Marshal(run.Legs)
	if err != nil {
		return fmt.Errorf("encode legs: %w", err)
	}
	row := model.NavigationRun{
		RunID:         run.RunID,
		AgentID:       run.AgentID,
		FromPlanet:    run.From.Planet,
		FromCity:      run.From.City,
		ToPlanet:      run.To.Planet,
		ToCity:        run.To.City,
		Legs:          legs,
		CompletedLegs: int32(run.CompletedLegs),
		Status:        string(run.Status),
		Error:         run.Error,
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r NavigationRunRepo) ListByAgentID(ctx context.Context, agentID string, limit int) ([]ports.NavigationRunRecord, error) {
	rows := []model.NavigationRun{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.NavigationRun{AgentID: agentID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "started_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.NavigationRunRecord, 0, len(rows))
	for _, row := range rows {
		legs := []travel.Leg{}
		if len(row.Legs) > 0 {
			_ = json.Unmarshal(row.Legs, &legs)
		}
		out = append(out, ports.NavigationRunRecord{
			RunID:         row.RunID,
			AgentID:       row.AgentID,
			From:          travel.Location{Planet: row.FromPlanet, City: row.FromCity},
			To:            travel.Location{Planet: row.ToPlanet, City: row.ToCity},
			Legs:          legs,
			CompletedLegs: int(row.CompletedLegs),
			Status:        ports.NavigationStatus(row.Status),
			Error:         row.Error,
			StartedAt:     row.StartedAt,
			FinishedAt:    row.FinishedAt,
		})
	}
	return out, nil
}
