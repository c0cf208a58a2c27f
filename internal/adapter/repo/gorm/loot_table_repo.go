package gormrepo

import (
	"context"
	"strings"

	"galaxyassist/internal/adapter/repo/gorm/model"
	"galaxyassist/internal/app/ports"

	"gorm.io/gorm"
)

type LootTableRepo struct {
	db *gorm.DB
}

func NewLootTableRepo(db *gorm.DB) LootTableRepo {
	return LootTableRepo{db: db}
}

func (r LootTableRepo) LootForMob(ctx context.Context, mobName string) ([]string, error) {
	rows := []model.MobLoot{}
	err := getDBFromCtx(ctx, r.db).
		Where("mob_name = ?", strings.ToLower(strings.TrimSpace(mobName))).
		Order("position, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Item)
	}
	return out, nil
}
