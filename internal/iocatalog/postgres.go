package iocatalog

import (
	"context"

	"github.com/gnames/gnsynth/internal/iodb"
	"github.com/gnames/gnsynth/internal/ioschema"
	"github.com/gnames/gnsynth/pkg/config"
	"github.com/gnames/gnsynth/pkg/db"
	"github.com/gnames/gnsynth/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pgStore struct {
	op     db.Operator
	gormDB *gorm.DB
}

func newPgStore(ctx context.Context, cfg *config.Config) (*pgStore, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	mgr := ioschema.NewManager(op)
	if err := mgr.Create(ctx); err != nil {
		op.Close()
		return nil, err
	}
	gormDB, err := mgr.DB()
	if err != nil {
		op.Close()
		return nil, err
	}
	return &pgStore{op: op, gormDB: gormDB}, nil
}

func (s *pgStore) reset(ctx context.Context, sourceIDs []string) error {
	err := s.gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&schema.ObservedProperty{}).Error
		if err != nil || len(sourceIDs) == 0 {
			return err
		}
		err = tx.Where("data_source_id IN ?", sourceIDs).
			Delete(&schema.AttributeMapping{}).Error
		if err != nil {
			return err
		}
		return tx.Where("id IN ?", sourceIDs).
			Delete(&schema.DataSource{}).Error
	})
	if err != nil {
		return StoreError("delete catalog rows", err)
	}
	return nil
}

func (s *pgStore) addDataSources(
	ctx context.Context,
	rows []schema.DataSource,
) error {
	if len(rows) == 0 {
		return nil
	}
	err := s.gormDB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rows).Error
	if err != nil {
		return StoreError("insert data sources", err)
	}
	return nil
}

func (s *pgStore) addVariables(
	ctx context.Context,
	rows []schema.ObservedProperty,
) ([]string, error) {
	var dups []string
	err := s.gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows[i])
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				dups = append(dups, rows[i].ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, StoreError("insert variables", err)
	}
	return dups, nil
}

func (s *pgStore) addMappings(
	ctx context.Context,
	rows []schema.AttributeMapping,
) ([]schema.AttributeMapping, error) {
	var dups []schema.AttributeMapping
	err := s.gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows[i])
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				dups = append(dups, rows[i])
			}
		}
		return nil
	})
	if err != nil {
		return nil, StoreError("insert attribute mappings", err)
	}
	return dups, nil
}

func (s *pgStore) variables(
	ctx context.Context,
	ids []string,
) ([]schema.ObservedProperty, error) {
	var res []schema.ObservedProperty
	q := s.gormDB.WithContext(ctx).Order("seq")
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	if err := q.Find(&res).Error; err != nil {
		return nil, StoreError("select variables", err)
	}
	return res, nil
}

func (s *pgStore) mappings(
	ctx context.Context,
	mq mappingQuery,
) ([]schema.AttributeMapping, error) {
	var res []schema.AttributeMapping
	q := s.gormDB.WithContext(ctx).Order("seq")
	if len(mq.dataSourceIDs) > 0 {
		q = q.Where("data_source_id IN ?", mq.dataSourceIDs)
	}
	if len(mq.sourceVocabs) > 0 {
		q = q.Where("source_vocab IN ?", mq.sourceVocabs)
	}
	if err := q.Find(&res).Error; err != nil {
		return nil, StoreError("select attribute mappings", err)
	}
	return res, nil
}

func (s *pgStore) counts(ctx context.Context) (int, int, error) {
	var vars, maps int64
	gdb := s.gormDB.WithContext(ctx)
	if err := gdb.Model(&schema.ObservedProperty{}).Count(&vars).Error; err != nil {
		return 0, 0, StoreError("count variables", err)
	}
	if err := gdb.Model(&schema.AttributeMapping{}).Count(&maps).Error; err != nil {
		return 0, 0, StoreError("count attribute mappings", err)
	}
	return int(vars), int(maps), nil
}

func (s *pgStore) close() error {
	return s.op.Close()
}
