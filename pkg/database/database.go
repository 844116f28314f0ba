package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ehospital/medications/internal/config"
	"github.com/ehospital/medications/internal/domain"
	"github.com/ehospital/medications/internal/domain/drug"
	"github.com/ehospital/medications/internal/domain/patient"
	"github.com/ehospital/medications/internal/domain/prescription"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
		// Unique-index violations must surface as gorm.ErrDuplicatedKey so
		// the drug repository can report them as duplicates.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"medications", "audit"} // logical namespace
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	// The doctors view is provisioned by the staff service and is not
	// migrated here; patient_info and images arrive via replication but
	// their shape is owned by this schema.
	models := []any{
		&domain.AuditLog{},
		&drug.Drug{},
		&prescription.Prescription{},
		&patient.PatientInfo{},
		&patient.Image{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// The composite unique index on the drug composition is the actual
		// duplicate guard behind the service-level pre-check. AutoMigrate
		// creates it from the model tags; the explicit statement keeps
		// databases migrated by older revisions in line.
		{
			name:  "idx_drugs_composition",
			query: `CREATE UNIQUE INDEX IF NOT EXISTS idx_drugs_composition ON medications.drugs (name, type, dose, dose_unit)`,
		},
		{
			name:  "idx_prescriptions_patient_active",
			query: `CREATE INDEX IF NOT EXISTS idx_prescriptions_patient_active ON medications.prescriptions (patient_id, assignment_date) WHERE is_deleted = false`,
		},
		{
			name:  "idx_drugs_name_live",
			query: `CREATE INDEX IF NOT EXISTS idx_drugs_name_live ON medications.drugs (name) WHERE is_deleted = false`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
