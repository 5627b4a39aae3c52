// Package main seeds a development database with an admin, a society,
// a few properties, a tenant and sample records. One-shot; safe to rerun
// only against a fresh database.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/societyhub/backend/config"
	"github.com/societyhub/backend/internal/auth"
	"github.com/societyhub/backend/internal/maintenance"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/notices"
	"github.com/societyhub/backend/internal/payments"
	"github.com/societyhub/backend/internal/properties"
	"github.com/societyhub/backend/internal/societies"
	"github.com/societyhub/backend/pkg/database"
	"github.com/societyhub/backend/pkg/utils"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	userRepo := auth.NewRepository(pool)
	societyRepo := societies.NewRepository(pool)
	propertyRepo := properties.NewRepository(pool)
	maintenanceRepo := maintenance.NewRepository(pool)
	noticeRepo := notices.NewRepository(pool)
	paymentRepo := payments.NewRepository(pool)

	hash, err := utils.HashPassword("password123")
	if err != nil {
		logger.Fatal("hash password", zap.Error(err))
	}

	admin, err := userRepo.Create(ctx, "admin@example.com", hash, "Asha Verma", "+91-9800000001", models.RoleAdmin)
	if err != nil {
		logger.Fatal("seed admin", zap.Error(err))
	}

	society := &models.Society{
		Name:               "Green Meadows",
		RegistrationNumber: "REG-001",
		Address:            "12 Lake View Road",
		City:               "Pune",
		State:              "Maharashtra",
		PostalCode:         "411001",
		TotalUnits:         24,
		AdminID:            admin.ID,
		ManagerName:        "R. Kulkarni",
		ManagerPhone:       "+91-9800000002",
	}
	if err := societyRepo.Create(ctx, society); err != nil {
		logger.Fatal("seed society", zap.Error(err))
	}

	units := []*models.Property{
		{SocietyID: society.ID, UnitNumber: "A-101", Type: "apartment", Bedrooms: 2, Bathrooms: 2, AreaSqft: 950, RentCents: 2200000, Status: models.PropertyStatusVacant},
		{SocietyID: society.ID, UnitNumber: "A-102", Type: "apartment", Bedrooms: 3, Bathrooms: 2, AreaSqft: 1240, RentCents: 3100000, Status: models.PropertyStatusVacant},
		{SocietyID: society.ID, UnitNumber: "B-201", Type: "apartment", Bedrooms: 1, Bathrooms: 1, AreaSqft: 620, RentCents: 1500000, Status: models.PropertyStatusMaintenance},
	}
	for _, p := range units {
		if err := propertyRepo.Create(ctx, p); err != nil {
			logger.Fatal("seed property", zap.Error(err), zap.String("unit", p.UnitNumber))
		}
	}

	tenant, err := userRepo.Create(ctx, "tenant@example.com", hash, "Nikhil Rao", "+91-9800000003", models.RoleTenant)
	if err != nil {
		logger.Fatal("seed tenant", zap.Error(err))
	}
	if err := propertyRepo.AssignTenant(ctx, units[0].ID, tenant.ID, society.ID); err != nil {
		logger.Fatal("assign tenant", zap.Error(err))
	}

	request := &models.MaintenanceRequest{
		SocietyID:   society.ID,
		PropertyID:  units[0].ID,
		TenantID:    tenant.ID,
		Title:       "Kitchen tap leaking",
		Description: "Continuous drip under the sink.",
		Category:    "plumbing",
		Priority:    models.MaintenancePriorityMedium,
		Status:      models.MaintenanceStatusPending,
	}
	if err := maintenanceRepo.Create(ctx, request); err != nil {
		logger.Fatal("seed maintenance request", zap.Error(err))
	}

	notice := &models.Notice{
		SocietyID:   society.ID,
		Title:       "Water supply interruption",
		Content:     "Water supply will be off on Saturday 10:00-14:00 for tank cleaning.",
		Type:        models.NoticeTypeMaintenance,
		IsImportant: true,
		CreatedBy:   admin.ID,
	}
	if err := noticeRepo.Create(ctx, notice); err != nil {
		logger.Fatal("seed notice", zap.Error(err))
	}

	due := time.Now().AddDate(0, 0, 7)
	payment := &models.Payment{
		SocietyID:   society.ID,
		PropertyID:  units[0].ID,
		TenantID:    tenant.ID,
		AmountCents: units[0].RentCents,
		Currency:    "INR",
		Type:        models.PaymentTypeRent,
		Status:      models.PaymentStatusPending,
		DueDate:     &due,
	}
	if err := paymentRepo.Create(ctx, payment); err != nil {
		logger.Fatal("seed payment", zap.Error(err))
	}

	logger.Info("seed complete",
		zap.String("admin", admin.Email),
		zap.String("tenant", tenant.Email),
		zap.String("society", society.Name))
}
