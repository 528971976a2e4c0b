package main

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"po-workflow-backend/internal/config"
	"po-workflow-backend/internal/domain/assignment"
	"po-workflow-backend/internal/domain/event"
	"po-workflow-backend/internal/domain/externalpo"
	"po-workflow-backend/internal/domain/poline"
	"po-workflow-backend/internal/domain/user"
	"po-workflow-backend/internal/infrastructure/db"
	"po-workflow-backend/internal/logger"
	"po-workflow-backend/pkg/id"
)

// Dev seeding: one user per role plus a fresh batch of unassigned PO lines.
// Users are keyed on email so re-running never duplicates them; every run
// merges a new line batch, which is what a dev loop wants.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		zlog.Fatal("mysql connect", zap.Error(err))
	}
	if err := gdb.AutoMigrate(
		&user.User{},
		&poline.PoLine{},
		&assignment.Assignment{},
		&externalpo.ExternalPO{},
		&event.ApprovalEvent{},
	); err != nil {
		zlog.Fatal("migrate", zap.Error(err))
	}

	usersCreated := seedUsers(gdb, zlog)
	linesCreated, batchID := seedPoLines(gdb, zlog)

	zlog.Info("seed done",
		zap.Int("users_created", usersCreated),
		zap.Int("po_lines_created", linesCreated),
		zap.String("batch_id", batchID),
	)
}

func strptr(s string) *string { return &s }

func seedUsers(gdb *gorm.DB, zlog *zap.Logger) int {
	seeds := []user.User{
		{Email: "admin@po.example.com", FullName: "Ayu Admin", Role: user.RoleAdmin},
		{Email: "pd@po.example.com", FullName: "Putra Direktur", Role: user.RolePD},
		{Email: "pm@po.example.com", FullName: "Prama Manager", Role: user.RolePM},
		{Email: "coordinator@po.example.com", FullName: "Citra Koordinator", Role: user.RoleCoordinator},
		{Email: "pfm@po.example.com", FullName: "Fajar Fulfilment", Role: user.RolePFM},
		{Email: "sbc@po.example.com", FullName: "Surya Subcon", Role: user.RoleSBC, SBCCode: strptr("SBC-JKT-01")},
		{Email: "it@po.example.com", FullName: "Indra IT", Role: user.RoleIT},
	}

	created := 0
	for i := range seeds {
		u := seeds[i]

		var existing user.User
		err := gdb.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zlog.Fatal("seed user lookup", zap.String("email", u.Email), zap.Error(err))
		}

		u.UserID = id.NewID32()
		u.IsActive = true
		u.ApplyRoleDefaults()
		if err := gdb.Create(&u).Error; err != nil {
			zlog.Fatal("seed user", zap.String("email", u.Email), zap.Error(err))
		}
		created++
	}
	return created
}

func seedPoLines(gdb *gorm.DB, zlog *zap.Logger) (int, string) {
	batchID := id.NewBatchID()
	now := time.Now().UTC()

	type lineSeed struct {
		poNumber string
		lineNo   string
		project  string
		account  string
		site     string
		item     string
		category string
		price    string
		qty      string
	}
	seeds := []lineSeed{
		{"4500001234", "10", "Metro Fiber North", "Telkom Area 1", "JKT-001", "Fiber optic cable 24C", "FIBER", "125000.00", "40"},
		{"4500001234", "20", "Metro Fiber North", "Telkom Area 1", "JKT-001", "Splicing closure 24C", "FIBER", "450000.00", "12"},
		{"4500001234", "30", "Metro Fiber North", "Telkom Area 1", "JKT-002", "HDPE duct 40mm", "CIVIL", "35000.00", "600"},
		{"4500005678", "10", "BTS Upgrade South", "Telkom Area 2", "BDG-014", "Antenna mount kit", "TOWER", "2750000.00", "6"},
		{"4500005678", "20", "BTS Upgrade South", "Telkom Area 2", "BDG-014", "Grounding kit", "TOWER", "380000.00", "6"},
		{"4500005678", "30", "BTS Upgrade South", "Telkom Area 2", "BDG-017", "Installation service", "SERVICE", "5500000.00", "1"},
	}

	lines := make([]*poline.PoLine, 0, len(seeds))
	for _, s := range seeds {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			zlog.Fatal("seed price", zap.String("raw", s.price), zap.Error(err))
		}
		qty, err := decimal.NewFromString(s.qty)
		if err != nil {
			zlog.Fatal("seed qty", zap.String("raw", s.qty), zap.Error(err))
		}
		lines = append(lines, &poline.PoLine{
			PoID:            id.NewID32(),
			PoNumber:        s.poNumber,
			PoLineNo:        s.lineNo,
			ProjectName:     s.project,
			AccountName:     s.account,
			SiteCode:        s.site,
			ItemDescription: s.item,
			Category:        s.category,
			UnitPrice:       price,
			RequestedQty:    qty,
			LineAmount:      price.Mul(qty),
			Unit:            "EA",
			Currency:        "IDR",
			Status:          "OPEN",
			PoStatus:        "RELEASED",
			BatchID:         batchID,
			MergedAt:        now,
		})
	}

	if err := gdb.Create(&lines).Error; err != nil {
		zlog.Fatal("seed po lines", zap.Error(err))
	}
	return len(lines), batchID
}
