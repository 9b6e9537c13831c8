package database

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolhub_backend/internal/config"
	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.School{},
		&model.Admin{},
		&model.SchoolAdmin{},
		&model.User{},
		&model.SchoolTeacher{},
		&model.QuestionBank{},
		&model.Assessment{},
		&model.AssessmentQuestion{},
		&model.AssessmentTaker{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// SeedSuperAdmin creates the bootstrap super admin when no super admin
// exists yet, so a fresh deployment has a way in.
func SeedSuperAdmin(db *gorm.DB, cfg *config.BootstrapConfig) error {
	if cfg.SuperAdminEmail == "" {
		return nil
	}

	var count int64
	if err := db.Model(&model.Admin{}).Where("is_super_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &model.Admin{
		Name:         util.CapitalizeName(cfg.SuperAdminName),
		Email:        util.NormalizeEmail(cfg.SuperAdminEmail),
		IsSuperAdmin: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Printf("Seeded super admin %s", admin.Email)
	return nil
}
