package database

import (
	"fmt"
	"log"

	"studyset_backend/internal/config"
	"studyset_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Course{},
		&model.CourseCard{},
		&model.PracticeTest{},
		&model.PracticeTestQuestion{},
		&model.AnswerOption{},
		&model.PracticeTestResult{},
		&model.PracticeTestHistory{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
