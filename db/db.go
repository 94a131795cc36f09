package db

import (
	"strings"

	"blog-backend/config"
	"blog-backend/models"
	"blog-backend/utils"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB(cfg config.Config) error {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return err
	}

	// Utilisation du logger GORM harmonisé
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         utils.GetGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return errors.Wrapf(err, "connecting to the %s database failed", cfg.DBDriver)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
	)
	if err != nil {
		return errors.Wrap(err, "migrating database failed")
	}

	if err := SeedAdmin(DB, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	utils.LogSuccess("Database connection successful")
	return nil
}

func dialectorFor(cfg config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DBURL), nil
	case config.DriverSQLite:
		return sqlite.Open(sqliteDSN(cfg.DBURL)), nil
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// sqliteDSN active les clés étrangères (et donc les CASCADE) sur chaque connexion du pool.
// Le pragma est propre à la connexion: un simple Exec ne couvrirait que l'une d'elles.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// SeedAdmin crée le compte administrateur initial s'il n'existe pas encore.
// Sans lui, aucun compte admin ne peut être créé via l'API.
func SeedAdmin(conn *gorm.DB, username, password string) error {
	if username == "" {
		return nil
	}

	var existing models.User
	err := conn.Where("username = ?", username).First(&existing).Error
	if err == nil {
		if !existing.IsAdmin {
			utils.LogInfo("Bootstrap admin username belongs to a regular account, skipping seed")
		}
		return nil
	}
	if !utils.IsNotFound(err) {
		return errors.Wrap(err, "looking up bootstrap admin failed")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return errors.Wrap(err, "hashing bootstrap admin password failed")
	}

	admin := models.User{Username: username, Password: hash, IsAdmin: true}
	if err := conn.Create(&admin).Error; err != nil {
		return errors.Wrap(err, "creating bootstrap admin failed")
	}

	utils.LogSuccessWithUser(admin.ID, "Bootstrap admin created")
	return nil
}
