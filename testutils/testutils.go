package testutils

import (
	"io"
	"log"
	"testing"
	"time"

	"blog-backend/config"
	"blog-backend/db"
	"blog-backend/models"
	"blog-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestJWTSecret = "test-secret"

func SetupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Erreur lors de la création de la connexion SQL mock: %s", err)
	}

	newLogger := logger.New(
		log.New(io.Discard, "", log.LstdFlags),
		logger.Config{
			LogLevel: logger.Silent,
		},
	)

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Erreur lors de l'ouverture de la connexion GORM: %s", err)
	}

	originalDB := db.DB
	db.DB = gormDB

	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %s", err)
		}
		db.DB = originalDB
		sqlDB.Close()
	}

	return gormDB, mock, cleanup
}

func SetupTestRouter() *gin.Engine {
	r := gin.New()
	return r
}

func InitTestMain() {
	gin.SetMode(gin.TestMode)
	utils.Logger.SetOutput(io.Discard)
	config.App = config.Config{
		JWTSecret: TestJWTSecret,
		TokenTTL:  time.Hour,
	}
}

// BearerToken signe un token pour userID avec le secret de test
func BearerToken(t *testing.T, userID uint) string {
	token, err := utils.GenerateJWT(models.User{ID: userID}, time.Hour)
	if err != nil {
		t.Fatalf("Erreur lors de la génération du token: %s", err)
	}
	return "Bearer " + token
}

// AsActor simule le middleware d'authentification
func AsActor(userID uint, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		handler(c)
	}
}

var UserColumns = []string{"id", "username", "password", "is_admin", "created_at", "updated_at"}
var PostColumns = []string{"id", "title", "content", "is_public", "user_id", "created_at", "updated_at"}
var LikeColumns = []string{"id", "user_id", "post_id", "created_at"}
