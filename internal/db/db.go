package db

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"netapedia/internal/logging"
	"netapedia/internal/models"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=netapedia port=5432 sslmode=disable TimeZone=Asia/Kolkata"
	}

	log := logging.Get()

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	log.Info().Msg("database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.PoliticalParty{},
		&models.PartyPerformance{},
		&models.Politician{},
		&models.ElectoralRecord{},
		&models.PolicyStance{},
		&models.Interaction{},
		&models.Favorite{},
		&models.Setting{},
		&models.PushSubscription{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	log.Info().Msg("database migration completed")

	seedParties()
	seedSettings()
}

func seedParties() {
	log := logging.Get()

	// 检查是否已有政党数据
	var count int64
	DB.Model(&models.PoliticalParty{}).Count(&count)
	if count > 0 {
		log.Debug().Msg("parties already seeded, skipping")
		return
	}

	parties := []models.PoliticalParty{
		{Name: "Bharatiya Janata Party", Abbreviation: "BJP", Ideology: "Hindutva, conservatism", FoundedOn: "1980-04-06", Symbol: "Lotus"},
		{Name: "Indian National Congress", Abbreviation: "INC", Ideology: "Social democracy, secularism", FoundedOn: "1885-12-28", Symbol: "Hand"},
		{Name: "Aam Aadmi Party", Abbreviation: "AAP", Ideology: "Populism, anti-corruption", FoundedOn: "2012-11-26", Symbol: "Broom"},
		{Name: "All India Trinamool Congress", Abbreviation: "TMC", Ideology: "Populism, Bengali nationalism", FoundedOn: "1998-01-01", Symbol: "Flowers and Grass"},
		{Name: "Dravida Munnetra Kazhagam", Abbreviation: "DMK", Ideology: "Dravidian politics, social democracy", FoundedOn: "1949-09-17", Symbol: "Rising Sun"},
	}

	for _, party := range parties {
		if err := DB.Create(&party).Error; err != nil {
			log.Error().Err(err).Str("party", party.Name).Msg("failed to create party")
		}
	}
	log.Info().Int("count", len(parties)).Msg("initial parties created")
}

func seedSettings() {
	var count int64
	DB.Model(&models.Setting{}).Count(&count)
	if count > 0 {
		return
	}

	settings := []models.Setting{
		{Key: "site_name", Value: "Netapedia", Public: true},
		{Key: "trending_window_days", Value: "7", Public: false},
		{Key: "push_enabled", Value: "true", Public: true},
		{Key: "results_per_page", Value: "30", Public: true},
		{Key: "maintenance_message", Value: "", Public: true},
	}

	for _, setting := range settings {
		DB.Create(&setting)
	}
	logging.Get().Info().Msg("initial settings created")
}
