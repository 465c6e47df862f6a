package main

import (
	"fmt"
	"time"

	"orbit-scheduler/pkg/config"
	"orbit-scheduler/pkg/database"
	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		email    string
		username string
		password string
		role     models.UserRole
	}{
		{"admin@orbit.test", "admin", "password123", models.RoleAdmin},
		{"mod@orbit.test", "mod_sasha", "password123", models.RoleModerator},
		{"alice@orbit.test", "alice_creates", "password123", models.RoleUser},
		{"bob@orbit.test", "bob_creates", "password123", models.RoleUser},
	}

	userIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &models.User{
			Email:    userData.email,
			Username: userData.username,
			Password: string(hashedPassword),
			Role:     userData.role,
			IsActive: true,
		}

		var existingUser models.User
		result := db.Where("email = ? OR username = ?", user.Email, user.Username).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Username)
			userIDs = append(userIDs, existingUser.ID)
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Username, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Username, user.Email)
		userIDs = append(userIDs, user.ID)
	}

	if len(userIDs) < 3 {
		return fmt.Errorf("not enough seed users to create posts")
	}

	// Creator accounts come after admin and moderator
	creators := userIDs[2:]

	now := time.Now().UTC()
	samplePosts := []struct {
		provider    models.Provider
		content     string
		scheduledAt time.Time
		status      models.PostStatus
	}{
		{models.ProviderInstagram, "Behind the scenes of our summer shoot", now.Add(2 * time.Hour), models.StatusNeedsApproval},
		{models.ProviderTwitter, "Big announcement coming this Friday. Stay tuned!", now.Add(24 * time.Hour), models.StatusNeedsApproval},
		{models.ProviderLinkedIn, "We're hiring across engineering and design.", now.Add(48 * time.Hour), models.StatusPending},
		{models.ProviderYouTube, "New video drops tomorrow at 9am.", now.Add(-1 * time.Hour), models.StatusPending},
		{models.ProviderTikTok, "POV: your scheduler does the posting for you", now.Add(-72 * time.Hour), models.StatusPublished},
		{models.ProviderFacebook, "Throwback to last year's launch party", now.Add(-48 * time.Hour), models.StatusBlocked},
		{models.ProviderPinterest, "Moodboard: autumn campaign colors", now.Add(6 * time.Hour), models.StatusNeedsApproval},
	}

	for i, postData := range samplePosts {
		ownerID := creators[i%len(creators)]

		post := &models.Post{
			OwnerID:     ownerID,
			Provider:    postData.provider,
			Content:     postData.content,
			ScheduledAt: postData.scheduledAt,
			Status:      postData.status,
		}

		if err := db.Create(post).Error; err != nil {
			log.Error("Failed to create post for %s: %v", postData.provider, err)
			continue
		}

		log.Info("Created %s post for %s (status=%s)", postData.provider, ownerID, postData.status)
	}

	return nil
}
