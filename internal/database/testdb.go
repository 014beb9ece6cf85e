package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "cofoundry-backend/internal/model"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users, profiles and listings shared by handler tests.
var (
	TestUserDeveloper1 m.User
	TestUserDeveloper2 m.User
	TestUserRecruiter1 m.User
	TestUserRecruiter2 m.User
	TestUserInvestor1  m.User

	TestDeveloper1 m.DeveloperProfile
	TestDeveloper2 m.DeveloperProfile
	TestRecruiter1 m.RecruiterProfile
	TestRecruiter2 m.RecruiterProfile
	TestInvestor1  m.InvestorProfile

	// TestIdea1 and TestIdea2 are active; TestIdea2 is the newer one.
	// TestIdea3 is closed and must stay invisible on dashboards.
	TestIdea1 m.Idea
	TestIdea2 m.Idea
	TestIdea3 m.Idea
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample users, role profiles and listings if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	userSpecs := []struct {
		displayName string
		email       string
		googleID    string
	}{
		{"Alice Nguyen", "developer1@example.com", "g-dev-0001"},
		{"Bob Somsak", "developer2@example.com", "g-dev-0002"},
		{"Carol Founder", "recruiter1@example.com", "g-rec-0001"},
		{"Dan Founder", "recruiter2@example.com", "g-rec-0002"},
		{"Eve Capital", "investor1@example.com", "g-inv-0001"},
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		gid := s.googleID
		users = append(users, m.User{
			ID:          uuid.New(),
			GoogleID:    &gid,
			DisplayName: s.displayName,
			Email:       s.email,
			PhotoURL:    "https://example.com/avatar/" + s.googleID + ".png",
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	for _, u := range users {
		switch u.Email {
		case "developer1@example.com":
			TestUserDeveloper1 = u
		case "developer2@example.com":
			TestUserDeveloper2 = u
		case "recruiter1@example.com":
			TestUserRecruiter1 = u
		case "recruiter2@example.com":
			TestUserRecruiter2 = u
		case "investor1@example.com":
			TestUserInvestor1 = u
		}
	}

	developerProfiles := []m.DeveloperProfile{
		{
			UserID: TestUserDeveloper1.ID,
			EditableDeveloperInfo: m.EditableDeveloperInfo{
				FirstName:      "Alice",
				LastName:       "Nguyen",
				Email:          TestUserDeveloper1.Email,
				Experience:     "3-5",
				Skills:         pq.StringArray{"Go", "React"},
				Bio:            "Backend developer who drifted frontend",
				Github:         "https://github.com/alice",
				University:     "Kasetsart University",
				Degree:         "Computer Engineering",
				GraduationYear: "2023",
			},
		},
		{
			UserID: TestUserDeveloper2.ID,
			EditableDeveloperInfo: m.EditableDeveloperInfo{
				FirstName:  "Bob",
				LastName:   "Somsak",
				Email:      TestUserDeveloper2.Email,
				Experience: "0-2",
				Skills:     pq.StringArray{"Python", "Django"},
			},
		},
	}
	if err := db.Create(&developerProfiles).Error; err != nil {
		return err
	}
	TestDeveloper1, TestDeveloper2 = developerProfiles[0], developerProfiles[1]

	recruiterProfiles := []m.RecruiterProfile{
		{
			UserID: TestUserRecruiter1.ID,
			EditableRecruiterInfo: m.EditableRecruiterInfo{
				Email:          TestUserRecruiter1.Email,
				CompanyName:    "TechNova",
				CompanyWebsite: "https://technova.example.com",
				CompanySize:    "1-10",
				FundingStage:   "seed",
				EquityRange:    "1-5",
				SalaryRange:    "Negotiable",
				TechStack:      pq.StringArray{"Go", "Postgres"},
			},
		},
		{
			UserID: TestUserRecruiter2.ID,
			EditableRecruiterInfo: m.EditableRecruiterInfo{
				Email:       TestUserRecruiter2.Email,
				CompanyName: "DataForge",
				CompanySize: "11-50",
			},
		},
	}
	if err := db.Create(&recruiterProfiles).Error; err != nil {
		return err
	}
	TestRecruiter1, TestRecruiter2 = recruiterProfiles[0], recruiterProfiles[1]

	investorProfiles := []m.InvestorProfile{
		{
			UserID: TestUserInvestor1.ID,
			EditableInvestorInfo: m.EditableInvestorInfo{
				FirstName:           "Eve",
				LastName:            "Capital",
				Email:               TestUserInvestor1.Email,
				InvestmentInterests: pq.StringArray{"fintech", "devtools"},
				NetWorth:            "confidential",
			},
		},
	}
	if err := db.Create(&investorProfiles).Error; err != nil {
		return err
	}
	TestInvestor1 = investorProfiles[0]

	base := time.Now().Add(-48 * time.Hour)
	ideas := []m.Idea{
		{
			RecruiterID: TestUserRecruiter1.ID,
			EditableIdeaInfo: m.EditableIdeaInfo{
				CofounderRole:   "CTO",
				CompanyName:     "TechNova",
				EquityRange:     "3%",
				FundingStage:    "seed",
				IdeaDescription: "Developer-tooling platform for small teams",
				TechStack:       "Go, Postgres, React",
			},
			Status:    m.IdeaStatusActive,
			Email:     TestUserRecruiter1.Email,
			CreatedAt: base,
			UpdatedAt: base,
		},
		{
			RecruiterID: TestUserRecruiter1.ID,
			EditableIdeaInfo: m.EditableIdeaInfo{
				CofounderRole:   "Founding Engineer",
				CompanyName:     "TechNova",
				EquityRange:     "7%",
				FundingStage:    "seed",
				IdeaDescription: "Realtime analytics for logistics fleets",
				TechStack:       "Go, Kafka",
			},
			Status:    m.IdeaStatusActive,
			Email:     TestUserRecruiter1.Email,
			CreatedAt: base.Add(24 * time.Hour),
			UpdatedAt: base.Add(24 * time.Hour),
		},
		{
			RecruiterID: TestUserRecruiter2.ID,
			EditableIdeaInfo: m.EditableIdeaInfo{
				CofounderRole:   "CMO",
				CompanyName:     "DataForge",
				EquityRange:     "12%",
				IdeaDescription: "Closed experiment, no longer hiring",
			},
			Status:    m.IdeaStatusClosed,
			Email:     TestUserRecruiter2.Email,
			CreatedAt: base,
			UpdatedAt: base,
		},
	}
	if err := db.Create(&ideas).Error; err != nil {
		return err
	}
	TestIdea1, TestIdea2, TestIdea3 = ideas[0], ideas[1], ideas[2]

	return nil
}

// loadTestData re-populates the exported fixtures from an already-seeded DB.
func loadTestData(db *DBinstanceStruct) error {
	users := []struct {
		email  string
		target *m.User
	}{
		{"developer1@example.com", &TestUserDeveloper1},
		{"developer2@example.com", &TestUserDeveloper2},
		{"recruiter1@example.com", &TestUserRecruiter1},
		{"recruiter2@example.com", &TestUserRecruiter2},
		{"investor1@example.com", &TestUserInvestor1},
	}
	for _, u := range users {
		if err := db.Where("email = ?", u.email).First(u.target).Error; err != nil {
			return err
		}
	}

	if err := db.Where("user_id = ?", TestUserDeveloper1.ID).First(&TestDeveloper1).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", TestUserDeveloper2.ID).First(&TestDeveloper2).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", TestUserRecruiter1.ID).First(&TestRecruiter1).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", TestUserRecruiter2.ID).First(&TestRecruiter2).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", TestUserInvestor1.ID).First(&TestInvestor1).Error; err != nil {
		return err
	}

	if err := db.Where("equity_range = ?", "3%").First(&TestIdea1).Error; err != nil {
		return err
	}
	if err := db.Where("equity_range = ?", "7%").First(&TestIdea2).Error; err != nil {
		return err
	}
	if err := db.Where("status = ?", m.IdeaStatusClosed).First(&TestIdea3).Error; err != nil {
		return err
	}
	return nil
}
