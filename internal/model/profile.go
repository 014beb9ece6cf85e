package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ProfileKind names one of the three role collections. It is a routing
// parameter, not a stored field: holding a profile of a kind is what makes a
// user a member of that role, and one uid may hold several kinds at once.
type ProfileKind string

const (
	// KindDeveloper is the developer role collection
	KindDeveloper ProfileKind = "developer"
	// KindRecruiter is the recruiter (founder) role collection
	KindRecruiter ProfileKind = "recruiter"
	// KindInvestor is the investor role collection
	KindInvestor ProfileKind = "investor"
)

// EditableDeveloperInfo is the part of a developer profile the owner can write
type EditableDeveloperInfo struct {
	FirstName      string         `gorm:"type:text" json:"firstName"`
	LastName       string         `gorm:"type:text" json:"lastName"`
	Email          string         `gorm:"type:text" json:"email"`
	Experience     string         `gorm:"type:text" json:"experience"`
	Skills         pq.StringArray `gorm:"type:text[]" json:"skills"`
	Bio            string         `gorm:"type:text" json:"bio"`
	Github         string         `gorm:"type:text" json:"github"`
	University     string         `gorm:"type:text" json:"university"`
	Degree         string         `gorm:"type:text" json:"degree"`
	GraduationYear string         `gorm:"type:text" json:"graduationYear"`
	PhotoURL       string         `gorm:"type:text" json:"photoURL"`
}

// DeveloperProfile is keyed by the owning user id, one profile per uid.
type DeveloperProfile struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"uid"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	EditableDeveloperInfo
	CreatedAt time.Time `gorm:"type:timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`
}

// EditableRecruiterInfo is the part of a recruiter profile the owner can write
type EditableRecruiterInfo struct {
	Email              string         `gorm:"type:text" json:"email"`
	PhotoURL           string         `gorm:"type:text" json:"photoURL"`
	CompanyName        string         `gorm:"type:text" json:"companyName"`
	CompanyWebsite     string         `gorm:"type:text" json:"companyWebsite"`
	CompanySize        string         `gorm:"type:text" json:"companySize"`
	FundingStage       string         `gorm:"type:text" json:"fundingStage"`
	EquityRange        string         `gorm:"type:text" json:"equityRange"`
	SalaryRange        string         `gorm:"type:text" json:"salaryRange"`
	RoleDescription    string         `gorm:"type:text" json:"roleDescription"`
	TechStack          pq.StringArray `gorm:"type:text[]" json:"techStack"`
	ExperienceRequired string         `gorm:"type:text" json:"experienceRequired"`
}

// RecruiterProfile is keyed by the owning user id, one profile per uid.
type RecruiterProfile struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"uid"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	EditableRecruiterInfo
	CreatedAt time.Time `gorm:"type:timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`
}

// EditableInvestorInfo is the part of an investor profile the owner can write
type EditableInvestorInfo struct {
	FirstName           string         `gorm:"type:text" json:"firstName"`
	LastName            string         `gorm:"type:text" json:"lastName"`
	Email               string         `gorm:"type:text" json:"email"`
	PhotoURL            string         `gorm:"type:text" json:"photoURL"`
	InvestmentInterests pq.StringArray `gorm:"type:text[]" json:"investmentInterests"`
	NetWorth            string         `gorm:"type:text" json:"netWorth"`
	PastInvestments     string         `gorm:"type:text" json:"pastInvestments"`
}

// InvestorProfile is keyed by the owning user id, one profile per uid.
type InvestorProfile struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"uid"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	EditableInvestorInfo
	CreatedAt time.Time `gorm:"type:timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`
}

// HasProfile reports whether a profile row of the given kind exists for the
// uid. Presence of the row is the role-membership check.
func HasProfile(db *gorm.DB, kind ProfileKind, uid uuid.UUID) (bool, error) {
	var count int64
	var err error

	switch kind {
	case KindDeveloper:
		err = db.Model(&DeveloperProfile{}).Where("user_id = ?", uid).Count(&count).Error
	case KindRecruiter:
		err = db.Model(&RecruiterProfile{}).Where("user_id = ?", uid).Count(&count).Error
	case KindInvestor:
		err = db.Model(&InvestorProfile{}).Where("user_id = ?", uid).Count(&count).Error
	}
	return count > 0, err
}
