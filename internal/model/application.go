package model

import (
	"time"

	"github.com/google/uuid"
)

// Application is a developer's submission toward a listing. The recruiter id
// is copied from the listing at submission time and never set by the caller.
type Application struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`

	IdeaID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_app_idea_dev" json:"ideaId"`
	Idea   Idea      `gorm:"foreignKey:IdeaID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	DeveloperID uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_app_idea_dev" json:"developerId"`
	Developer   DeveloperProfile `gorm:"foreignKey:DeveloperID;references:UserID" json:"-"`

	RecruiterID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"recruiterId"`

	CoverLetter    string `gorm:"type:text" json:"coverLetter"`
	Resume         string `gorm:"type:text" json:"resume"`
	WhatsappNumber string `gorm:"type:text" json:"whatsappNumber"`

	Status string `gorm:"type:text" json:"status"`

	CreatedAt time.Time `gorm:"type:timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`
}

// InvestmentInterest is the investor counterpart of Application.
type InvestmentInterest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`

	IdeaID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_interest_idea_inv" json:"ideaId"`
	Idea   Idea      `gorm:"foreignKey:IdeaID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	// Kept alongside IdeaID for wire compatibility with old documents that
	// referenced a separate opportunity record.
	OpportunityID string `gorm:"type:text" json:"opportunityId"`

	InvestorID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_interest_idea_inv" json:"investorId"`
	Investor   InvestorProfile `gorm:"foreignKey:InvestorID;references:UserID" json:"-"`

	RecruiterID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"recruiterId"`

	CoverLetter    string `gorm:"type:text" json:"coverLetter"`
	WhatsappNumber string `gorm:"type:text" json:"whatsappNumber"`

	Status string `gorm:"type:text" json:"status"`

	CreatedAt time.Time `gorm:"type:timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`
}
