package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// IdeaStatusActive marks a listing as open and visible on dashboards
	IdeaStatusActive = "active"
	// IdeaStatusClosed marks a listing the owner has closed
	IdeaStatusClosed = "closed"
)

// EditableIdeaInfo is the part of a listing the posting recruiter fills in.
// Free text throughout; techStack stays a comma-joined string on the wire.
type EditableIdeaInfo struct {
	CofounderRole      string `gorm:"type:text" json:"cofounderRole"`
	CompanyName        string `gorm:"type:text" json:"companyName"`
	CompanySize        string `gorm:"type:text" json:"companySize"`
	CompanyWebsite     string `gorm:"type:text" json:"companyWebsite"`
	EquityRange        string `gorm:"type:text" json:"equityRange"`
	ExperienceRequired string `gorm:"type:text" json:"experienceRequired"`
	FundingStage       string `gorm:"type:text" json:"fundingStage"`
	IdeaDescription    string `gorm:"type:text" json:"ideaDescription"`
	IdealCandidate     string `gorm:"type:text" json:"idealCandidate"`
	Responsibilities   string `gorm:"type:text" json:"responsibilities"`
	RoleDescription    string `gorm:"type:text" json:"roleDescription"`
	SalaryRange        string `gorm:"type:text" json:"salaryRange"`
	TechStack          string `gorm:"type:text" json:"techStack"`
}

// Idea is a founder-posted co-founder/role opportunity ("listing").
type Idea struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	RecruiterID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"recruiterId"`

	EditableIdeaInfo

	Status string `gorm:"type:text;default:active" json:"status"`

	// Contact fields denormalized from the posting recruiter at create time.
	Email    string `gorm:"type:text" json:"email"`
	PhotoURL string `gorm:"type:text" json:"photoURL"`

	CreatedAt time.Time `gorm:"type:timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`
}

// NormalizeTimestamps fills missing creation/update times with the read-time
// clock, the way the source treated untimestamped documents. Two reads of the
// same untimestamped row can therefore disagree; callers accept that.
func (i *Idea) NormalizeTimestamps(now time.Time) {
	if i.CreatedAt.IsZero() {
		if !i.UpdatedAt.IsZero() {
			i.CreatedAt = i.UpdatedAt
		} else {
			i.CreatedAt = now
		}
	}
	if i.UpdatedAt.IsZero() {
		i.UpdatedAt = now
	}
}
