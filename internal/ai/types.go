package ai

// The types below mirror the JSON contracts of the four completion
// operations. Provider responses are decoded into them at the collaborator
// boundary; a response that does not fit the contract is a parse error.

type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

type Profile struct {
	Name            string  `json:"name,omitempty"`
	Title           string  `json:"title,omitempty"`
	Location        string  `json:"location,omitempty"`
	ExperienceYears float64 `json:"experience_years,omitempty"`
	Summary         string  `json:"summary,omitempty"`
	Contact         Contact `json:"contact,omitempty"`
}

// Skill levels run from 1 (basic) to 5 (expert).
type Skill struct {
	Name     string  `json:"name,omitempty"`
	Level    int     `json:"level,omitempty"`
	Years    float64 `json:"years,omitempty"`
	Category string  `json:"category,omitempty"`
}

type ExperienceEntry struct {
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	Location     string   `json:"location,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Location    string `json:"location,omitempty"`
	Year        int    `json:"year,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

type Certification struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	Expiry string `json:"expiry,omitempty"`
}

type Language struct {
	Name  string `json:"name,omitempty"`
	Level string `json:"level,omitempty"`
}

// CVAssessment is the summary block of a CV extraction. ExperienceLevel is one
// of Entry, Mid, Senior, Expert; MarketReadinessScore runs from 1 to 100.
type CVAssessment struct {
	ExperienceLevel      string   `json:"experience_level,omitempty"`
	Strengths            []string `json:"strengths,omitempty"`
	ImprovementAreas     []string `json:"improvement_areas,omitempty"`
	MarketReadinessScore int      `json:"market_readiness_score,omitempty"`
	RecommendedRoles     []string `json:"recommended_roles,omitempty"`
	CareerTrajectory     string   `json:"career_trajectory,omitempty"`
}

// CVAnalysis is the full CV extraction contract.
type CVAnalysis struct {
	Profile        Profile           `json:"profile"`
	Skills         []Skill           `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Certifications []Certification   `json:"certifications"`
	Languages      []Language        `json:"languages"`
	Analysis       CVAssessment      `json:"analysis"`
}

type SalaryRange struct {
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

type JobSkill struct {
	Name       string `json:"name,omitempty"`
	Level      int    `json:"level,omitempty"`
	Importance string `json:"importance,omitempty"`
}

type CompanyInfo struct {
	Size     string `json:"size,omitempty"`
	Industry string `json:"industry,omitempty"`
	Culture  string `json:"culture,omitempty"`
}

type ApplicationProcess struct {
	Method   string `json:"method,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

type JobAssessment struct {
	DifficultyLevel         string   `json:"difficulty_level,omitempty"`
	MarketDemand            string   `json:"market_demand,omitempty"`
	GrowthPotential         string   `json:"growth_potential,omitempty"`
	RequiredExperienceYears float64  `json:"required_experience_years,omitempty"`
	KeyTechnologies         []string `json:"key_technologies,omitempty"`
	SoftSkillsRequired      []string `json:"soft_skills_required,omitempty"`
}

// JobAnalysis is the job-description extraction contract.
type JobAnalysis struct {
	Title              string              `json:"title,omitempty"`
	Company            string              `json:"company,omitempty"`
	Location           string              `json:"location,omitempty"`
	Remote             bool                `json:"remote,omitempty"`
	JobType            string              `json:"job_type,omitempty"`
	ExperienceLevel    string              `json:"experience_level,omitempty"`
	SalaryRange        *SalaryRange        `json:"salary_range,omitempty"`
	RequiredSkills     []JobSkill          `json:"required_skills,omitempty"`
	PreferredSkills    []JobSkill          `json:"preferred_skills,omitempty"`
	Responsibilities   []string            `json:"responsibilities,omitempty"`
	Qualifications     []string            `json:"qualifications,omitempty"`
	Benefits           []string            `json:"benefits,omitempty"`
	CompanyInfo        *CompanyInfo        `json:"company_info,omitempty"`
	ApplicationProcess *ApplicationProcess `json:"application_process,omitempty"`
	Analysis           JobAssessment       `json:"analysis,omitempty"`
}

// SkillComparison classifies the gap between a CV skill and the job's
// requirement: Exact Match, Close Match, Gap or Significant Gap.
type SkillComparison struct {
	Skill         string  `json:"skill,omitempty"`
	CVLevel       int     `json:"cv_level,omitempty"`
	RequiredLevel int     `json:"required_level,omitempty"`
	MatchScore    float64 `json:"match_score,omitempty"`
	Gap           string  `json:"gap,omitempty"`
}

type MatchRecommendation struct {
	Type        string   `json:"type,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Description string   `json:"description,omitempty"`
	ActionItems []string `json:"action_items,omitempty"`
}

// FitAssessment levels are Excellent, Good, Fair or Poor with High, Medium or
// Low confidence.
type FitAssessment struct {
	Level              string `json:"level,omitempty"`
	Confidence         string `json:"confidence,omitempty"`
	Reasoning          string `json:"reasoning,omitempty"`
	InterviewReadiness string `json:"interview_readiness,omitempty"`
}

type CareerProgression struct {
	CurrentLevel string `json:"current_level,omitempty"`
	TargetLevel  string `json:"target_level,omitempty"`
	Feasibility  string `json:"feasibility,omitempty"`
	Timeline     string `json:"timeline,omitempty"`
}

// MatchScore is the match-scoring contract. All scores run from 0 to 100.
type MatchScore struct {
	OverallScore         float64               `json:"overall_score"`
	SkillMatchScore      float64               `json:"skill_match_score,omitempty"`
	ExperienceMatchScore float64               `json:"experience_match_score,omitempty"`
	EducationMatchScore  float64               `json:"education_match_score,omitempty"`
	SoftSkillsMatchScore float64               `json:"soft_skills_match_score,omitempty"`
	SkillAnalysis        []SkillComparison     `json:"skill_analysis,omitempty"`
	MissingSkills        []string              `json:"missing_skills,omitempty"`
	Strengths            []string              `json:"strengths,omitempty"`
	Weaknesses           []string              `json:"weaknesses,omitempty"`
	Recommendations      []MatchRecommendation `json:"recommendations,omitempty"`
	FitAssessment        FitAssessment         `json:"fit_assessment,omitempty"`
	CareerProgression    *CareerProgression    `json:"career_progression,omitempty"`
}

type LearningResource struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Provider string `json:"provider,omitempty"`
	Duration string `json:"duration,omitempty"`
	Cost     string `json:"cost,omitempty"`
	URL      string `json:"url,omitempty"`
}

type CareerImpact struct {
	Description             string `json:"description,omitempty"`
	JobOpportunities        string `json:"job_opportunities,omitempty"`
	SalaryIncreasePotential string `json:"salary_increase_potential,omitempty"`
}

// SkillRecommendation is one entry of the skill-recommendation contract.
// Priority and the proficiency levels run from 1 to 5.
type SkillRecommendation struct {
	Skill             string             `json:"skill"`
	Category          string             `json:"category,omitempty"`
	Priority          int                `json:"priority,omitempty"`
	Reason            string             `json:"reason,omitempty"`
	CurrentLevel      int                `json:"current_level,omitempty"`
	TargetLevel       int                `json:"target_level,omitempty"`
	TimeToAchieve     string             `json:"time_to_achieve,omitempty"`
	Difficulty        string             `json:"difficulty,omitempty"`
	MarketDemand      string             `json:"market_demand,omitempty"`
	LearningResources []LearningResource `json:"learning_resources,omitempty"`
	CareerImpact      *CareerImpact      `json:"career_impact,omitempty"`
}

// JobMatch pairs a job with its score against a CV.
type JobMatch struct {
	JobID      string      `json:"job_id"`
	MatchScore float64     `json:"match_score"`
	Analysis   *MatchScore `json:"analysis,omitempty"`
}
